package model

// Tally aggregates a schedule per player and per pair of players. It is always derived from a schedule and never stored as independent truth
type Tally struct {
	Rounds    int
	Matches   map[Player]int
	Rests     map[Player]int
	Partners  map[Player]map[Player]int // Symmetric: Partners[a][b] == Partners[b][a]
	Opponents map[Player]map[Player]int // Symmetric: Opponents[a][b] == Opponents[b][a]
}

func NewTally(config *Configuration, schedule Schedule) Tally {
	tally := Tally{
		Rounds:    len(schedule),
		Matches:   make(map[Player]int, config.N()),
		Rests:     make(map[Player]int, config.N()),
		Partners:  make(map[Player]map[Player]int, config.N()),
		Opponents: make(map[Player]map[Player]int, config.N()),
	}
	for _, player := range config.players {
		tally.Matches[player] = 0
		tally.Partners[player] = make(map[Player]int)
		tally.Opponents[player] = make(map[Player]int)
	}

	for _, match := range schedule {
		teams := match.Teams()
		for side, team := range teams {
			players := team.Players()
			rivals := teams[1-side].Players()

			for _, player := range players {
				tally.Matches[player]++
				partner, _ := team.Partner(player)
				increment(tally.Partners, player, partner)
				for _, rival := range rivals {
					increment(tally.Opponents, player, rival)
				}
			}
		}
	}

	// Rests are only meaningful for the pool; foreign players (if any) are kept in Matches so nothing is hidden
	for _, player := range config.players {
		tally.Rests[player] = len(schedule) - tally.Matches[player]
	}

	return tally
}

func increment(counts map[Player]map[Player]int, player, other Player) {
	if _, ok := counts[player]; !ok {
		counts[player] = make(map[Player]int)
	}
	counts[player][other]++
}

// Appearances returns the total number of player appearances, always 4 times the number of rounds
func (tally Tally) Appearances() int {
	total := 0
	for _, count := range tally.Matches {
		total += count
	}
	return total
}
