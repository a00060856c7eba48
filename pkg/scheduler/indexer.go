package scheduler

type variableKind int

const (
	teamVariable variableKind = iota
	playVariable
	activeVariable
)

// indexer interface is design to give a unique index to every variable of the exact model and vice versa
type indexer interface {
	// Index of the indicator "pair is a team in round"
	Team(pair, round int) int
	// Index of the indicator "player plays in round"
	Play(player, round int) int
	// Index of the indicator "round holds a match"
	Active(round int) int
	// Number of variables
	Len() int
	// Returns the variable's kind and attributes from a unique index. entity is a pair for team variables, a player for
	// play variables and zero for activity variables
	Attributes(index int) (kind variableKind, entity int, round int)
}

func newIndexer(pairs, players, rounds int) indexer {
	return &sortedIndexer{
		pairs:   pairs,
		players: players,
		rounds:  rounds,
	}
}

// sortedIndexer lays variables out by kind (team, play, active) and, inside a kind, by entity then round
type sortedIndexer struct {
	pairs   int
	players int
	rounds  int
}

func (i *sortedIndexer) Team(pair, round int) int {
	return round + i.rounds*pair
}

func (i *sortedIndexer) Play(player, round int) int {
	return i.pairs*i.rounds + round + i.rounds*player
}

func (i *sortedIndexer) Active(round int) int {
	return (i.pairs+i.players)*i.rounds + round
}

func (i *sortedIndexer) Len() int {
	return (i.pairs + i.players + 1) * i.rounds
}

func (i *sortedIndexer) Attributes(index int) (kind variableKind, entity int, round int) {
	if index < i.pairs*i.rounds {
		return teamVariable, index / i.rounds, index % i.rounds
	}
	index -= i.pairs * i.rounds

	if index < i.players*i.rounds {
		return playVariable, index / i.rounds, index % i.rounds
	}
	index -= i.players * i.rounds

	return activeVariable, 0, index
}
