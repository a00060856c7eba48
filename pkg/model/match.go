package model

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

type Player string

// Team is an unordered pair of distinct players. Players are stored in ascending order, so two teams
// holding the same players are equal under == and hash identically as map keys
type Team struct {
	first  Player
	second Player
}

func NewTeam(player1, player2 Player) (Team, error) {
	if player1 == player2 {
		return Team{}, fmt.Errorf("%w: team needs two distinct players, got \"%v\" twice", ErrInvalidMatch, player1)
	}
	if player2 < player1 {
		player1, player2 = player2, player1
	}
	return Team{first: player1, second: player2}, nil
}

func (team Team) Players() [2]Player {
	return [2]Player{team.first, team.second}
}

func (team Team) Contains(player Player) bool {
	return team.first == player || team.second == player
}

// Partner returns the teammate of player, the boolean is false if player is not part of the team
func (team Team) Partner(player Player) (Player, bool) {
	switch player {
	case team.first:
		return team.second, true
	case team.second:
		return team.first, true
	}
	return "", false
}

func (team Team) Disjoint(other Team) bool {
	return !team.Contains(other.first) && !team.Contains(other.second)
}

func (team Team) String() string {
	return fmt.Sprintf("%v & %v", team.first, team.second)
}

func compareTeams(a, b Team) int {
	return cmp.Or(cmp.Compare(a.first, b.first), cmp.Compare(a.second, b.second))
}

// Match is an unordered pair of disjoint teams. Teams are stored in canonical order, so swapping the
// team slots (or the players inside a team) yields an equal value
type Match struct {
	first  Team
	second Team
}

func NewMatch(team1, team2 Team) (Match, error) {
	if team1.first == team1.second || team2.first == team2.second {
		return Match{}, fmt.Errorf("%w: uninitialized team", ErrInvalidMatch)
	}
	if !team1.Disjoint(team2) {
		return Match{}, fmt.Errorf("%w: teams \"%v\" and \"%v\" share a player", ErrInvalidMatch, team1, team2)
	}
	if compareTeams(team2, team1) < 0 {
		team1, team2 = team2, team1
	}
	return Match{first: team1, second: team2}, nil
}

// MustMatch builds a match from four players (the first two form a team, the last two the other) and panics on invalid input
func MustMatch(a, b, c, d Player) Match {
	match, err := func() (Match, error) {
		team1, err := NewTeam(a, b)
		if err != nil {
			return Match{}, err
		}
		team2, err := NewTeam(c, d)
		if err != nil {
			return Match{}, err
		}
		return NewMatch(team1, team2)
	}()
	if err != nil {
		panic(err)
	}
	return match
}

func (match Match) Teams() [2]Team {
	return [2]Team{match.first, match.second}
}

// Players returns the four players of the match in ascending order
func (match Match) Players() []Player {
	players := []Player{match.first.first, match.first.second, match.second.first, match.second.second}
	slices.Sort(players)
	return players
}

func (match Match) Contains(player Player) bool {
	return match.first.Contains(player) || match.second.Contains(player)
}

func (match Match) HasTeam(team Team) bool {
	return match.first == team || match.second == team
}

func (match Match) SharesTeam(other Match) bool {
	return other.HasTeam(match.first) || other.HasTeam(match.second)
}

// TeamOf returns the team player belongs to in the match
func (match Match) TeamOf(player Player) (Team, bool) {
	if match.first.Contains(player) {
		return match.first, true
	} else if match.second.Contains(player) {
		return match.second, true
	}
	return Team{}, false
}

// Bench returns the players of pool that are not part of the match
func (match Match) Bench(pool []Player) []Player {
	return lo.Filter(pool, func(player Player, _ int) bool { return !match.Contains(player) })
}

func (match Match) String() string {
	return fmt.Sprintf("%v vs %v", match.first, match.second)
}

func compareMatches(a, b Match) int {
	return cmp.Or(compareTeams(a.first, b.first), compareTeams(a.second, b.second))
}

// Schedule is an ordered sequence of matches, one per round
type Schedule []Match

// Teams returns every team of the schedule in round order, duplicates included
func (schedule Schedule) Teams() []Team {
	return lo.FlatMap(schedule, func(match Match, _ int) []Team {
		teams := match.Teams()
		return teams[:]
	})
}

// Rotate returns a copy of the schedule shifted k rounds to the left
func (schedule Schedule) Rotate(k int) Schedule {
	rotated := make(Schedule, 0, len(schedule))
	if len(schedule) == 0 {
		return rotated
	}
	k = ((k % len(schedule)) + len(schedule)) % len(schedule)
	rotated = append(rotated, schedule[k:]...)
	return append(rotated, schedule[:k]...)
}

// CanonicalKey returns a key that is identical for a schedule and all its left rotations
func (schedule Schedule) CanonicalKey() string {
	if len(schedule) == 0 {
		return ""
	}

	best := 0
	for k := 1; k < len(schedule); k++ {
		for i := range len(schedule) {
			comparison := compareMatches(schedule[(k+i)%len(schedule)], schedule[(best+i)%len(schedule)])
			if comparison < 0 {
				best = k
			}
			if comparison != 0 {
				break
			}
		}
	}

	return schedule.Rotate(best).String()
}

func (schedule Schedule) String() string {
	return strings.Join(lo.Map(schedule, func(match Match, _ int) string { return match.String() }), "; ")
}
