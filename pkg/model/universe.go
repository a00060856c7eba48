package model

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Universe is the set of every structurally valid match over a player pool. It is built once per configuration and is read-only afterwards
type Universe struct {
	config  *Configuration
	teams   []Team
	matches []Match
	index   map[Match]int
}

func NewUniverse(config *Configuration) *Universe {
	players := config.Players()

	//** Enumerate teams
	teams := make([]Team, 0, len(players)*(len(players)-1)/2)
	for i := range len(players) - 1 {
		for j := i + 1; j < len(players); j++ {
			teams = append(teams, lo.Must(NewTeam(players[i], players[j])))
		}
	}

	//** Enumerate team pairs
	generator := newPermutationGenerator(len(teams), len(teams))
	permutations := generator.ConstrainedPermutations([]func(permutation []int) bool{
		// Unordered pair: first team index < second team index
		func(permutation []int) bool {
			team1, team2 := permutation[0], permutation[1]

			return team1 == unassigned ||
				team2 == unassigned ||

				// Actual predicate
				team1 < team2
		},
		// Valid(t1, t2) = 1
		func(permutation []int) bool {
			team1, team2 := permutation[0], permutation[1]

			return team1 == unassigned ||
				team2 == unassigned ||

				// Actual predicate
				isMatchValid(players, teams[team1], teams[team2])
		},
	})

	universe := &Universe{
		config:  config,
		teams:   teams,
		matches: make([]Match, 0, len(permutations)),
		index:   make(map[Match]int, len(permutations)),
	}
	for _, permutation := range permutations {
		match := lo.Must(NewMatch(teams[permutation[0]], teams[permutation[1]]))
		if _, ok := universe.index[match]; ok {
			continue
		}
		universe.index[match] = len(universe.matches)
		universe.matches = append(universe.matches, match)
	}

	return universe
}

// Checks whether the two teams hold exactly 4 distinct players and that those players together with the bench make up the whole pool
func isMatchValid(pool []Player, team1, team2 Team) bool {
	players1, players2 := team1.Players(), team2.Players()
	players := lo.Uniq([]Player{players1[0], players1[1], players2[0], players2[1]})
	if len(players) != PlayersPerMatch {
		return false
	}

	bench := lo.Without(pool, players...)
	left, right := lo.Difference(players, bench)
	symmetricDifference := append(left, right...)
	slices.Sort(symmetricDifference)

	return slices.Equal(symmetricDifference, pool)
}

func (universe *Universe) Configuration() *Configuration {
	return universe.config
}

func (universe *Universe) Len() int {
	return len(universe.matches)
}

func (universe *Universe) At(index int) Match {
	return universe.matches[index]
}

// Teams returns every pair of players of the pool, ordered by the players' position in the pool
func (universe *Universe) Teams() []Team {
	return slices.Clone(universe.teams)
}

// Matches returns a copy of the universe in enumeration order
func (universe *Universe) Matches() []Match {
	return slices.Clone(universe.matches)
}

func (universe *Universe) IndexOf(match Match) (int, bool) {
	index, ok := universe.index[match]
	return index, ok
}

func (universe *Universe) Contains(match Match) bool {
	_, ok := universe.index[match]
	return ok
}

// Schedule maps universe indices into a schedule
func (universe *Universe) Schedule(indices []int) (Schedule, error) {
	schedule := make(Schedule, 0, len(indices))
	for _, index := range indices {
		if index < 0 || index >= len(universe.matches) {
			return nil, fmt.Errorf("%w: match index %v is outside the universe (%v matches)", ErrInvalidMatch, index, len(universe.matches))
		}
		schedule = append(schedule, universe.matches[index])
	}
	return schedule, nil
}
