package scheduler

import (
	"github.com/go-air/gini/z"
	"github.com/limaJavier/doubles/pkg/model"
	"github.com/limaJavier/doubles/pkg/sat"
	"github.com/samber/lo"
)

// constraintState is shared by every constraint function of the exact model. Constraint functions return circuit
// literals that must all hold
type constraintState struct {
	builder   *sat.Builder
	indexer   indexer
	variables []z.Lit // Model variables laid out by the indexer
	pairs     []model.Team
	incident  [][]int // Pairs containing each player

	players,
	rounds int
}

func newConstraintState(builder *sat.Builder, universe *model.Universe, rounds int) constraintState {
	config := universe.Configuration()
	pairs := universe.Teams()

	incident := make([][]int, config.N())
	for pair, team := range pairs {
		for _, player := range team.Players() {
			index, _ := config.Index(player)
			incident[index] = append(incident[index], pair)
		}
	}

	indexer := newIndexer(len(pairs), config.N(), rounds)
	return constraintState{
		builder:   builder,
		indexer:   indexer,
		variables: lo.Times(indexer.Len(), func(_ int) z.Lit { return builder.Lit() }),
		pairs:     pairs,
		incident:  incident,
		players:   config.N(),
		rounds:    rounds,
	}
}

func (state constraintState) team(pair, round int) z.Lit {
	return state.variables[state.indexer.Team(pair, round)]
}

func (state constraintState) play(player, round int) z.Lit {
	return state.variables[state.indexer.Play(player, round)]
}

func (state constraintState) active(round int) z.Lit {
	return state.variables[state.indexer.Active(round)]
}

func (state constraintState) activeRounds() []z.Lit {
	return lo.Times(state.rounds, state.active)
}

// A player belongs to at most one team per round and plays iff one of its teams is selected
func incidenceConstraints(state constraintState) []z.Lit {
	constraints := make([]z.Lit, 0)

	for player := range state.players {
		for round := range state.rounds {
			teams := lo.Map(state.incident[player], func(pair int, _ int) z.Lit { return state.team(pair, round) })
			plays := state.play(player, round)

			constraints = append(constraints,
				state.builder.Cardinality(teams).AtMost(1),
				state.builder.Implies(plays, state.builder.Or(teams...)),
			)
			for _, team := range teams {
				constraints = append(constraints, state.builder.Implies(team, plays))
			}
		}
	}

	return constraints
}

// An active round seats exactly 4 players, an inactive one nobody
func roundSizeConstraints(state constraintState) []z.Lit {
	constraints := make([]z.Lit, 0, 2*state.rounds)

	for round := range state.rounds {
		seated := state.builder.Cardinality(lo.Times(state.players, func(player int) z.Lit { return state.play(player, round) }))
		active := state.active(round)

		constraints = append(constraints,
			state.builder.Implies(active, seated.Exactly(model.PlayersPerMatch)),
			state.builder.Implies(active.Not(), seated.AtMost(0)),
		)
	}

	return constraints
}

// An active round selects exactly 2 teams, an inactive one none
func roundTeamsConstraints(state constraintState) []z.Lit {
	constraints := make([]z.Lit, 0, 2*state.rounds)

	for round := range state.rounds {
		selected := state.builder.Cardinality(lo.Times(len(state.pairs), func(pair int) z.Lit { return state.team(pair, round) }))
		active := state.active(round)

		constraints = append(constraints,
			state.builder.Implies(active, selected.Exactly(2)),
			state.builder.Implies(active.Not(), selected.AtMost(0)),
		)
	}

	return constraints
}

// Every pair of players teams up at most once over the whole schedule
func pairUniquenessConstraints(state constraintState) []z.Lit {
	return lo.Times(len(state.pairs), func(pair int) z.Lit {
		return state.builder.Cardinality(lo.Times(state.rounds, func(round int) z.Lit { return state.team(pair, round) })).AtMost(1)
	})
}

// The difference between the most and the least appearances is at most one: count(p) >= k+1 implies count(q) >= k
func spreadConstraints(state constraintState) []z.Lit {
	appearances := lo.Times(state.players, func(player int) *sat.Cardinality {
		return state.builder.Cardinality(lo.Times(state.rounds, func(round int) z.Lit { return state.play(player, round) }))
	})

	constraints := make([]z.Lit, 0)
	for p := range state.players {
		for q := range state.players {
			if p == q {
				continue
			}
			for k := 1; k < state.rounds; k++ {
				constraints = append(constraints, state.builder.Implies(appearances[p].AtLeast(k+1), appearances[q].AtLeast(k)))
			}
		}
	}

	return constraints
}

// Active rounds come first: round r+1 active implies round r active
func activityConstraints(state constraintState) []z.Lit {
	constraints := make([]z.Lit, 0, state.rounds)
	for round := 1; round < state.rounds; round++ {
		constraints = append(constraints, state.builder.Implies(state.active(round), state.active(round-1)))
	}
	return constraints
}
