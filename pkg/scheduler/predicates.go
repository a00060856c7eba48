package scheduler

import (
	"github.com/limaJavier/doubles/pkg/model"
	"github.com/samber/lo"
)

type predicateEvaluator interface {
	// Checks whether match1 and match2 have at least one team in common
	SharesTeam(match1, match2 int) bool

	// Checks whether no player rests in both match1 and match2 (i.e. everyone benched in match1 plays in match2)
	BenchDisjoint(match1, match2 int) bool

	// Checks whether match2 is a legal continuation of match1
	Reachable(match1, match2 int) bool
}

// matrixPredicateEvaluator precomputes every predicate over the universe once, so lookups are constant time
type matrixPredicateEvaluator struct {
	sharesTeam    [][]bool
	benchDisjoint [][]bool
}

func newPredicateEvaluator(universe *model.Universe) predicateEvaluator {
	pool := universe.Configuration().Players()
	size := universe.Len()

	benches := lo.Map(universe.Matches(), func(match model.Match, _ int) []model.Player {
		return match.Bench(pool)
	})

	evaluator := matrixPredicateEvaluator{
		sharesTeam:    make([][]bool, size),
		benchDisjoint: make([][]bool, size),
	}
	for i := range size {
		evaluator.sharesTeam[i] = make([]bool, size)
		evaluator.benchDisjoint[i] = make([]bool, size)

		for j := range size {
			evaluator.sharesTeam[i][j] = universe.At(i).SharesTeam(universe.At(j))
			evaluator.benchDisjoint[i][j] = !lo.Some(benches[i], benches[j])
		}
	}

	return &evaluator
}

func (evaluator *matrixPredicateEvaluator) SharesTeam(match1, match2 int) bool {
	return evaluator.sharesTeam[match1][match2]
}

func (evaluator *matrixPredicateEvaluator) BenchDisjoint(match1, match2 int) bool {
	return evaluator.benchDisjoint[match1][match2]
}

func (evaluator *matrixPredicateEvaluator) Reachable(match1, match2 int) bool {
	return match1 != match2 &&
		!evaluator.sharesTeam[match1][match2] &&
		evaluator.benchDisjoint[match1][match2]
}
