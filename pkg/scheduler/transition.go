package scheduler

import (
	"github.com/limaJavier/doubles/pkg/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// TransitionModel is the legal "next match" relation over a universe: y follows x iff x != y, they share no team and
// their benches are disjoint. Probabilities are the relation normalized per row; a row without successors stays zero
type TransitionModel struct {
	universe      *model.Universe
	predicates    predicateEvaluator
	probabilities *mat.Dense
	degrees       []int
}

func NewTransitionModel(universe *model.Universe) *TransitionModel {
	return newTransitionModel(universe, newPredicateEvaluator(universe))
}

func newTransitionModel(universe *model.Universe, predicates predicateEvaluator) *TransitionModel {
	size := universe.Len()
	transitions := &TransitionModel{
		universe:      universe,
		predicates:    predicates,
		probabilities: mat.NewDense(size, size, nil),
		degrees:       make([]int, size),
	}

	row := make([]float64, size)
	for x := range size {
		for y := range size {
			row[y] = 0
			if predicates.Reachable(x, y) {
				row[y] = 1
				transitions.degrees[x]++
			}
		}

		if sum := floats.Sum(row); sum > 0 {
			floats.Scale(1/sum, row)
		}
		transitions.probabilities.SetRow(x, row)
	}

	return transitions
}

func (transitions *TransitionModel) Len() int {
	return transitions.universe.Len()
}

func (transitions *TransitionModel) Reachable(x, y int) bool {
	return transitions.predicates.Reachable(x, y)
}

// Degree is the number of legal successors of x
func (transitions *TransitionModel) Degree(x int) int {
	return transitions.degrees[x]
}

// Row returns a copy of the probability distribution over the successors of x
func (transitions *TransitionModel) Row(x int) []float64 {
	return mat.Row(nil, x, transitions.probabilities)
}

// Probabilities returns a copy of the row-stochastic matrix
func (transitions *TransitionModel) Probabilities() *mat.Dense {
	return mat.DenseCopyOf(transitions.probabilities)
}
