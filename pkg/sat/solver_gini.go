package sat

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// Interval between checks of the context while gini searches in the background
const giniPollInterval = 5 * time.Millisecond

type giniSolver struct{}

// NewGiniSolver returns the in-process backend. It needs no external binary
func NewGiniSolver() SATSolver {
	return &giniSolver{}
}

func (solver *giniSolver) Name() string {
	return "gini"
}

func (solver *giniSolver) Solve(ctx context.Context, sat *SAT) (SATSolution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := gini.New()
	for _, clause := range sat.Clauses {
		for _, literal := range clause {
			g.Add(z.Dimacs2Lit(int(literal)))
		}
		g.Add(z.LitNull)
	}

	search := g.GoSolve()
	ticker := time.NewTicker(giniPollInterval)
	defer ticker.Stop()

	var result int
	for {
		if res, done := search.Test(); done {
			result = res
			break
		}
		select {
		case <-ctx.Done():
			search.Stop()
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	// 1 stands for satisfiable and -1 for unsatisfiable
	if result != 1 {
		return nil, nil
	}

	variables := min(uint64(g.MaxVar()), sat.Variables)
	solution := make(SATSolution, 0, variables)
	for variable := range variables {
		literal := z.Var(variable + 1).Pos()
		if g.Value(literal) {
			solution = append(solution, int64(literal.Dimacs()))
		} else {
			solution = append(solution, int64(literal.Not().Dimacs()))
		}
	}
	return solution, nil
}
