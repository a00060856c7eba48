package sat

import (
	"context"
	"fmt"
	"strings"
)

// SATSolution holds one signed DIMACS literal per assigned variable
type SATSolution []int64

type SAT struct {
	Variables uint64
	Clauses   [][]int64
}

type SATSolver interface {
	Name() string
	Solve(ctx context.Context, sat *SAT) (SATSolution, error) // Returns a solution of the SAT instance if satisfiable, else returns nil (these are valid outputs where error shall be nil)
}

func (s *SAT) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

// WithClauses returns a copy of the instance extended by the given clauses. The receiver's clause slices are shared, not copied
func (s *SAT) WithClauses(clauses ...[]int64) *SAT {
	extended := &SAT{
		Variables: s.Variables,
		Clauses:   make([][]int64, 0, len(s.Clauses)+len(clauses)),
	}
	extended.Clauses = append(extended.Clauses, s.Clauses...)
	for _, clause := range clauses {
		for _, literal := range clause {
			if variable := uint64(abs(literal)); variable > extended.Variables {
				extended.Variables = variable
			}
		}
		extended.Clauses = append(extended.Clauses, clause)
	}
	return extended
}

// Assignment indexes the solution by literal, a variable missing from the solution reads as false
func (solution SATSolution) Assignment() map[int64]bool {
	assignment := make(map[int64]bool, len(solution))
	for _, literal := range solution {
		assignment[literal] = true
	}
	return assignment
}

// Satisfies reports whether the solution is consistent and satisfies every clause of the instance
func (solution SATSolution) Satisfies(instance *SAT) bool {
	// Make sure there are no duplicates nor contradictions
	literals := make(map[int64]bool, len(solution))
	for _, literal := range solution {
		if literals[literal] || literals[-literal] {
			return false
		}
		literals[literal] = true
	}

	// Check that all clauses are satisfied
	for _, clause := range instance.Clauses {
		satisfied := false
		for _, literal := range clause {
			if literals[literal] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}

	return true
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
