package sat

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

type kissatSolver struct{}

func NewKissatSolver() SATSolver {
	return &kissatSolver{}
}

func (solver *kissatSolver) Name() string {
	return "kissat"
}

func (solver *kissatSolver) Solve(ctx context.Context, sat *SAT) (SATSolution, error) {
	kissatPath, err := getExecutablePath("kissatPath", "kissat")
	if err != nil {
		return nil, err
	}
	dimacs := sat.ToDIMACS() // Transform SAT into DIMACS-CNF string format

	cmd := exec.CommandContext(ctx, kissatPath, "-q", "--relaxed")
	output, err := runSolver(ctx, solver.Name(), cmd, strings.NewReader(dimacs)) // Feed dimacs into kissat's standard input
	if errors.Is(err, errUnsatisfiable) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return parseSolution(output)
}
