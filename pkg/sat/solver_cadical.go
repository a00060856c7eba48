package sat

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

type cadicalSolver struct{}

func NewCadicalSolver() SATSolver {
	return &cadicalSolver{}
}

func (solver *cadicalSolver) Name() string {
	return "cadical"
}

func (solver *cadicalSolver) Solve(ctx context.Context, sat *SAT) (SATSolution, error) {
	cadicalPath, err := getExecutablePath("cadicalPath", "cadical")
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, cadicalPath, "-q")
	output, err := runSolver(ctx, solver.Name(), cmd, strings.NewReader(sat.ToDIMACS()))
	if errors.Is(err, errUnsatisfiable) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return parseSolution(output)
}
