package sat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type minisatSolver struct{}

func NewMinisatSolver() SATSolver {
	return &minisatSolver{}
}

func (solver *minisatSolver) Name() string {
	return "minisat"
}

func (solver *minisatSolver) Solve(ctx context.Context, sat *SAT) (SATSolution, error) {
	minisatPath, err := getExecutablePath("minisatPath", "minisat")
	if err != nil {
		return nil, err
	}
	dimacs := sat.ToDIMACS() // Transform SAT into DIMACS-CNF string format

	// Create a temporary file to hold the DIMACS content
	inputTempFile, err := os.CreateTemp("", "dimacs-*.cnf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(inputTempFile.Name()) // Ensure the file is removed after execution

	outputTempFile, err := os.CreateTemp("", "minisat_output-*.cnf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	outputTempFile.Close()
	defer os.Remove(outputTempFile.Name())

	// Write the DIMACS content to the temporary file
	if _, err := inputTempFile.WriteString(dimacs); err != nil {
		return nil, fmt.Errorf("failed to write DIMACS to temporary file: %w", err)
	}
	if err := inputTempFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary file: %w", err)
	}

	cmd := exec.CommandContext(ctx, minisatPath, "-verb=0", inputTempFile.Name(), outputTempFile.Name())
	_, err = runSolver(ctx, solver.Name(), cmd, nil)
	if errors.Is(err, errUnsatisfiable) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	output, err := os.ReadFile(outputTempFile.Name()) // Read the output file
	if err != nil {
		return nil, fmt.Errorf("failed to read output file: %w", err)
	}
	return solver.parseSolution(string(output))
}

// Minisat writes "SAT" on the first line and the model, terminated by 0, on the second one
func (solver *minisatSolver) parseSolution(solverOutput string) (SATSolution, error) {
	lines := strings.Split(solverOutput, "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("unexpected minisat output: %q", solverOutput)
	}

	var parseErr error
	solution := lo.FilterMap(strings.Fields(lines[1]), func(valueStr string, _ int) (int64, bool) {
		value, err := strconv.ParseInt(valueStr, 10, 64)
		if err != nil && parseErr == nil {
			parseErr = fmt.Errorf("invalid literal in solver output: %w", err)
		}
		return value, value != 0
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return solution, nil
}
