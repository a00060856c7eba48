package sat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// ConfigPath points to a JSON object mapping solver keys (e.g. "kissatPath") to executables
var ConfigPath = "config.json"

var errUnsatisfiable = errors.New("unsatisfiable")

// ErrSolverUnavailable is returned when an external solver binary can be found neither in the config nor in $PATH
var ErrSolverUnavailable = errors.New("solver executable not found")

// runSolver executes an external solver. Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable,
// the latter is reported as errUnsatisfiable
func runSolver(ctx context.Context, name string, cmd *exec.Cmd, stdin io.Reader) (string, error) {
	cmd.Stdin = stdin

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err != nil && cmd.ProcessState == nil {
		return "", fmt.Errorf("cannot start %v: %w", name, err)
	}

	switch cmd.ProcessState.ExitCode() {
	case 10:
		return stdOut.String(), nil
	case 20:
		return "", errUnsatisfiable
	default:
		return "", fmt.Errorf("an error occurred during %v execution: %v : %v", name, err, stderr.String())
	}
}

func parseSolution(solverOutput string) (SATSolution, error) {
	var parseErr error
	values := lo.Map(
		lo.Reduce(
			lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
				return len(line) > 1 && line[0] == 'v'
			}),
			func(values []string, line string, _ int) []string {
				return append(values, strings.Fields(line[1:])...)
			},
			[]string{},
		),
		func(valueStr string, _ int) int64 {
			value, err := strconv.ParseInt(valueStr, 10, 64)
			if err != nil && parseErr == nil {
				parseErr = fmt.Errorf("invalid literal in solver output: %w", err)
			}
			return value
		},
	)
	if parseErr != nil {
		return nil, parseErr
	}

	// Drop the terminating zero
	return lo.Filter(values, func(value int64, _ int) bool { return value != 0 }), nil
}

// getExecutablePath resolves a solver binary from ConfigPath and falls back to the default name looked up in $PATH
func getExecutablePath(solver, fallback string) (string, error) {
	if bytes, err := os.ReadFile(ConfigPath); err == nil {
		var inputJson map[string]any
		if err := json.Unmarshal(bytes, &inputJson); err != nil {
			return "", fmt.Errorf("cannot read %v file: %w", ConfigPath, err)
		}

		var config map[string]string
		if err := mapstructure.Decode(inputJson, &config); err != nil {
			return "", fmt.Errorf("cannot decode %v file: %w", ConfigPath, err)
		}

		if path, ok := config[solver]; ok && path != "" {
			return path, nil
		}
	}

	path, err := exec.LookPath(fallback)
	if err != nil {
		return "", fmt.Errorf("%w: \"%v\" is not present in config and %v", ErrSolverUnavailable, solver, err)
	}
	return path, nil
}
