package sat

import (
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGini(t *testing.T) {
	solver := NewGiniSolver()
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})
	t.Run("Unsatisfiable instance", func(t *testing.T) {
		unsatisfiableExecution(t, solver)
	})
}

func TestKissat(t *testing.T) {
	solver := availableSolver(t, NewKissatSolver(), "kissatPath", "kissat")
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})
	t.Run("Unsatisfiable instance", func(t *testing.T) {
		unsatisfiableExecution(t, solver)
	})
}

func TestCadical(t *testing.T) {
	solver := availableSolver(t, NewCadicalSolver(), "cadicalPath", "cadical")
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})
	t.Run("Unsatisfiable instance", func(t *testing.T) {
		unsatisfiableExecution(t, solver)
	})
}

func TestMinisat(t *testing.T) {
	solver := availableSolver(t, NewMinisatSolver(), "minisatPath", "minisat")
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})
	t.Run("Unsatisfiable instance", func(t *testing.T) {
		unsatisfiableExecution(t, solver)
	})
}

func TestGiniCancelled(t *testing.T) {
	//** Arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	//** Act
	solution, err := NewGiniSolver().Solve(ctx, generateSATInstance(rand.New(rand.NewPCG(1, 1)), 10, 10))

	//** Assert
	assert.Nil(t, solution)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestToDIMACS(t *testing.T) {
	instance := &SAT{
		Variables: 3,
		Clauses:   [][]int64{{1, -2}, {3}},
	}

	assert.Equal(t, "p cnf 3 2\n1 -2 0\n3 0\n", instance.ToDIMACS())
}

func TestWithClauses(t *testing.T) {
	//** Arrange
	instance := &SAT{Variables: 2, Clauses: [][]int64{{1, 2}}}

	//** Act
	extended := instance.WithClauses([]int64{-5})

	//** Assert
	assert.Len(t, instance.Clauses, 1)
	assert.Len(t, extended.Clauses, 2)
	assert.Equal(t, uint64(5), extended.Variables)
	assert.Equal(t, uint64(2), instance.Variables)
}

func TestParseSolution(t *testing.T) {
	output := "c comment\ns SATISFIABLE\nv 1 -2 3\nv -4 5 0\n"

	solution, err := parseSolution(output)

	require.NoError(t, err)
	assert.Equal(t, SATSolution{1, -2, 3, -4, 5}, solution)

	_, err = parseSolution("v 1 x 0\n")
	assert.Error(t, err)
}

func TestParseMinisatSolution(t *testing.T) {
	solution, err := (&minisatSolver{}).parseSolution("SAT\n1 -2 3 0\n")

	require.NoError(t, err)
	assert.Equal(t, SATSolution{1, -2, 3}, solution)
}

func TestExecutablePathFallback(t *testing.T) {
	previous := ConfigPath
	ConfigPath = filepath.Join(t.TempDir(), "missing.json")
	defer func() { ConfigPath = previous }()

	_, err := getExecutablePath("fooPath", "definitely-not-a-sat-solver")

	assert.True(t, errors.Is(err, ErrSolverUnavailable))
}

func availableSolver(t *testing.T, solver SATSolver, key, fallback string) SATSolver {
	t.Helper()
	if _, err := getExecutablePath(key, fallback); err != nil {
		t.Skipf("%v is not available: %v", solver.Name(), err)
	}
	return solver
}

func randomExecution(t *testing.T, solver SATSolver) {
	random := rand.New(rand.NewPCG(42, 7))
	unsatisfiableCount := 0

	for range 10 {
		//** Arrange
		instance := generateSATInstance(random, uint64(random.IntN(60)+1), random.IntN(120)+1)

		//** Act
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		solution, err := solver.Solve(ctx, instance)
		cancel()

		//** Assert
		require.NoError(t, err)
		if solution == nil {
			unsatisfiableCount++
			continue
		}
		assert.True(t, solution.Satisfies(instance), "wrong answer")
	}

	t.Logf("Unsatisfiable instances: %v", unsatisfiableCount)
}

func unsatisfiableExecution(t *testing.T, solver SATSolver) {
	instance := &SAT{
		Variables: 2,
		Clauses:   [][]int64{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}},
	}

	solution, err := solver.Solve(context.Background(), instance)

	require.NoError(t, err)
	assert.Nil(t, solution)
}

func generateSATInstance(random *rand.Rand, literals uint64, clauses int) *SAT {
	satInstance := &SAT{
		Variables: literals,
		Clauses:   make([][]int64, clauses),
	}

	for i := range clauses {
		satInstance.Clauses[i] = make([]int64, 0, literals)
		for j := range literals {
			if random.Float32() < 0.1 {
				var sign int64 = 1
				if random.Float32() < 0.5 {
					sign = -1
				}
				satInstance.Clauses[i] = append(satInstance.Clauses[i], sign*(1+int64(j)))
			}
		}

		if len(satInstance.Clauses[i]) == 0 {
			var sign int64 = 1
			if random.Float32() < 0.5 {
				sign = -1
			}
			satInstance.Clauses[i] = append(satInstance.Clauses[i], sign*(1+random.Int64N(int64(literals))))
		}
	}

	return satInstance
}
