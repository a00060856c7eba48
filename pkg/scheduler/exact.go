package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-air/gini/z"
	"github.com/limaJavier/doubles/pkg/model"
	"github.com/limaJavier/doubles/pkg/sat"
	"go.uber.org/zap"
)

type ExactMode string

const (
	// ExactOptimize maximizes the number of populated rounds
	ExactOptimize ExactMode = "optimize"
	// ExactFeasible requires every round to be populated and stops at the first model
	ExactFeasible ExactMode = "feasible"
)

type ExactOptions struct {
	Mode   ExactMode
	Rounds int // Rounds of the model, zero stands for the configuration's MatchesCount
}

func DefaultExactOptions() ExactOptions {
	return ExactOptions{Mode: ExactOptimize}
}

type exactStrategy struct {
	solver  sat.SATSolver
	options ExactOptions
}

func NewExactStrategy(solver sat.SATSolver, options ExactOptions) Strategy {
	if options.Mode == "" {
		options.Mode = ExactOptimize
	}
	return &exactStrategy{
		solver:  solver,
		options: options,
	}
}

func (strategy *exactStrategy) Name() string {
	return "exact"
}

func (strategy *exactStrategy) Search(ctx context.Context, problem *Problem) (Result, error) {
	logger := problem.logger().With(zap.String("strategy", strategy.Name()), zap.String("solver", strategy.solver.Name()))
	start := time.Now()

	rounds := strategy.options.Rounds
	if rounds == 0 {
		rounds = problem.Configuration.MatchesCount()
	}

	//** Initialize dependencies
	builder := sat.NewBuilder()
	state := newConstraintState(builder, problem.Universe, rounds)

	//** Build SAT instance
	// Constraints functions
	constraints := []func(state constraintState) []z.Lit{
		incidenceConstraints,
		roundSizeConstraints,
		roundTeamsConstraints,
		pairUniquenessConstraints,
		spreadConstraints,
		activityConstraints,
	}
	for _, constraint := range constraints {
		for _, lit := range constraint(state) {
			builder.Assert(lit)
		}
	}

	// Objective literals must exist before the circuit is tseitinized
	activeRounds := builder.Cardinality(state.activeRounds())
	objectives := make([]int64, rounds+1)
	for k := range rounds + 1 {
		objectives[k] = builder.Dimacs(activeRounds.AtLeast(k))
	}
	instance := builder.Build()
	logger.Debug("exact model built",
		zap.Uint64("variables", instance.Variables),
		zap.Int("clauses", len(instance.Clauses)),
		zap.Int("rounds", rounds),
	)

	//** Solve SAT instances
	result := Result{Strategy: strategy.Name()}
	found := false

	bound := 1
	if strategy.options.Mode == ExactFeasible {
		bound = rounds
	}
	for bound <= rounds {
		solution, err := strategy.solver.Solve(ctx, instance.WithClauses([]int64{objectives[bound]}))
		result.Iterations++
		if ctx.Err() != nil {
			return strategy.timeout(problem, result, found, start, ctx.Err())
		} else if err != nil {
			return Result{}, fmt.Errorf("exact search with %v failed: %w", strategy.solver.Name(), err)
		} else if solution == nil { // No model with at least bound rounds
			break
		}

		schedule, err := decode(solution, state)
		if err != nil {
			return Result{}, err
		}
		result.Schedule, found = schedule, true
		logger.Debug("incumbent improved", zap.Int("rounds", len(schedule)), zap.Int("bound", bound))

		if strategy.options.Mode == ExactFeasible {
			break
		}
		bound = len(schedule) + 1
	}

	result.Elapsed = time.Since(start)
	if !found {
		result.Status = StatusInfeasible
		return result, fmt.Errorf("%w: no schedule of %v players satisfies the constraints over %v rounds", model.ErrSolverInfeasible, problem.Configuration.N(), rounds)
	}

	result.Cost = problem.Evaluator.Score(result.Schedule)
	result.Status = StatusOptimal
	if strategy.options.Mode == ExactFeasible {
		result.Status = StatusFeasible
	}
	return result, nil
}

// timeout reports the incumbent, if any, together with ErrSolverTimeout
func (strategy *exactStrategy) timeout(problem *Problem, result Result, found bool, start time.Time, cause error) (Result, error) {
	result.Status = StatusTimeout
	result.Elapsed = time.Since(start)
	if found {
		result.Cost = problem.Evaluator.Score(result.Schedule)
	}
	return result, fmt.Errorf("%w: %w", model.ErrSolverTimeout, cause)
}

// decode turns the team indicators of every active round into a match
func decode(solution sat.SATSolution, state constraintState) (model.Schedule, error) {
	assignment := solution.Assignment()
	holds := func(index int) bool {
		return assignment[state.builder.Dimacs(state.variables[index])]
	}

	schedule := make(model.Schedule, 0, state.rounds)
	for round := range state.rounds {
		if !holds(state.indexer.Active(round)) {
			continue
		}

		teams := make([]model.Team, 0, 2)
		for pair := range state.pairs {
			if holds(state.indexer.Team(pair, round)) {
				teams = append(teams, state.pairs[pair])
			}
		}
		if len(teams) != 2 {
			return nil, fmt.Errorf("%w: round %v selects %v teams", model.ErrInvalidMatch, round, len(teams))
		}

		match, err := model.NewMatch(teams[0], teams[1])
		if err != nil {
			return nil, err
		}
		schedule = append(schedule, match)
	}
	return schedule, nil
}
