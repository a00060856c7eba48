package scheduler

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/limaJavier/doubles/internal/metrics"
	"github.com/limaJavier/doubles/internal/runlog"
	"github.com/limaJavier/doubles/pkg/model"
	"github.com/limaJavier/doubles/pkg/sat"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine turns requests into runs: it builds the problem, picks the strategy and records the outcome
type Engine struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
	runLog  *runlog.RunLog
	solvers map[string]sat.SATSolver
}

type EngineOption func(*Engine)

func WithLogger(logger *zap.Logger) EngineOption {
	return func(engine *Engine) { engine.logger = logger }
}

func WithMetrics(metrics *metrics.Metrics) EngineOption {
	return func(engine *Engine) { engine.metrics = metrics }
}

func WithRunLog(runLog *runlog.RunLog) EngineOption {
	return func(engine *Engine) { engine.runLog = runLog }
}

// WithSolver registers (or replaces) a SAT backend under its name
func WithSolver(solver sat.SATSolver) EngineOption {
	return func(engine *Engine) { engine.solvers[solver.Name()] = solver }
}

func NewEngine(opts ...EngineOption) *Engine {
	engine := &Engine{
		logger:  zap.NewNop(),
		solvers: make(map[string]sat.SATSolver),
	}
	for _, solver := range []sat.SATSolver{sat.NewGiniSolver(), sat.NewKissatSolver(), sat.NewCadicalSolver(), sat.NewMinisatSolver()} {
		engine.solvers[solver.Name()] = solver
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Run executes the strategy selected by the request. Outcome errors (infeasible, timeout, degenerate sampling) come
// together with a meaningful Result
func (engine *Engine) Run(ctx context.Context, request Request) (Result, error) {
	problem, seed, err := engine.prepare(request)
	if err != nil {
		return Result{}, err
	}

	strategy, err := engine.strategy(request, request.Strategy)
	if err != nil {
		return Result{}, err
	}
	return engine.run(ctx, request, strategy, problem, seed)
}

// Compare runs several strategies on the same problem concurrently. Each strategy gets its own generator, seeded from
// the request's seed plus its position. An outcome error of one strategy does not stop the others
func (engine *Engine) Compare(ctx context.Context, request Request, names ...string) ([]Result, error) {
	problem, seed, err := engine.prepare(request)
	if err != nil {
		return nil, err
	}

	strategies := make([]Strategy, 0, len(names))
	for _, name := range names {
		strategy, err := engine.strategy(request, name)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, strategy)
	}

	results := make([]Result, len(strategies))
	g, ctx := errgroup.WithContext(ctx)
	for i, strategy := range strategies {
		g.Go(func() error {
			strategySeed := seed + uint64(i)
			result, err := engine.run(ctx, request, strategy, problem.fork(strategySeed), strategySeed)
			results[i] = result
			if err != nil && !isOutcome(err) {
				return fmt.Errorf("strategy %v failed: %w", strategy.Name(), err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (engine *Engine) prepare(request Request) (*Problem, uint64, error) {
	if err := request.Validate(); err != nil {
		return nil, 0, err
	}

	config, err := request.Configuration()
	if err != nil {
		return nil, 0, err
	}

	seed := request.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	problem := NewProblem(config, request.Evaluator(config), newRandom(seed))
	problem.Logger = engine.logger
	engine.logger.Debug("problem prepared",
		zap.Int("players", config.N()),
		zap.Int("matches", problem.Universe.Len()),
		zap.Int("rounds", config.MatchesCount()),
		zap.Int("target_games", config.TargetGamesPerPlayer()),
	)
	return problem, seed, nil
}

func (engine *Engine) strategy(request Request, name string) (Strategy, error) {
	switch name {
	case "exact":
		solver, ok := engine.solvers[request.Exact.Solver]
		if !ok {
			return nil, fmt.Errorf("%w: unknown solver \"%v\"", model.ErrInvalidConfiguration, request.Exact.Solver)
		}
		return NewExactStrategy(solver, request.ExactOptions()), nil
	case "stochastic":
		return NewStochasticStrategy(request.StochasticOptions()), nil
	case "learned":
		return NewLearnedStrategy(request.LearnedOptions()), nil
	}
	return nil, fmt.Errorf("%w: unknown strategy \"%v\"", model.ErrInvalidConfiguration, name)
}

func (engine *Engine) run(ctx context.Context, request Request, strategy Strategy, problem *Problem, seed uint64) (Result, error) {
	if request.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, request.Timeout)
		defer cancel()
	}

	result, err := strategy.Search(ctx, problem)
	if err != nil && !isOutcome(err) {
		engine.logger.Error("run failed", zap.String("strategy", strategy.Name()), zap.Error(err))
		return result, err
	}

	result.RunID = uuid.NewString()
	result.Strategy = strategy.Name()
	result.Seed = seed
	engine.record(problem, result, err)
	return result, err
}

func (engine *Engine) record(problem *Problem, result Result, err error) {
	fields := []zap.Field{
		zap.String("run_id", result.RunID),
		zap.String("strategy", result.Strategy),
		zap.Int("players", problem.Configuration.N()),
		zap.String("status", string(result.Status)),
		zap.Int("cost", result.Cost.Total),
		zap.Int("rounds", len(result.Schedule)),
		zap.Duration("elapsed", result.Elapsed),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	engine.logger.Info("run finished", fields...)

	engine.metrics.ObserveRun(metrics.Run{
		Strategy:   result.Strategy,
		Status:     string(result.Status),
		Elapsed:    result.Elapsed,
		Cost:       result.Cost.Total,
		Iterations: result.Iterations,
		Discarded:  result.Discarded,
	})
	engine.runLog.Append(runlog.Entry{
		RunID:      result.RunID,
		Players:    problem.Configuration.N(),
		Rounds:     len(result.Schedule),
		Strategy:   result.Strategy,
		Status:     string(result.Status),
		Cost:       result.Cost.Total,
		Iterations: result.Iterations,
		Seed:       result.Seed,
		Elapsed:    result.Elapsed,
	})
}

// isOutcome reports whether err describes how a search ended rather than a failure to run it
func isOutcome(err error) bool {
	return errors.Is(err, model.ErrSolverInfeasible) ||
		errors.Is(err, model.ErrSolverTimeout) ||
		errors.Is(err, model.ErrDegenerateSampling)
}
