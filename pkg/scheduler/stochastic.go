package scheduler

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/limaJavier/doubles/pkg/model"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat/distuv"
)

type StochasticOptions struct {
	Samples     int  // Trajectories to sample
	Length      int  // Rounds per trajectory, zero stands for the configuration's MatchesCount
	MaxRetries  int  // Dead-end trajectories tolerated before giving up, zero stands for Samples
	Deduplicate bool // Treat a trajectory and its rotations as the same schedule
}

func DefaultStochasticOptions() StochasticOptions {
	return StochasticOptions{
		Samples:     1000,
		Deduplicate: true,
	}
}

type stochasticStrategy struct {
	options StochasticOptions
}

func NewStochasticStrategy(options StochasticOptions) Strategy {
	if options.Samples <= 0 {
		options.Samples = DefaultStochasticOptions().Samples
	}
	if options.MaxRetries <= 0 {
		options.MaxRetries = options.Samples
	}
	return &stochasticStrategy{options: options}
}

func (strategy *stochasticStrategy) Name() string {
	return "stochastic"
}

func (strategy *stochasticStrategy) Search(ctx context.Context, problem *Problem) (Result, error) {
	logger := problem.logger().With(zap.String("strategy", strategy.Name()))
	start := time.Now()

	length := strategy.options.Length
	if length == 0 {
		length = problem.Configuration.MatchesCount()
	}

	//** Initialize dependencies
	transitions := NewTransitionModel(problem.Universe)
	sampler := newTrajectorySampler(transitions, problem)

	//** Sample trajectories
	ranking := newScheduleRanking(problem.Evaluator, strategy.options.Deduplicate)
	result := Result{Strategy: strategy.Name()}
	for result.Iterations < strategy.options.Samples {
		if err := ctx.Err(); err != nil {
			return strategy.finish(problem, ranking, result, start, err)
		}

		trajectory, ok := sampler.Sample(length)
		if !ok {
			if result.Discarded++; result.Discarded > strategy.options.MaxRetries {
				logger.Warn("giving up on dead-end trajectories", zap.Int("discarded", result.Discarded))
				break
			}
			continue
		}

		result.Iterations++
		schedule, err := problem.Universe.Schedule(trajectory)
		if err != nil {
			return Result{}, err
		}
		ranking.Add(schedule)
	}

	logger.Debug("sampling finished",
		zap.Int("samples", result.Iterations),
		zap.Int("discarded", result.Discarded),
		zap.Int("perfect", len(ranking.Perfect())),
	)
	return strategy.finish(problem, ranking, result, start, nil)
}

func (strategy *stochasticStrategy) finish(problem *Problem, ranking *scheduleRanking, result Result, start time.Time, cause error) (Result, error) {
	result.Elapsed = time.Since(start)
	result.Perfect = ranking.Perfect()

	best, ok := ranking.Best()
	if ok {
		result.Schedule = best
		result.Cost = problem.Evaluator.Score(best)
		result.Status = heuristicStatus(problem, best)
	}

	switch {
	case cause != nil:
		result.Status = StatusTimeout
		return result, fmt.Errorf("%w: %w", model.ErrSolverTimeout, cause)
	case !ok:
		result.Status = StatusBestEffort
		return result, fmt.Errorf("%w: every one of the %v sampled trajectories reached a match without successors", model.ErrDegenerateSampling, result.Discarded)
	}
	return result, nil
}

// trajectorySampler draws Markov trajectories over the universe from the run's random generator
type trajectorySampler struct {
	transitions *TransitionModel
	problem     *Problem
	rows        []*distuv.Categorical // Nil for matches without successors
}

func newTrajectorySampler(transitions *TransitionModel, problem *Problem) *trajectorySampler {
	return &trajectorySampler{
		transitions: transitions,
		problem:     problem,
		rows:        newRowDistributions(transitions, problem.Random),
	}
}

// newRowDistributions builds one categorical distribution per match with successors, fed by random
func newRowDistributions(transitions *TransitionModel, random *rand.Rand) []*distuv.Categorical {
	rows := make([]*distuv.Categorical, transitions.Len())
	for x := range transitions.Len() {
		if transitions.Degree(x) == 0 {
			continue
		}
		row := distuv.NewCategorical(transitions.Row(x), random)
		rows[x] = &row
	}
	return rows
}

// Sample returns the universe indices of a trajectory whose first match is drawn uniformly. The boolean is false when
// the trajectory reached a match without successors before the requested length
func (sampler *trajectorySampler) Sample(length int) ([]int, bool) {
	trajectory := make([]int, 0, length)
	current := sampler.problem.Random.IntN(sampler.transitions.Len())
	trajectory = append(trajectory, current)

	for len(trajectory) < length {
		row := sampler.rows[current]
		if row == nil {
			return nil, false
		}
		current = int(row.Rand())
		trajectory = append(trajectory, current)
	}
	return trajectory, true
}
