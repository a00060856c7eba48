package scheduler

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/limaJavier/doubles/pkg/model"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

type LearnedOptions struct {
	Alpha       float64 // Learning rate
	Gamma       float64 // Discount
	ExploitRate float64 // Probability of following the table instead of the transition distribution while training
	Episodes    int
	Horizon     int // Steps per episode
	Generations int // Greedy trajectories generated after training
	Length      int // Rounds per generated trajectory, zero stands for the configuration's MatchesCount
	Deduplicate bool
}

func DefaultLearnedOptions() LearnedOptions {
	return LearnedOptions{
		Alpha:       0.2,
		Gamma:       0.9,
		ExploitRate: 0.8,
		Episodes:    200,
		Horizon:     10,
		Generations: 100,
		Deduplicate: true,
	}
}

// Policy is a tabular action-value function over the universe: the state is the current match and the action is the next one
type Policy struct {
	transitions *TransitionModel
	rewards     *RewardModel
	rows        []*distuv.Categorical
	values      *mat.Dense
	random      *rand.Rand
	options     LearnedOptions
	history     []float64
}

func NewPolicy(transitions *TransitionModel, rewards *RewardModel, random *rand.Rand, options LearnedOptions) *Policy {
	return &Policy{
		transitions: transitions,
		rewards:     rewards,
		rows:        newRowDistributions(transitions, random),
		values:      mat.NewDense(transitions.Len(), transitions.Len(), nil),
		random:      random,
		options:     options,
	}
}

// Train runs the configured episodes. The context is checked between episodes
func (policy *Policy) Train(ctx context.Context) error {
	for range policy.options.Episodes {
		if err := ctx.Err(); err != nil {
			return err
		}

		total := 0.0
		current := policy.random.IntN(policy.transitions.Len())
		for range policy.options.Horizon {
			next := policy.step(current)
			reward := policy.rewards.Reward(current, next)
			total += reward

			policy.update(current, next, reward)
			current = next
		}
		policy.history = append(policy.history, total)
	}
	return nil
}

// step explores along the transition distribution or exploits the table. A match without successors is always exploited
func (policy *Policy) step(state int) int {
	if row := policy.rows[state]; row != nil && policy.random.Float64() >= policy.options.ExploitRate {
		return int(row.Rand())
	}
	return policy.Best(state)
}

// One-step update: Q(s,a) += alpha * (reward + gamma * max Q(a,.) - Q(s,a))
func (policy *Policy) update(state, action int, reward float64) {
	value := policy.values.At(state, action)
	next := floats.Max(policy.values.RawRowView(action))
	policy.values.Set(state, action, value+policy.options.Alpha*(reward+policy.options.Gamma*next-value))
}

// Best returns the action of highest value from state, ties are broken uniformly at random
func (policy *Policy) Best(state int) int {
	row := policy.values.RawRowView(state)
	best := floats.Max(row)

	candidates := make([]int, 0, len(row))
	for action, value := range row {
		if value == best {
			candidates = append(candidates, action)
		}
	}
	return candidates[policy.random.IntN(len(candidates))]
}

func (policy *Policy) Value(state, action int) float64 {
	return policy.values.At(state, action)
}

// RewardHistory returns the total reward of every training episode
func (policy *Policy) RewardHistory() []float64 {
	return append([]float64(nil), policy.history...)
}

// Generate follows the table greedily from count random starts, each trajectory holds length matches
func (policy *Policy) Generate(count, length int) [][]int {
	trajectories := make([][]int, 0, count)
	for range count {
		current := policy.random.IntN(policy.transitions.Len())
		trajectory := []int{current}
		for len(trajectory) < length {
			current = policy.Best(current)
			trajectory = append(trajectory, current)
		}
		trajectories = append(trajectories, trajectory)
	}
	return trajectories
}

type learnedStrategy struct {
	options LearnedOptions
}

func NewLearnedStrategy(options LearnedOptions) Strategy {
	if options.Generations <= 0 {
		options.Generations = DefaultLearnedOptions().Generations
	}
	return &learnedStrategy{options: options}
}

func (strategy *learnedStrategy) Name() string {
	return "learned"
}

func (strategy *learnedStrategy) Search(ctx context.Context, problem *Problem) (Result, error) {
	logger := problem.logger().With(zap.String("strategy", strategy.Name()))
	start := time.Now()

	length := strategy.options.Length
	if length == 0 {
		length = problem.Configuration.MatchesCount()
	}

	//** Initialize dependencies
	predicates := newPredicateEvaluator(problem.Universe)
	transitions := newTransitionModel(problem.Universe, predicates)
	rewards := newRewardModel(problem.Universe, predicates)
	policy := NewPolicy(transitions, rewards, problem.Random, strategy.options)

	//** Train
	result := Result{Strategy: strategy.Name()}
	err := policy.Train(ctx)
	result.RewardHistory = policy.RewardHistory()
	result.Iterations = len(result.RewardHistory)
	if err != nil {
		result.Status = StatusTimeout
		result.Elapsed = time.Since(start)
		return result, fmt.Errorf("%w: %w", model.ErrSolverTimeout, err)
	}
	logger.Debug("policy trained", zap.Int("episodes", result.Iterations))

	//** Generate schedules
	ranking := newScheduleRanking(problem.Evaluator, strategy.options.Deduplicate)
	for _, trajectory := range policy.Generate(strategy.options.Generations, length) {
		schedule, err := problem.Universe.Schedule(trajectory)
		if err != nil {
			return Result{}, err
		}
		ranking.Add(schedule)
	}

	result.Elapsed = time.Since(start)
	result.Perfect = ranking.Perfect()
	best, ok := ranking.Best()
	if !ok {
		result.Status = StatusBestEffort
		return result, nil
	}
	result.Schedule = best
	result.Cost = problem.Evaluator.Score(best)
	result.Status = heuristicStatus(problem, best)
	return result, nil
}
