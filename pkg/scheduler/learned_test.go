package scheduler

import (
	"context"
	"math"
	"testing"

	"github.com/limaJavier/doubles/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyPrefersRotations(t *testing.T) {
	//** Arrange
	universe := newTestUniverse(t, 5)
	transitions := NewTransitionModel(universe)
	rewards := NewRewardModel(universe)
	options := DefaultLearnedOptions()
	options.ExploitRate = 0
	options.Episodes = 500
	policy := NewPolicy(transitions, rewards, newRandom(3), options)

	//** Act
	err := policy.Train(context.Background())

	//** Assert
	require.NoError(t, err)
	rewarded, penalized := math.Inf(1), math.Inf(-1)
	for x := range universe.Len() {
		for y := range universe.Len() {
			switch reward := rewards.Reward(x, y); {
			case reward == rewardRotation:
				rewarded = math.Min(rewarded, policy.Value(x, y))
			case reward < 0:
				penalized = math.Max(penalized, policy.Value(x, y))
			}
		}
	}
	assert.Greater(t, rewarded, penalized)
}

func TestPolicyRewardHistory(t *testing.T) {
	//** Arrange
	universe := newTestUniverse(t, 5)
	options := LearnedOptions{Alpha: 0.5, Gamma: 0.5, ExploitRate: 0, Episodes: 20, Horizon: 4}
	policy := NewPolicy(NewTransitionModel(universe), NewRewardModel(universe), newRandom(1), options)

	//** Act
	err := policy.Train(context.Background())

	//** Assert
	// Pure exploration only follows legal transitions
	require.NoError(t, err)
	history := policy.RewardHistory()
	assert.Len(t, history, 20)
	for _, total := range history {
		assert.Equal(t, float64(4*rewardRotation), total)
	}
}

func TestPolicyGenerate(t *testing.T) {
	universe := newTestUniverse(t, 6)
	policy := NewPolicy(NewTransitionModel(universe), NewRewardModel(universe), newRandom(5), DefaultLearnedOptions())
	require.NoError(t, policy.Train(context.Background()))

	trajectories := policy.Generate(10, 6)

	assert.Len(t, trajectories, 10)
	for _, trajectory := range trajectories {
		assert.Len(t, trajectory, 6)
		for _, index := range trajectory {
			assert.GreaterOrEqual(t, index, 0)
			assert.Less(t, index, universe.Len())
		}
	}
}

func TestLearnedSearch(t *testing.T) {
	//** Arrange
	problem := newTestProblem(t, 4, 9, model.WithMatchesCount(3))
	options := DefaultLearnedOptions()
	options.Episodes = 50

	//** Act
	result, err := NewLearnedStrategy(options).Search(context.Background(), problem)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, "learned", result.Strategy)
	assert.Len(t, result.Schedule, 3)
	assert.Equal(t, 50, result.Iterations)
	assert.Len(t, result.RewardHistory, 50)
	assert.Equal(t, problem.Evaluator.Score(result.Schedule).Total, result.Cost.Total)
	assert.Contains(t, []Status{StatusFeasible, StatusBestEffort}, result.Status)
	for _, schedule := range result.Perfect {
		assert.True(t, problem.Evaluator.Validate(schedule))
	}
}

func TestLearnedCancelled(t *testing.T) {
	problem := newTestProblem(t, 5, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewLearnedStrategy(DefaultLearnedOptions()).Search(ctx, problem)

	assert.ErrorIs(t, err, model.ErrSolverTimeout)
	assert.Equal(t, StatusTimeout, result.Status)
	assert.Empty(t, result.RewardHistory)
}
