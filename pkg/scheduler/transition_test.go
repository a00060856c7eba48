package scheduler

import (
	"testing"

	"github.com/limaJavier/doubles/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func newTestUniverse(t *testing.T, n int) *model.Universe {
	t.Helper()
	config, err := model.NewConfiguration(n)
	require.NoError(t, err)
	return model.NewUniverse(config)
}

func TestTransitionSymmetry(t *testing.T) {
	for n := 4; n <= 8; n++ {
		transitions := NewTransitionModel(newTestUniverse(t, n))

		for x := range transitions.Len() {
			assert.False(t, transitions.Reachable(x, x))
			for y := range transitions.Len() {
				assert.Equal(t, transitions.Reachable(x, y), transitions.Reachable(y, x), "players: %v, x: %v, y: %v", n, x, y)
			}
		}
	}
}

func TestTransitionRule(t *testing.T) {
	//** Arrange
	universe := newTestUniverse(t, 5)
	pool := universe.Configuration().Players()
	transitions := NewTransitionModel(universe)

	//** Assert
	for x := range universe.Len() {
		for y := range universe.Len() {
			source, destination := universe.At(x), universe.At(y)
			benchDisjoint := true
			for _, player := range source.Bench(pool) {
				if !destination.Contains(player) {
					benchDisjoint = false
				}
			}
			expected := x != y && !source.SharesTeam(destination) && benchDisjoint
			assert.Equal(t, expected, transitions.Reachable(x, y))
		}
	}
}

func TestTransitionProbabilities(t *testing.T) {
	scenarios := map[int]int{
		4: 2, // Every other match
		5: 8, // 4 possible benches, 2 of the 3 matches of each share no team
	}

	for n, degree := range scenarios {
		//** Arrange
		transitions := NewTransitionModel(newTestUniverse(t, n))
		probabilities := transitions.Probabilities()

		//** Assert
		rows, columns := probabilities.Dims()
		assert.Equal(t, transitions.Len(), rows)
		assert.Equal(t, transitions.Len(), columns)
		for x := range rows {
			row := transitions.Row(x)
			assert.Equal(t, degree, transitions.Degree(x))
			assert.InDelta(t, 1.0, floats.Sum(row), 1e-9)
			for y, probability := range row {
				if transitions.Reachable(x, y) {
					assert.InDelta(t, 1/float64(degree), probability, 1e-9)
				} else {
					assert.Zero(t, probability)
				}
			}
		}
	}
}

func TestTransitionDeadEnds(t *testing.T) {
	// Five benched players cannot all play in a four-player match
	transitions := NewTransitionModel(newTestUniverse(t, 9))

	for x := range transitions.Len() {
		assert.Zero(t, transitions.Degree(x))
		assert.Zero(t, floats.Sum(transitions.Row(x)))
	}
}

func TestRewardModel(t *testing.T) {
	for n := 4; n <= 6; n++ {
		//** Arrange
		universe := newTestUniverse(t, n)
		transitions := NewTransitionModel(universe)
		rewards := NewRewardModel(universe)

		//** Assert
		for x := range universe.Len() {
			// Self transition: -1 plus two equal team slots, the bench is only disjoint from itself when empty
			self := -3.0
			if universe.Configuration().BenchSize() == 0 {
				self += 5
			} else {
				self -= 1
			}
			assert.Equal(t, self, rewards.Reward(x, x))

			for y := range universe.Len() {
				if transitions.Reachable(x, y) {
					assert.Equal(t, 5.0, rewards.Reward(x, y))
				}
			}
		}
	}
}
