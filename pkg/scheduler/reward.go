package scheduler

import (
	"github.com/limaJavier/doubles/pkg/model"
	"gonum.org/v1/gonum/mat"
)

const (
	rewardRotation = 5  // Everyone benched in the source match plays in the destination one
	penaltyRule    = -1 // Per violated rule: self transition, shared team, overlapping benches
)

// RewardModel scores every (source, destination) pair of the universe as a move of the learned policy
type RewardModel struct {
	rewards *mat.Dense
}

func NewRewardModel(universe *model.Universe) *RewardModel {
	return newRewardModel(universe, newPredicateEvaluator(universe))
}

func newRewardModel(universe *model.Universe, predicates predicateEvaluator) *RewardModel {
	size := universe.Len()
	rewards := mat.NewDense(size, size, nil)

	for x := range size {
		source := universe.At(x).Teams()

		for y := range size {
			destination := universe.At(y).Teams()
			reward := 0.0

			if x == y {
				reward += penaltyRule
			}

			// Every slot of the source against every slot of the destination
			for _, team := range source {
				for _, nextTeam := range destination {
					if team == nextTeam {
						reward += penaltyRule
					}
				}
			}

			if predicates.BenchDisjoint(x, y) {
				reward += rewardRotation
			} else {
				reward += penaltyRule
			}

			rewards.Set(x, y, reward)
		}
	}

	return &RewardModel{rewards: rewards}
}

func (table *RewardModel) Reward(x, y int) float64 {
	return table.rewards.At(x, y)
}

// Matrix returns a copy of the reward table
func (table *RewardModel) Matrix() *mat.Dense {
	return mat.DenseCopyOf(table.rewards)
}
