package scheduler

import (
	"slices"

	"github.com/limaJavier/doubles/pkg/model"
)

// scheduleRanking keeps the lowest-cost schedule seen so far and every zero-cost one. With deduplication enabled a
// schedule whose rotation was already ranked is ignored
type scheduleRanking struct {
	evaluator   *model.Evaluator
	deduplicate bool

	seen     map[string]bool
	best     model.Schedule
	bestCost int
	found    bool
	perfect  []model.Schedule
}

func newScheduleRanking(evaluator *model.Evaluator, deduplicate bool) *scheduleRanking {
	return &scheduleRanking{
		evaluator:   evaluator,
		deduplicate: deduplicate,
		seen:        make(map[string]bool),
	}
}

// Add ranks schedule and reports whether it was taken into account
func (ranking *scheduleRanking) Add(schedule model.Schedule) bool {
	if ranking.deduplicate {
		key := schedule.CanonicalKey()
		if ranking.seen[key] {
			return false
		}
		ranking.seen[key] = true
	}

	cost := ranking.evaluator.Score(schedule).Total
	if !ranking.found || cost < ranking.bestCost {
		ranking.best, ranking.bestCost, ranking.found = schedule, cost, true
	}
	if cost == 0 {
		ranking.perfect = append(ranking.perfect, schedule)
	}
	return true
}

func (ranking *scheduleRanking) Best() (model.Schedule, bool) {
	return ranking.best, ranking.found
}

func (ranking *scheduleRanking) Perfect() []model.Schedule {
	return slices.Clone(ranking.perfect)
}
