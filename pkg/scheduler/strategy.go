package scheduler

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/limaJavier/doubles/pkg/model"
	"go.uber.org/zap"
)

type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusFeasible   Status = "feasible"
	StatusBestEffort Status = "best-effort"
	StatusInfeasible Status = "infeasible"
	StatusTimeout    Status = "timeout"
)

// Strategy searches a schedule for a problem. Implementations are interchangeable: same input, same Result shape
type Strategy interface {
	Name() string
	Search(ctx context.Context, problem *Problem) (Result, error)
}

// Problem bundles the immutable data every strategy works on plus the run's own random generator and logger
type Problem struct {
	Configuration *model.Configuration
	Universe      *model.Universe
	Evaluator     *model.Evaluator
	Random        *rand.Rand
	Logger        *zap.Logger
}

func NewProblem(config *model.Configuration, evaluator *model.Evaluator, random *rand.Rand) *Problem {
	return &Problem{
		Configuration: config,
		Universe:      model.NewUniverse(config),
		Evaluator:     evaluator,
		Random:        random,
		Logger:        zap.NewNop(),
	}
}

// fork returns a shallow copy of the problem holding its own random generator, so concurrent strategies never share one
func (problem *Problem) fork(seed uint64) *Problem {
	forked := *problem
	forked.Random = newRandom(seed)
	return &forked
}

func (problem *Problem) logger() *zap.Logger {
	if problem.Logger == nil {
		return zap.NewNop()
	}
	return problem.Logger
}

// Result is the common output of every strategy
type Result struct {
	RunID         string
	Strategy      string
	Status        Status
	Schedule      model.Schedule
	Cost          model.CostReport
	Perfect       []model.Schedule // Distinct zero-cost schedules found along the way (heuristic strategies only)
	Iterations    int              // Solver calls, sampled trajectories or training episodes
	Discarded     int              // Trajectories dropped because they reached a dead end
	RewardHistory []float64        // Total reward per training episode (learned strategy only)
	Elapsed       time.Duration
	Seed          uint64
}

func newRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// heuristicStatus is the status of a heuristic search: a validated schedule is feasible, anything else is the best effort
func heuristicStatus(problem *Problem, schedule model.Schedule) Status {
	if problem.Evaluator.Validate(schedule) {
		return StatusFeasible
	}
	return StatusBestEffort
}
