package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "doubles"

// Metrics instruments scheduler runs. Labels: strategy (exact, stochastic, learned), status (optimal, feasible, ...)
type Metrics struct {
	runs       *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	bestCost   *prometheus.GaugeVec
	iterations *prometheus.CounterVec
	discarded  *prometheus.CounterVec
}

// New registers the run metrics on registerer. Passing prometheus.DefaultRegisterer exposes them globally
func New(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "runs_total",
			Help:      "Total scheduler runs by strategy and outcome",
		}, []string{"strategy", "status"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of scheduler runs",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		}, []string{"strategy"}),

		bestCost: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "best_cost",
			Help:      "Cost of the schedule returned by the last run",
		}, []string{"strategy"}),

		iterations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "iterations_total",
			Help:      "Solver calls, sampled trajectories or training episodes",
		}, []string{"strategy"}),

		discarded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "discarded_trajectories_total",
			Help:      "Trajectories dropped because they reached a match without successors",
		}, []string{"strategy"}),
	}
}

type Run struct {
	Strategy   string
	Status     string
	Elapsed    time.Duration
	Cost       int
	Iterations int
	Discarded  int
}

func (metrics *Metrics) ObserveRun(run Run) {
	if metrics == nil {
		return
	}

	metrics.runs.WithLabelValues(run.Strategy, run.Status).Inc()
	metrics.duration.WithLabelValues(run.Strategy).Observe(run.Elapsed.Seconds())
	metrics.bestCost.WithLabelValues(run.Strategy).Set(float64(run.Cost))
	metrics.iterations.WithLabelValues(run.Strategy).Add(float64(run.Iterations))
	metrics.discarded.WithLabelValues(run.Strategy).Add(float64(run.Discarded))
}
