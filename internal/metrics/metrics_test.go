package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRun(t *testing.T) {
	//** Arrange
	registry := prometheus.NewRegistry()
	metrics := New(registry)

	//** Act
	metrics.ObserveRun(Run{Strategy: "stochastic", Status: "feasible", Elapsed: 20 * time.Millisecond, Cost: 0, Iterations: 1000, Discarded: 3})
	metrics.ObserveRun(Run{Strategy: "stochastic", Status: "best-effort", Elapsed: 30 * time.Millisecond, Cost: 4, Iterations: 1000})
	metrics.ObserveRun(Run{Strategy: "exact", Status: "optimal", Elapsed: time.Second, Cost: 0, Iterations: 3})

	//** Assert
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues("stochastic", "feasible")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues("stochastic", "best-effort")))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.bestCost.WithLabelValues("stochastic")))
	assert.Equal(t, 2000.0, testutil.ToFloat64(metrics.iterations.WithLabelValues("stochastic")))
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.discarded.WithLabelValues("stochastic")))
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.iterations.WithLabelValues("exact")))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.duration))
}

func TestNilMetrics(t *testing.T) {
	var metrics *Metrics

	assert.NotPanics(t, func() {
		metrics.ObserveRun(Run{Strategy: "exact", Status: "optimal"})
	})
}
