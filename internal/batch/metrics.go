package batch

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/elektrokombinacija/robovac/internal/sim"
)

// Metrics aggregates run outcomes on a private registry.
type Metrics struct {
	reg *prometheus.Registry

	runs     *prometheus.CounterVec
	steps    *prometheus.HistogramVec
	score    *prometheus.HistogramVec
	dirtLeft *prometheus.HistogramVec
}

// NewMetrics creates and registers the batch collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "robovac",
			Name:      "runs_total",
			Help:      "Simulations by algorithm and final status",
		}, []string{"algorithm", "status"}),
		steps: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "robovac",
			Name:      "run_steps",
			Help:      "Steps taken per simulation",
			Buckets:   prometheus.ExponentialBuckets(10, 2, 12),
		}, []string{"algorithm"}),
		score: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "robovac",
			Name:      "run_score",
			Help:      "Score per simulation, lower is better",
			Buckets:   prometheus.ExponentialBuckets(10, 2, 14),
		}, []string{"algorithm"}),
		dirtLeft: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "robovac",
			Name:      "run_dirt_left",
			Help:      "Dirt units left when a simulation ends",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500},
		}, []string{"algorithm"}),
	}
}

// Observe records one finished simulation. Timed out runs are counted under
// the "timeout" status.
func (m *Metrics) Observe(res *sim.Result) {
	status := strings.ToLower(res.Status.String())
	if res.TimedOut {
		status = "timeout"
	}
	m.runs.WithLabelValues(res.Algorithm, status).Inc()
	m.steps.WithLabelValues(res.Algorithm).Observe(float64(res.NumSteps))
	m.score.WithLabelValues(res.Algorithm).Observe(float64(res.Score))
	m.dirtLeft.WithLabelValues(res.Algorithm).Observe(float64(res.DirtLeft))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// WriteFile writes the metrics in the text exposition format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
