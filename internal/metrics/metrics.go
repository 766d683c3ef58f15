// Package metrics exposes Prometheus collectors for quality evaluations and
// forecast planning.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "horizon"

// Metrics implements weather.Recorder on top of a Prometheus registry.
type Metrics struct {
	evaluations *prometheus.CounterVec
	scores      *prometheus.HistogramVec
	planLatency prometheus.Histogram
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Quality evaluations by event kind and outcome.",
		}, []string{"kind", "outcome"}),
		scores: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quality_score",
			Help:      "Distribution of successful quality scores.",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}, []string{"kind"}),
		planLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_duration_seconds",
			Help:      "Time spent scoring a forecast plan.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
}

// ObserveEvaluation counts one evaluation and records its score on success.
func (m *Metrics) ObserveEvaluation(kind string, score float64, err error) {
	if err != nil {
		m.evaluations.WithLabelValues(kind, "error").Inc()
		return
	}
	m.evaluations.WithLabelValues(kind, "ok").Inc()
	m.scores.WithLabelValues(kind).Observe(score)
}

// ObservePlan records how long a plan took.
func (m *Metrics) ObservePlan(d time.Duration) {
	m.planLatency.Observe(d.Seconds())
}
