// Package metrics exposes experiment counters and score distributions
// through a dedicated prometheus registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/oshokin/elevator-ids/internal/domain/detect"
)

const namespace = "elevator_ids"

// Registry holds all metrics recorded by the experiment runner.
type Registry struct {
	RoundsTotal            *prometheus.CounterVec
	ConfirmedAlarmsTotal   *prometheus.CounterVec
	DetectionEffectiveness *prometheus.HistogramVec
	FalseAlarmRate         *prometheus.HistogramVec
	GridDuration           prometheus.Histogram
	GridsTotal             prometheus.Counter

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every metric initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	percentBuckets := prometheus.LinearBuckets(0, 10, 11)

	return &Registry{
		RoundsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rounds_total",
				Help:      "Simulation rounds scored, by attack category",
			},
			[]string{"category"},
		),
		ConfirmedAlarmsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "confirmed_alarms_total",
				Help:      "Verifier-confirmed detector alarms, by category and outcome (hit or miss)",
			},
			[]string{"category", "outcome"},
		),
		DetectionEffectiveness: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "detection_effectiveness_percent",
				Help:      "Per-round detection effectiveness",
				Buckets:   percentBuckets,
			},
			[]string{"category"},
		),
		FalseAlarmRate: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "false_alarm_rate_percent",
				Help:      "Per-round false-alarm rate",
				Buckets:   percentBuckets,
			},
			[]string{"category"},
		),
		GridDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "grid_duration_seconds",
				Help:      "Wall time of a complete parameter grid",
				Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
			},
		),
		GridsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "grids_total",
				Help:      "Completed parameter grids",
			},
		),
		registry: reg,
	}
}

// Prometheus returns the underlying registry for handlers and tests.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

// ObserveRound records one scored round. A nil registry is a no-op.
func (r *Registry) ObserveRound(res detect.Result) {
	if r == nil {
		return
	}

	r.RoundsTotal.WithLabelValues(res.Category).Inc()
	r.ConfirmedAlarmsTotal.WithLabelValues(res.Category, "hit").Add(float64(res.Hits))
	r.ConfirmedAlarmsTotal.WithLabelValues(res.Category, "miss").Add(float64(res.Misses))
	r.DetectionEffectiveness.WithLabelValues(res.Category).Observe(res.DetectionEffectiveness)
	r.FalseAlarmRate.WithLabelValues(res.Category).Observe(res.FalseAlarmRate)
}

// ObserveGrid records a completed grid. A nil registry is a no-op.
func (r *Registry) ObserveGrid(elapsed time.Duration) {
	if r == nil {
		return
	}

	r.GridsTotal.Inc()
	r.GridDuration.Observe(elapsed.Seconds())
}
