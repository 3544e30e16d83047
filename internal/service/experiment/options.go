package experiment

import (
	"time"

	"github.com/oshokin/elevator-ids/internal/config"
	"github.com/oshokin/elevator-ids/internal/domain/detect"
	"github.com/oshokin/elevator-ids/internal/domain/report"
)

// OptionsFromConfig builds grid options from loaded settings.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Rounds:     cfg.Rounds,
		Cycles:     cfg.Cycles,
		Drifts:     cfg.Drifts,
		Thresholds: cfg.Thresholds,
		Sensor:     detect.Sensor(cfg.Sensor),
		Seed:       cfg.SeedOr(0),
		Workers:    cfg.Workers,
	}
}

// ClockSeed draws a seed from the wall clock for runs without a fixed one.
func ClockSeed() uint64 {
	return uint64(time.Now().UnixNano()) //nolint:gosec // Nanoseconds since 1970 are positive.
}

// SelectionFromConfig builds the report filter from loaded settings.
func SelectionFromConfig(cfg *config.Config) report.Selection {
	return report.Selection{
		MinEffectiveness:  cfg.MinDetectionEffectiveness,
		MaxFalseAlarmRate: cfg.MaxFalseAlarmRate,
	}
}

// WithDefaults returns o with its zero fields taken from d. Category and
// Seed are kept as given since their zero values are meaningful.
func (o Options) WithDefaults(d Options) Options {
	if o.Rounds == 0 {
		o.Rounds = d.Rounds
	}

	if o.Cycles == 0 {
		o.Cycles = d.Cycles
	}

	if len(o.Drifts) == 0 {
		o.Drifts = d.Drifts
	}

	if len(o.Thresholds) == 0 {
		o.Thresholds = d.Thresholds
	}

	if o.Sensor == "" {
		o.Sensor = d.Sensor
	}

	if o.Workers == 0 {
		o.Workers = d.Workers
	}

	return o
}
