package experiment

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/oshokin/elevator-ids/internal/domain/attack"
	"github.com/oshokin/elevator-ids/internal/domain/detect"
	"github.com/oshokin/elevator-ids/internal/domain/report"
	"github.com/oshokin/elevator-ids/internal/logger"
	"github.com/oshokin/elevator-ids/internal/metrics"
	"github.com/oshokin/elevator-ids/internal/service/simulator"
)

// Options describes one grid search.
type Options struct {
	// Rounds is the number of rounds per parameter pair.
	Rounds int
	// Cycles is the number of scan cycles per round.
	Cycles int
	// Drifts and Thresholds span the parameter grid.
	Drifts     []float64
	Thresholds []float64
	// Category fixes the attack category; empty draws one per round.
	Category string
	// Sensor is the channel watched by the detector.
	Sensor detect.Sensor
	// Seed makes a grid reproducible.
	Seed uint64
	// Workers bounds concurrent units; zero uses GOMAXPROCS.
	Workers int
}

// RoundRequest describes a single scored round.
type RoundRequest struct {
	Category string
	Params   detect.Params
	Cycles   int
	Sensor   detect.Sensor
	Seed     uint64
}

var (
	// ErrEmptyGrid is returned when no drift or threshold is configured.
	ErrEmptyGrid = errors.New("parameter grid is empty")
	// ErrNoRounds is returned when rounds or cycles are not positive.
	ErrNoRounds = errors.New("rounds and cycles must be positive")
)

// Runner executes grid searches.
type Runner struct {
	metrics *metrics.Registry
}

// NewRunner returns a runner recording into reg. A nil reg disables metrics.
func NewRunner(reg *metrics.Registry) *Runner {
	return &Runner{metrics: reg}
}

// unit is one cell of the grid expanded over rounds.
type unit struct {
	index  int
	round  int
	params detect.Params
}

// Validate checks opts before a run.
func (o Options) Validate() error {
	if len(o.Drifts) == 0 || len(o.Thresholds) == 0 {
		return ErrEmptyGrid
	}

	if o.Rounds <= 0 || o.Cycles <= 0 {
		return ErrNoRounds
	}

	if _, err := attack.ParseKinds(o.Category); err != nil {
		return err
	}

	if _, err := detect.ParseSensor(string(o.Sensor)); err != nil {
		return err
	}

	return nil
}

// Run scores every (drift, threshold) pair over opts.Rounds rounds.
// Rows come back ordered by drift, threshold, then round.
func (r *Runner) Run(ctx context.Context, opts Options) ([]report.Row, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate options: %w", err)
	}

	ctx = logger.WithName(ctx, "experiment")
	started := time.Now()

	units := expand(opts)
	rows := make([]report.Row, len(units))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	logger.InfoKV(ctx, "Starting grid search",
		"drifts", opts.Drifts,
		"thresholds", opts.Thresholds,
		"rounds", opts.Rounds,
		"cycles", opts.Cycles,
		"category", categoryLabel(opts.Category),
		"workers", workers,
		"seed", opts.Seed,
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for _, u := range units {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			row, err := r.runUnit(groupCtx, opts, u)
			if err != nil {
				return err
			}

			rows[u.index] = row

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("run grid: %w", err)
	}

	elapsed := time.Since(started)
	r.metrics.ObserveGrid(elapsed)

	logger.InfoKV(ctx, "Grid search finished", "rows", len(rows), "elapsed", elapsed)

	return rows, nil
}

// RunRound scores a single round outside a grid.
func (r *Runner) RunRound(ctx context.Context, req RoundRequest) (report.Row, error) {
	if _, err := detect.ParseSensor(string(req.Sensor)); err != nil {
		return report.Row{}, err
	}

	cycles := req.Cycles
	if cycles <= 0 {
		cycles = simulator.DefaultCycles
	}

	sim := simulator.New(newRand(req.Seed, 0), simulator.WithCycles(cycles), simulator.WithSensor(req.Sensor))

	result, trail, err := sim.RunRound(req.Category, req.Params)
	if err != nil {
		return report.Row{}, fmt.Errorf("run round: %w", err)
	}

	r.metrics.ObserveRound(result)

	logger.DebugKV(ctx, "Round scored",
		"seed", req.Seed,
		"category", result.Category,
		"drift", req.Params.Drift,
		"threshold", req.Params.Threshold,
		"detection_effectiveness", result.DetectionEffectiveness,
		"false_alarm_rate", result.FalseAlarmRate,
	)

	return report.Row{
		Drift:     req.Params.Drift,
		Threshold: req.Params.Threshold,
		Result:    result,
		Readings:  trail.Readings,
	}, nil
}

func (r *Runner) runUnit(ctx context.Context, opts Options, u unit) (report.Row, error) {
	ctx = logger.WithFields(ctx, "round", u.round, "drift", u.params.Drift, "threshold", u.params.Threshold)

	sim := simulator.New(
		newRand(opts.Seed, uint64(u.index)),
		simulator.WithCycles(opts.Cycles),
		simulator.WithSensor(opts.Sensor),
	)

	result, trail, err := sim.RunRound(opts.Category, u.params)
	if err != nil {
		return report.Row{}, fmt.Errorf("round %d: %w", u.round, err)
	}

	r.metrics.ObserveRound(result)

	logger.DebugKV(ctx, "Round scored",
		"category", result.Category,
		"attacks", result.Attacks,
		"detected", result.Detected,
		"false_alarms", result.FalseAlarms,
	)

	return report.Row{
		Round:     u.round,
		Drift:     u.params.Drift,
		Threshold: u.params.Threshold,
		Result:    result,
		Readings:  trail.Readings,
	}, nil
}

// expand lists the units of a grid in drift, threshold, round order.
func expand(opts Options) []unit {
	units := make([]unit, 0, len(opts.Drifts)*len(opts.Thresholds)*opts.Rounds)

	for _, drift := range opts.Drifts {
		for _, threshold := range opts.Thresholds {
			for round := range opts.Rounds {
				units = append(units, unit{
					index:  len(units),
					round:  round,
					params: detect.Params{Drift: drift, Threshold: threshold},
				})
			}
		}
	}

	return units
}

// newRand derives an independent stream for unit from the grid seed.
func newRand(seed, unit uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, unit))
}

func categoryLabel(category string) string {
	if category == "" {
		return "random"
	}

	return category
}
