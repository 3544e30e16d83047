package server

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/elevator-ids/internal/domain/report"
	"github.com/oshokin/elevator-ids/internal/logger"
	"github.com/oshokin/elevator-ids/internal/repository/results"
	"github.com/oshokin/elevator-ids/internal/service/experiment"
)

// service runs experiments on behalf of remote clients and persists grid runs.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	// runner executes rounds and grids.
	runner *experiment.Runner
	// repo stores completed runs; nil disables persistence.
	repo results.Repository
	// defaults fill grid options the client left empty.
	defaults experiment.Options
	// now is the clock used to stamp runs.
	now func() time.Time
}

// newService creates a service backed by the provided runner and repository.
func newService(runner *experiment.Runner, repository results.Repository, defaults experiment.Options) *service {
	return &service{
		runner:   runner,
		repo:     repository,
		defaults: defaults,
		now:      time.Now,
	}
}

// RunRound scores one round.
func (s *service) RunRound(ctx context.Context, req experiment.RoundRequest) (report.Row, error) {
	if req.Cycles == 0 {
		req.Cycles = s.defaults.Cycles
	}

	if req.Sensor == "" {
		req.Sensor = s.defaults.Sensor
	}

	row, err := s.runner.RunRound(ctx, req)
	if err != nil {
		return report.Row{}, err
	}

	logger.InfoKV(ctx, "Round requested",
		"category", row.Category,
		"drift", row.Drift,
		"threshold", row.Threshold,
		"detection_effectiveness", row.DetectionEffectiveness,
		"false_alarm_rate", row.FalseAlarmRate,
	)

	return row, nil
}

// RunGrid runs a grid search, stores it and returns the run.
func (s *service) RunGrid(ctx context.Context, opts experiment.Options, sel report.Selection) (*report.Run, error) {
	opts = opts.WithDefaults(s.defaults)

	run := &report.Run{
		ID:        uuid.NewString(),
		StartedAt: s.now(),
		Seed:      opts.Seed,
	}

	ctx = logger.WithKV(ctx, "run_id", run.ID)

	rows, err := s.runner.Run(ctx, opts)
	if err != nil {
		return nil, err
	}

	run.Rows = rows
	run.Selected = sel.Apply(rows)

	if s.repo != nil {
		dir, err := s.repo.Save(ctx, run)
		if err != nil {
			logger.Errorf(ctx, "Failed to persist run: %v", err)

			return nil, fmt.Errorf("persist run: %w", err)
		}

		logger.InfoKV(ctx, "Run stored", "dir", dir, "rows", len(run.Rows), "selected", len(run.Selected))
	}

	return run, nil
}
