package lab

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/elevator-ids/internal/config"
	"github.com/oshokin/elevator-ids/internal/domain/detect"
	"github.com/oshokin/elevator-ids/internal/domain/report"
	"github.com/oshokin/elevator-ids/internal/logger"
	"github.com/oshokin/elevator-ids/internal/metrics"
	"github.com/oshokin/elevator-ids/internal/repository/results"
	"github.com/oshokin/elevator-ids/internal/service/common"
	"github.com/oshokin/elevator-ids/internal/service/experiment"
)

// Options configures a local grid search. Zero values keep the settings
// from the config file.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// Rounds and Cycles override the grid size.
	Rounds int
	Cycles int
	// Attack fixes the injected category; empty draws one per round.
	Attack string
	// Sensor overrides the detector channel.
	Sensor string
	// Seed overrides the grid seed when SeedSet is true.
	Seed    uint64
	SeedSet bool
	// Workers bounds concurrent rounds.
	Workers int
	// Category restricts the printed rows to one category.
	Category string
	// Best prints only the best row per category.
	Best bool
	// ResultsDir overrides the output folder.
	ResultsDir string
	// NoSave skips writing the run to disk.
	NoSave bool
	// Out receives the table; nil means stdout.
	Out io.Writer
}

// Run executes the grid search and prints the selected rows.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "elevator-lab")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	gridOpts, sel := resolve(cfg, opts, experiment.ClockSeed())

	run := &report.Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Seed:      gridOpts.Seed,
	}

	ctx = logger.WithKV(ctx, "run_id", run.ID)

	rows, err := experiment.NewRunner(metrics.NewRegistry()).Run(ctx, gridOpts)
	if err != nil {
		return err
	}

	run.Rows = rows
	run.Selected = sel.Apply(rows)

	if !opts.NoSave {
		resultsDir := cfg.ResultsDir
		if opts.ResultsDir != "" {
			resultsDir = opts.ResultsDir
		}

		dir, err := results.NewFileRepository(resultsDir).Save(ctx, run)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}

		logger.InfoKV(ctx, "Run stored", "dir", dir)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return common.PrintRun(out, run)
}

// resolve merges flag overrides into the loaded settings. fallbackSeed is
// used when neither the flag nor the settings fix a seed.
func resolve(cfg *config.Config, opts *Options, fallbackSeed uint64) (experiment.Options, report.Selection) {
	gridOpts := experiment.Options{
		Rounds:   opts.Rounds,
		Cycles:   opts.Cycles,
		Category: opts.Attack,
		Sensor:   detect.Sensor(opts.Sensor),
		Workers:  opts.Workers,
		Seed:     cfg.SeedOr(fallbackSeed),
	}.WithDefaults(experiment.OptionsFromConfig(cfg))

	if opts.SeedSet {
		gridOpts.Seed = opts.Seed
	}

	sel := experiment.SelectionFromConfig(cfg)
	sel.Category = opts.Category
	sel.Best = opts.Best

	return gridOpts, sel
}
