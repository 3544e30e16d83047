package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/elevator-ids/internal/config"
	"github.com/oshokin/elevator-ids/internal/logger"
	"github.com/oshokin/elevator-ids/internal/service/lab"
	"github.com/oshokin/elevator-ids/internal/version"
)

var (
	// options collects flag values for the grid search.
	options lab.Options

	// rootCmd represents the base command for a local grid search.
	rootCmd = &cobra.Command{
		Use:   "elevator-lab",
		Short: "Grid-search CUSUM parameters against simulated elevator attacks.",
		Long: `Simulates the two-floor elevator PLC under injected attacks and scores
the CUSUM detector for every drift and threshold pair of the grid.

Each round runs on a fresh elevator with a random attack window. The attack
category is fixed with --attack or drawn per round. Rows with detection
effectiveness above and false-alarm rate below the configured bounds are
printed; --best keeps one row per category. The full table, the selected rows
and one reading trail per round are written to the results folder.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options.SeedSet = cmd.Flags().Changed("seed")
			options.Out = cmd.OutOrStdout()

			return lab.Run(ctx, &options)
		},
	}
)

// Execute runs the elevator-lab CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	logger.AttachCobraLogLevelFlag(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.Flags()

	flags.StringVarP(&options.ConfigPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.IntVarP(&options.Rounds, "rounds", "r", 0, "rounds per parameter pair (default from config)")
	flags.IntVar(&options.Cycles, "cycles", 0, "scan cycles per round (default from config)")
	flags.StringVarP(&options.Attack, "attack", "a", "", "attack category, e.g. BIAS,SURGE (default: random per round)")
	flags.StringVar(&options.Sensor, "sensor", "", "detector channel: temp or weight (default from config)")
	flags.Uint64Var(&options.Seed, "seed", 0, "random seed (default from config, else the clock)")
	flags.IntVarP(&options.Workers, "workers", "w", 0, "concurrent rounds (default: all processors)")
	flags.StringVar(&options.Category, "category", "", "print only rows of this category")
	flags.BoolVar(&options.Best, "best", false, "print only the best row per category")
	flags.StringVarP(&options.ResultsDir, "results-dir", "o", "", "results folder (default from config)")
	flags.BoolVar(&options.NoSave, "no-save", false, "do not write the run to disk")
}
