package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/elevator-ids/internal/config"
	"github.com/oshokin/elevator-ids/internal/logger"
	"github.com/oshokin/elevator-ids/internal/service/client"
	"github.com/oshokin/elevator-ids/internal/version"
)

var (
	// options collects flag values for the remote call.
	options client.Options

	// rootCmd represents the base command for remote experiments.
	rootCmd = &cobra.Command{
		Use:   "elevator-lab-client [server-address]",
		Short: "Run elevator experiments on an elevator-lab-server.",
		Long: `Asks an elevator-lab-server to run a grid search and prints the selected rows.

Fields left unset are filled by the server from its own settings, the report
filter always follows the local settings. With --round a single round is
scored with the given --drift and --threshold; --readings also prints its
reading trail as JSON.
Server address can be provided as argument or loaded from configuration file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use server address argument if provided, otherwise rely on config.
			if len(args) > 0 {
				options.ServerAddress = args[0]
			}

			options.SeedSet = cmd.Flags().Changed("seed")
			options.Out = cmd.OutOrStdout()

			return client.Run(ctx, &options)
		},
	}
)

// Execute runs the elevator-lab-client CLI and exits with non-zero status on error.
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
	flags.IntVarP(&options.Rounds, "rounds", "r", 0, "rounds per parameter pair (default from server)")
	flags.IntVar(&options.Cycles, "cycles", 0, "scan cycles per round (default from server)")
	flags.StringVarP(&options.Attack, "attack", "a", "", "attack category, e.g. BIAS,SURGE (default: random per round)")
	flags.StringVar(&options.Sensor, "sensor", "", "detector channel: temp or weight (default from server)")
	flags.Uint64Var(&options.Seed, "seed", 0, "random seed (default from config, else the clock)")
	flags.StringVar(&options.Category, "category", "", "print only rows of this category")
	flags.BoolVar(&options.Best, "best", false, "print only the best row per category")
	flags.BoolVar(&options.Round, "round", false, "score a single round instead of a grid")
	flags.Float64Var(&options.Drift, "drift", 0.5, "CUSUM drift for --round")
	flags.Float64Var(&options.Threshold, "threshold", 6, "CUSUM threshold for --round")
	flags.BoolVar(&options.WithReadings, "readings", false, "print the reading trail of --round as JSON")
}
