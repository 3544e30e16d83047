package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/elevator-ids/internal/config"
	"github.com/oshokin/elevator-ids/internal/logger"
	"github.com/oshokin/elevator-ids/internal/service/server"
	"github.com/oshokin/elevator-ids/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// metricsAddress overrides the /metrics listen address.
	metricsAddress string
	// resultsDir overrides where runs are stored.
	resultsDir string

	// rootCmd represents the base command for running the gRPC server.
	rootCmd = &cobra.Command{
		Use:   "elevator-lab-server [listen-address]",
		Short: "Run the experiment gRPC server.",
		Long: `Starts the gRPC experiment server that runs simulation rounds and grid
searches for elevator-lab-client.

Only the port from server_addr is used for listening (e.g., :50051).
Listen address can be provided as argument to override config (e.g., :9090, 0.0.0.0:8080).
Every grid run is stored in the results folder. Experiment counters are
served on /metrics when metrics_addr or --metrics-addr is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			return server.Run(ctx, &server.Options{
				ConfigPath:     configPath,
				ListenAddress:  listenAddress,
				MetricsAddress: metricsAddress,
				ResultsDir:     resultsDir,
			})
		},
	}
)

// Execute runs the elevator-lab-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	logger.AttachCobraLogLevelFlag(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&metricsAddress, "metrics-addr", "m", "", "listen address for /metrics")
	rootCmd.Flags().StringVarP(&resultsDir, "results-dir", "o", "", "results folder (default from config)")
}
