package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"

	api "github.com/oshokin/elevator-ids/internal/api/grpc/experiment"
	"github.com/oshokin/elevator-ids/internal/config"
	"github.com/oshokin/elevator-ids/internal/logger"
	"github.com/oshokin/elevator-ids/internal/metrics"
	"github.com/oshokin/elevator-ids/internal/repository/results"
	"github.com/oshokin/elevator-ids/internal/service/experiment"
)

// Options controls the elevator-lab-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// MetricsAddress overrides the /metrics listen address from config.
	MetricsAddress string
	// ResultsDir overrides the folder runs are stored in.
	ResultsDir string
}

// ErrNoServerAddress indicates missing server configuration.
var ErrNoServerAddress = errors.New("no server address configured")

const metricsReadHeaderTimeout = 5 * time.Second

// Run starts the gRPC server and blocks until context is canceled or server stops.
// Loads configuration first, then determines listen address from config or override.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "elevator-lab-server")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	resultsDir := settings.ResultsDir
	if opts.ResultsDir != "" {
		resultsDir = opts.ResultsDir
	}

	metricsAddress := settings.MetricsAddress
	if opts.MetricsAddress != "" {
		metricsAddress = opts.MetricsAddress
	}

	// CLI argument overrides config port extraction.
	listenAddress, err := resolveListenAddress(settings.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	var (
		registry = metrics.NewRegistry()
		repo     = results.NewFileRepository(resultsDir)
		svc      = newService(experiment.NewRunner(registry), repo, experiment.OptionsFromConfig(settings))
	)

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	grpcServer := grpc.NewServer()
	api.RegisterExperimentServer(grpcServer, api.NewServer(svc))

	logger.InfoKV(ctx, "Experiment server listening", "listen_address", listenAddress, "results_dir", resultsDir)

	var metricsServer *http.Server
	if metricsAddress != "" {
		metricsServer = newMetricsServer(metricsAddress, registry)
	}

	if err = serve(ctx, grpcServer, lis, metricsServer); err != nil {
		return err
	}

	logger.Info(ctx, "GRPC server stopped")

	return nil
}

// serve runs grpcServer on lis, and metricsServer when set, until ctx is
// canceled or gRPC stops serving. Both servers are stopped on return.
func serve(ctx context.Context, grpcServer *grpc.Server, lis net.Listener, metricsServer *http.Server) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	if metricsServer != nil {
		wg.Go(func() {
			logger.InfoKV(ctx, "Metrics listening", "metrics_address", metricsServer.Addr)

			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.ErrorKV(ctx, "Metrics server failed", "error", err)
			}
		})
	}

	// Closed after GracefulStop so both exit paths wait for a full stop.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down gRPC server")

		if metricsServer != nil {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), metricsReadHeaderTimeout)
			_ = metricsServer.Shutdown(shutdownCtx)

			shutdownCancel()
		}

		grpcServer.GracefulStop()
		close(done)
	}()

	serveErr := grpcServer.Serve(lis)

	cancel()
	<-done
	wg.Wait()

	if serveErr != nil && !errors.Is(serveErr, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", serveErr)
	}

	return nil
}

// newMetricsServer serves the registry on /metrics.
func newMetricsServer(address string, registry *metrics.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry.Prometheus(), promhttp.HandlerOpts{}))

	return &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr.
// Returns appropriate listen address (e.g., ":8080" for port-only binding).
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	// Bind on all interfaces.
	return ":" + port, nil
}
