package integration

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	api "github.com/oshokin/elevator-ids/internal/api/grpc/experiment"
	"github.com/oshokin/elevator-ids/internal/config"
	"github.com/oshokin/elevator-ids/internal/domain/report"
	"github.com/oshokin/elevator-ids/internal/repository/results"
	"github.com/oshokin/elevator-ids/internal/service/common"
	"github.com/oshokin/elevator-ids/internal/service/server"
)

// freeAddress reserves a free local port and releases it for the server.
func freeAddress(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	return addr
}

// startGRPC starts the experiment server with a small grid in its settings.
// Returns a stop function to gracefully shutdown the server.
func startGRPC(t *testing.T, addr, metricsAddr, resultsDir string) (stop func()) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := config.Default()
	cfg.ServerAddress = addr
	cfg.MetricsAddress = metricsAddr
	cfg.ResultsDir = resultsDir
	cfg.Rounds = 2
	cfg.Cycles = 60
	cfg.Drifts = []float64{0.5}
	cfg.Thresholds = []float64{4, 8}
	cfg.Timeout = 5 * time.Second

	require.NoError(t, config.Save(cfgPath, cfg))

	done := make(chan struct{})

	go func() {
		defer close(done)

		_ = server.Run(ctx, &server.Options{ //nolint:errcheck // Shutdown errors are irrelevant here.
			ConfigPath:    cfgPath,
			ListenAddress: addr,
		})
	}()

	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", addr, 50*time.Millisecond)
		if err != nil {
			return false
		}

		_ = conn.Close()

		return true
	}, 3*time.Second, 20*time.Millisecond)

	return func() {
		cancel()
		<-done
	}
}

// TestGRPC_RunGrid starts the real server and checks the run is returned and stored.
func TestGRPC_RunGrid(t *testing.T) {
	t.Parallel()

	var (
		addr       = freeAddress(t)
		resultsDir = t.TempDir()
	)

	stop := startGRPC(t, addr, "", resultsDir)
	defer stop()

	ctx := context.Background()

	c, err := common.Dial(ctx, addr, common.WithCallTimeout(10*time.Second))
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	run, err := c.RunGrid(ctx, &api.GridRequest{
		Category:    "BIAS",
		Selection:   report.Selection{MinEffectiveness: -1, MaxFalseAlarmRate: 101},
		RequestedBy: "test-user@test-hostname",
	})
	require.NoError(t, err)
	require.Len(t, run.Rows, 4)
	require.Len(t, run.Selected, 4)

	for _, row := range run.Rows {
		require.Equal(t, "BIAS", row.Category)
		require.Equal(t, 60, row.Samples)
		require.Empty(t, row.Readings)
	}

	// Verify the run was persisted to disk.
	_, err = os.Stat(filepath.Join(resultsDir, run.ID, results.TableFilename))
	require.NoError(t, err)

	trail, err := results.NewFileRepository(resultsDir).LoadTrail(ctx, run.ID, 3)
	require.NoError(t, err)
	require.Len(t, trail, 60)
}

// TestGRPC_RunRound checks a single round with its trail and argument errors.
func TestGRPC_RunRound(t *testing.T) {
	t.Parallel()

	addr := freeAddress(t)

	stop := startGRPC(t, addr, "", t.TempDir())
	defer stop()

	ctx := context.Background()

	c, err := common.Dial(ctx, addr, common.WithCallTimeout(5*time.Second))
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	resp, err := c.RunRound(ctx, &api.RoundRequest{
		Category:     "SURGE",
		Drift:        0.5,
		Threshold:    6,
		Seed:         3,
		WithReadings: true,
	})
	require.NoError(t, err)
	require.Equal(t, "SURGE", resp.Row.Category)
	require.Len(t, resp.Readings, 60)

	_, err = c.RunRound(ctx, &api.RoundRequest{Category: "FLOOD"})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestGRPC_Metrics checks the counters are served over HTTP after a round.
func TestGRPC_Metrics(t *testing.T) {
	t.Parallel()

	var (
		addr        = freeAddress(t)
		metricsAddr = freeAddress(t)
	)

	stop := startGRPC(t, addr, metricsAddr, t.TempDir())
	defer stop()

	ctx := context.Background()

	c, err := common.Dial(ctx, addr, common.WithCallTimeout(5*time.Second))
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	_, err = c.RunRound(ctx, &api.RoundRequest{Category: "RANDOM", Drift: 0.5, Threshold: 6})
	require.NoError(t, err)

	var body string

	require.Eventually(t, func() bool {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+metricsAddr+"/metrics", nil)
		if err != nil {
			return false
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return false
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return false
		}

		body = string(data)

		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 20*time.Millisecond)

	require.Contains(t, body, `elevator_ids_rounds_total{category="RANDOM"} 1`)
}
