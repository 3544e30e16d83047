package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	api "github.com/oshokin/elevator-ids/internal/api/grpc/experiment"
	"github.com/oshokin/elevator-ids/internal/config"
	"github.com/oshokin/elevator-ids/internal/domain/report"
	"github.com/oshokin/elevator-ids/internal/logger"
	"github.com/oshokin/elevator-ids/internal/service/common"
	"github.com/oshokin/elevator-ids/internal/service/experiment"
)

// Options configures a remote experiment call.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// ServerAddress overrides server address from config when specified.
	ServerAddress string
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
	// Category restricts the printed rows to one category.
	Category string
	// Best prints only the best row per category.
	Best bool
	// Round scores a single round with Drift and Threshold instead of a grid.
	Round     bool
	Drift     float64
	Threshold float64
	// WithReadings prints the reading trail of a single round as JSON.
	WithReadings bool
	// Out receives the output; nil means stdout.
	Out io.Writer
}

// Run performs the remote call and prints its result.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "elevator-lab-client")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	// Sent along with requests for the server logs.
	actor, err := common.DetectActor()
	if err != nil {
		return err
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return err
	}

	defer func() {
		_ = client.Close()
	}()

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	seed := pickSeed(cfg, opts, experiment.ClockSeed())

	logger.InfoKV(ctx, "Requesting experiment",
		"server_address", serverAddress,
		"single_round", opts.Round,
		"seed", seed,
	)

	if opts.Round {
		return runRound(ctx, client, out, roundRequest(opts, actor, seed))
	}

	run, err := client.RunGrid(ctx, gridRequest(cfg, opts, actor, seed))
	if err != nil {
		return err
	}

	return common.PrintRun(out, run)
}

func runRound(ctx context.Context, client *common.Client, out io.Writer, req *api.RoundRequest) error {
	resp, err := client.RunRound(ctx, req)
	if err != nil {
		return err
	}

	if _, err = fmt.Fprintln(out, common.RenderTable([]report.Row{resp.Row})); err != nil {
		return fmt.Errorf("print table: %w", err)
	}

	if !req.WithReadings {
		return nil
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")

	if err = encoder.Encode(resp.Readings); err != nil {
		return fmt.Errorf("print readings: %w", err)
	}

	return nil
}

// pickSeed prefers the flag, then the settings, then fallback.
func pickSeed(cfg *config.Config, opts *Options, fallback uint64) uint64 {
	if opts.SeedSet {
		return opts.Seed
	}

	return cfg.SeedOr(fallback)
}

// gridRequest leaves zero fields for the server to fill from its settings,
// except the report filter which always follows the local settings.
func gridRequest(cfg *config.Config, opts *Options, actor string, seed uint64) *api.GridRequest {
	return &api.GridRequest{
		Rounds:   opts.Rounds,
		Cycles:   opts.Cycles,
		Category: opts.Attack,
		Sensor:   opts.Sensor,
		Seed:     seed,
		Selection: report.Selection{
			MinEffectiveness:  cfg.MinDetectionEffectiveness,
			MaxFalseAlarmRate: cfg.MaxFalseAlarmRate,
			Category:          opts.Category,
			Best:              opts.Best,
		},
		RequestedBy: actor,
	}
}

func roundRequest(opts *Options, actor string, seed uint64) *api.RoundRequest {
	return &api.RoundRequest{
		Category:     opts.Attack,
		Drift:        opts.Drift,
		Threshold:    opts.Threshold,
		Cycles:       opts.Cycles,
		Sensor:       opts.Sensor,
		Seed:         seed,
		WithReadings: opts.WithReadings,
		RequestedBy:  actor,
	}
}
