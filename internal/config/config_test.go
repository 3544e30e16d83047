package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]

		return v, ok
	}
}

// TestDefault checks the built-in experiment grid.
func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, Validate(cfg))
	require.Equal(t, 10, cfg.Rounds)
	require.Equal(t, 500, cfg.Cycles)
	require.Equal(t, []float64{0.3, 0.5, 0.7, 0.9}, cfg.Drifts)
	require.Equal(t, []float64{4, 6, 8}, cfg.Thresholds)
	require.InDelta(t, 50, cfg.MinDetectionEffectiveness, 0)
	require.InDelta(t, 25, cfg.MaxFalseAlarmRate, 0)
}

// TestValidate checks required fields and format validations for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Validate(nil), errConfigIsNotSet)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing socket", func(c *Config) { c.ServerAddress = "" }},
		{"bad socket", func(c *Config) { c.ServerAddress = "bad:address" }},
		{"bad metrics socket", func(c *Config) { c.MetricsAddress = "bad:metrics" }},
		{"no drifts", func(c *Config) { c.Drifts = nil }},
		{"negative drift", func(c *Config) { c.Drifts = []float64{-1} }},
		{"zero threshold", func(c *Config) { c.Thresholds = []float64{0} }},
		{"no rounds", func(c *Config) { c.Rounds = 0 }},
		{"unknown sensor", func(c *Config) { c.Sensor = "humidity" }},
		{"effectiveness above 100", func(c *Config) { c.MinDetectionEffectiveness = 101 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)
			require.Error(t, Validate(cfg))
		})
	}
}

// TestValidate_FieldErrors checks that tag failures surface as validator errors.
func TestValidate_FieldErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Cycles = 0

	var fieldErrs validator.ValidationErrors

	require.ErrorAs(t, Validate(cfg), &fieldErrs)
	require.Equal(t, "Cycles", fieldErrs[0].Field())
}

// TestValidate_FillsDefaults checks that empty sensor and timeout get defaults.
func TestValidate_FillsDefaults(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Sensor = ""
	cfg.Timeout = 0

	require.NoError(t, Validate(cfg))
	require.Equal(t, "temp", cfg.Sensor)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
}

// TestApplyEnv checks environment overrides and their parse errors.
func TestApplyEnv(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg, env(map[string]string{
		EnvRounds:                    "3",
		EnvCycles:                    "120",
		EnvSeed:                      "99",
		EnvMinDetectionEffectiveness: "70.5",
		EnvMaxFalseAlarmRate:         "",
	})))

	require.Equal(t, 3, cfg.Rounds)
	require.Equal(t, 120, cfg.Cycles)
	require.NotNil(t, cfg.Seed)
	require.Equal(t, uint64(99), cfg.SeedOr(1))
	require.InDelta(t, 70.5, cfg.MinDetectionEffectiveness, 0)
	require.InDelta(t, 25, cfg.MaxFalseAlarmRate, 0)

	err := ApplyEnv(Default(), env(map[string]string{EnvRounds: "many"}))
	require.ErrorIs(t, err, errInvalidEnv)

	err = ApplyEnv(Default(), env(map[string]string{EnvSeed: "-1"}))
	require.ErrorIs(t, err, errInvalidEnv)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	settings := Default()
	settings.ServerAddress = "127.0.0.1:50052"
	settings.Drifts = []float64{0.25}
	settings.Sensor = "weight"

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings.ServerAddress, loaded.ServerAddress)
	require.Equal(t, settings.Drifts, loaded.Drifts)
	require.Equal(t, "weight", loaded.Sensor)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoad_PartialFile checks that absent keys keep their defaults.
func TestLoad_PartialFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rounds: 4\n"), DefaultFilePermissions))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, loaded.Rounds)
	require.Equal(t, []float64{4, 6, 8}, loaded.Thresholds)
}

// TestLoad_MissingExplicitFile checks that an explicit path must exist.
func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestLoad_MissingDefaultFile checks that settings fall back to the defaults
// when the default file is absent, whichever way it is named.
//
//nolint:paralleltest // Changes the working directory.
func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	for _, path := range []string{"", DefaultConfigFilename} {
		loaded, err := Load(path)
		require.NoError(t, err, path)
		require.Equal(t, DefaultRounds, loaded.Rounds)
		require.Equal(t, DefaultServerAddress, loaded.ServerAddress)
	}
}

// TestSeedOr checks the fallback applies only while no seed is configured.
func TestSeedOr(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.Nil(t, cfg.Seed)
	require.Equal(t, uint64(7), cfg.SeedOr(7))

	require.NoError(t, ApplyEnv(cfg, env(map[string]string{EnvSeed: "0"})))
	require.Equal(t, uint64(0), cfg.SeedOr(7))
}
