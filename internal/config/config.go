package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds experiment parameters and connection settings.
type Config struct {
	// Rounds is the number of simulation rounds per parameter pair.
	Rounds int `yaml:"rounds" validate:"gte=1"`
	// Cycles is the number of PLC scan cycles per round.
	Cycles int `yaml:"cycles" validate:"gte=1"`
	// Drifts lists the CUSUM drift values of the grid.
	Drifts []float64 `yaml:"drifts" validate:"required,min=1,dive,gte=0"`
	// Thresholds lists the CUSUM threshold values of the grid.
	Thresholds []float64 `yaml:"thresholds" validate:"required,min=1,dive,gt=0"`
	// Sensor is the continuous channel watched by the detector.
	Sensor string `yaml:"sensor" validate:"oneof=temp weight"`
	// Seed makes grid searches reproducible. Nil lets callers draw one.
	Seed *uint64 `yaml:"seed,omitempty"`
	// Workers bounds concurrent rounds; zero uses all processors.
	Workers int `yaml:"workers" validate:"gte=0"`
	// MinDetectionEffectiveness is the report filter lower bound, in percent.
	MinDetectionEffectiveness float64 `yaml:"min_detection_effectiveness" validate:"gte=0,lte=100"`
	// MaxFalseAlarmRate is the report filter upper bound, in percent.
	MaxFalseAlarmRate float64 `yaml:"max_false_alarm_rate" validate:"gte=0,lte=100"`
	// ServerAddress is the gRPC address of the experiment service.
	ServerAddress string `yaml:"server_addr" validate:"required"`
	// MetricsAddress is the HTTP address serving /metrics. Empty disables it.
	MetricsAddress string `yaml:"metrics_addr"`
	// ResultsDir is where result tables and reading trails are written.
	ResultsDir string `yaml:"results_dir" validate:"required"`
	// Timeout bounds RPC calls made by the client.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "elevator-ids-settings.yaml"

	// DefaultRounds is the number of rounds per parameter pair.
	DefaultRounds = 10

	// DefaultCycles is the number of scan cycles per round.
	DefaultCycles = 500

	// DefaultServerAddress is the default gRPC listen and dial address.
	DefaultServerAddress = "127.0.0.1:50051"

	// DefaultResultsDir is the default output directory.
	DefaultResultsDir = "results"

	// DefaultTimeout is the default duration for RPC calls.
	DefaultTimeout = 30 * time.Second

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// Environment variables overriding file values.
const (
	EnvRounds                    = "SIM_RUNS"
	EnvCycles                    = "SIM_ROUNDS"
	EnvSeed                      = "SIM_SEED"
	EnvMinDetectionEffectiveness = "MIN_DETECTION_EFFECTIVENESS"
	EnvMaxFalseAlarmRate         = "MAX_FALSE_ALARM_RATE"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInvalidEnv is returned when an override cannot be parsed.
	errInvalidEnv = errors.New("invalid environment override")

	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Rounds:                    DefaultRounds,
		Cycles:                    DefaultCycles,
		Drifts:                    []float64{0.3, 0.5, 0.7, 0.9},
		Thresholds:                []float64{4, 6, 8},
		Sensor:                    "temp",
		MinDetectionEffectiveness: 50,
		MaxFalseAlarmRate:         25,
		ServerAddress:             DefaultServerAddress,
		ResultsDir:                DefaultResultsDir,
		Timeout:                   DefaultTimeout,
	}
}

// Load reads configuration from path over the defaults, applies environment
// overrides and validates the result. A missing file at the default path
// yields the defaults; any other path must exist.
func Load(path string) (*Config, error) {
	explicit := path != "" && path != DefaultConfigFilename
	if !explicit {
		path = DefaultConfigFilename
	}

	cfg := Default()

	contents, err := os.ReadFile(filepath.Clean(path))

	switch {
	case err == nil:
		if err := yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// ApplyEnv overrides cfg with the variables found by lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	ints := map[string]*int{
		EnvRounds: &cfg.Rounds,
		EnvCycles: &cfg.Cycles,
	}

	for name, dst := range ints {
		if value, ok := lookup(name); ok && value != "" {
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%w %s=%q: %w", errInvalidEnv, name, value, err)
			}

			*dst = n
		}
	}

	floats := map[string]*float64{
		EnvMinDetectionEffectiveness: &cfg.MinDetectionEffectiveness,
		EnvMaxFalseAlarmRate:         &cfg.MaxFalseAlarmRate,
	}

	for name, dst := range floats {
		if value, ok := lookup(name); ok && value != "" {
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("%w %s=%q: %w", errInvalidEnv, name, value, err)
			}

			*dst = f
		}
	}

	if value, ok := lookup(EnvSeed); ok && value != "" {
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w %s=%q: %w", errInvalidEnv, EnvSeed, value, err)
		}

		cfg.Seed = &seed
	}

	return nil
}

// SeedOr returns the configured seed, or fallback when none is set.
func (c *Config) SeedOr(fallback uint64) uint64 {
	if c.Seed == nil {
		return fallback
	}

	return *c.Seed
}

// Validate checks the provided settings for required fields and formatting.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.Sensor == "" {
		settings.Sensor = "temp"
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if err := validate.Struct(settings); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ServerAddress); err != nil {
		return fmt.Errorf("invalid server socket: %w", err)
	}

	if settings.MetricsAddress == "" {
		return nil
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.MetricsAddress); err != nil {
		return fmt.Errorf("invalid metrics socket: %w", err)
	}

	return nil
}
