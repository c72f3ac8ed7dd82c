package config

import (
	"fmt"
	"time"

	"github.com/aretw0/madhouse/pkg/domain"
	"github.com/caarlos0/env/v11"
)

// Config holds the knobs of an orchestrated run.
//
// The zero value is not useful; start from Default. Values are layered as
// defaults, then an optional profile file, then the environment.
type Config struct {
	// Random selects one-of composition instead of all-of. In the
	// environment only MADHOUSE=1 selects it; any other value selects
	// deterministic mode.
	Random bool `yaml:"random" mapstructure:"random"`

	// Cases is the number of sequences rapid generates and runs.
	Cases int `env:"MADHOUSE_CASES" yaml:"cases" mapstructure:"cases"`

	// ShrinkTime bounds how long rapid may minimize a failing sequence.
	// Zero reports the first failing sequence as found.
	ShrinkTime time.Duration `env:"MADHOUSE_SHRINK_TIME" yaml:"shrink_time" mapstructure:"shrink_time"`

	// MinSteps and MaxSteps bound random-mode sequence length to [MinSteps, MaxSteps).
	MinSteps int `env:"MADHOUSE_MIN_STEPS" yaml:"min_steps" mapstructure:"min_steps"`
	MaxSteps int `env:"MADHOUSE_MAX_STEPS" yaml:"max_steps" mapstructure:"max_steps"`

	// Seed fixes rapid's PRNG seed. Zero lets rapid pick one.
	Seed uint64 `env:"MADHOUSE_SEED" yaml:"seed" mapstructure:"seed"`

	// NoFailFile stops rapid from writing fail files under testdata/.
	NoFailFile bool `env:"MADHOUSE_NO_FAIL_FILE" yaml:"no_fail_file" mapstructure:"no_fail_file"`

	// NoColor disables colored report labels.
	NoColor bool `env:"MADHOUSE_NO_COLOR" yaml:"no_color" mapstructure:"no_color"`

	// Quiet suppresses the Selected/Executed report.
	Quiet bool `env:"MADHOUSE_QUIET" yaml:"quiet" mapstructure:"quiet"`

	// LogLevel is the slog level name used by the CLI.
	LogLevel string `env:"MADHOUSE_LOG_LEVEL" yaml:"log_level" mapstructure:"log_level"`
}

// Default returns the configuration used when nothing is overridden:
// deterministic mode, a single case and no shrinking, which suits expensive
// or non-deterministic systems under test.
func Default() Config {
	return Config{
		Cases:    1,
		MinSteps: domain.DefaultMinSteps,
		MaxSteps: domain.DefaultMaxSteps,
		LogLevel: "info",
	}
}

// Mode returns the composition mode selected by the configuration.
func (c Config) Mode() domain.Mode {
	if c.Random {
		return domain.ModeRandom
	}
	return domain.ModeDeterministic
}

// Validate reports inconsistent values.
func (c Config) Validate() error {
	if c.Cases < 1 {
		return fmt.Errorf("cases must be positive, got %d", c.Cases)
	}
	if c.ShrinkTime < 0 {
		return fmt.Errorf("shrink time must not be negative, got %s", c.ShrinkTime)
	}
	if c.MinSteps < 0 || c.MaxSteps <= c.MinSteps {
		return fmt.Errorf("%w: [%d, %d)", domain.ErrInvalidStepBounds, c.MinSteps, c.MaxSteps)
	}
	return nil
}

// FromEnv returns Default overridden by the process environment.
func FromEnv() (Config, error) {
	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// switches are read as raw strings; a nil field means the variable is unset
// or empty.
type switches struct {
	Mode    *string `env:"MADHOUSE"`
	NoColor *string `env:"NO_COLOR"`
}

// ApplyEnv overrides the fields of cfg whose variables are set.
// NO_COLOR is honored as well as MADHOUSE_NO_COLOR.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	var sw switches
	if err := env.Parse(&sw); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	if sw.Mode != nil {
		cfg.Random = *sw.Mode == "1"
	}
	if sw.NoColor != nil && *sw.NoColor != "" {
		cfg.NoColor = true
	}
	return cfg.Validate()
}
