// Package config loads solver settings from defaults, an optional YAML
// file and SIMPLEX_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"slices"
)

var ErrInvalid = errors.New("config: invalid configuration")

// Config is the full set of settings.
type Config struct {
	Log    LogConfig    `koanf:"log"`
	Output OutputConfig `koanf:"output"`
	Solver SolverConfig `koanf:"solver"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OutputConfig struct {
	// Format is one of table, plain, json or yaml.
	Format string `koanf:"format"`
	// Verbose renders the tableau after every pivot.
	Verbose bool `koanf:"verbose"`
}

type SolverConfig struct {
	InputFormat string `koanf:"input_format"`
	// Verify cross-checks the optimum against a reference solver.
	Verify          bool    `koanf:"verify"`
	VerifyTolerance float64 `koanf:"verify_tolerance"`
}

var (
	logLevels     = []string{"debug", "info", "warn", "error"}
	logFormats    = []string{"console", "json"}
	outputFormats = []string{"table", "plain", "json", "yaml"}
	inputFormats  = []string{"auto", "tableau", "mps", "mps-fixed"}
)

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "table"
	}
	if cfg.Solver.InputFormat == "" {
		cfg.Solver.InputFormat = "auto"
	}
	if cfg.Solver.VerifyTolerance == 0 {
		cfg.Solver.VerifyTolerance = 1e-6
	}
}

// Validate checks that every enumerated field holds a known value.
func (c *Config) Validate() error {
	check := func(field, value string, allowed []string) error {
		if !slices.Contains(allowed, value) {
			return fmt.Errorf("%w: %s %q, want one of %v", ErrInvalid, field, value, allowed)
		}
		return nil
	}
	if err := check("log.level", c.Log.Level, logLevels); err != nil {
		return err
	}
	if err := check("log.format", c.Log.Format, logFormats); err != nil {
		return err
	}
	if err := check("output.format", c.Output.Format, outputFormats); err != nil {
		return err
	}
	if err := check("solver.input_format", c.Solver.InputFormat, inputFormats); err != nil {
		return err
	}
	if c.Solver.VerifyTolerance <= 0 {
		return fmt.Errorf("%w: solver.verify_tolerance must be positive", ErrInvalid)
	}
	return nil
}
