// Package config provides unified configuration loading for lifnet.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/neurowire/lifnet/internal/lif"
)

// SimConfig contains everything needed to run a simulation: the network
// construction parameters, the driver settings (tick count, stimulus,
// weight addresses), and the ambient settings (logging, trace recording).
type SimConfig struct {
	// Network holds the core construction parameters.
	Network lif.NetworkParams `yaml:"network"`

	// Ticks is the number of ticks the driver issues after the reset tick.
	Ticks int `yaml:"ticks"`

	// Addr1 and Addr2 select the hidden/output layer ROM triples.
	// Ignored in Hebbian mode.
	Addr1 int `yaml:"addr1"`
	Addr2 int `yaml:"addr2"`

	// Stimulus configures the input-vector generator.
	Stimulus StimulusConfig `yaml:"stimulus"`

	// Logging contains operational logging settings.
	Logging LoggingConfig `yaml:"logging"`

	// Trace contains spike-trace recording settings.
	Trace TraceConfig `yaml:"trace"`
}

// StimulusConfig selects and parameterizes an input generator.
type StimulusConfig struct {
	// Kind is the generator name: "constant", "pulse", or "random".
	Kind string `yaml:"kind"`

	// Bits is the input pattern for constant and pulse generators,
	// e.g. "101" drives lines 0 and 2.
	Bits string `yaml:"bits,omitempty"`

	// Period is the pulse period in ticks (pulse generator only).
	Period int `yaml:"period,omitempty"`

	// Seed is the PRNG seed for the random generator. Fixed seeds keep
	// runs reproducible.
	Seed int64 `yaml:"seed,omitempty"`

	// Probability is the per-line per-tick firing probability for the
	// random generator.
	Probability float64 `yaml:"probability,omitempty"`
}

// LoggingConfig configures lifnet's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables per-tick JSONL trace logging.
	Level string `yaml:"level"`
}

// TraceConfig configures the SQLite spike-trace recorder.
type TraceConfig struct {
	// Enabled turns tick recording on.
	Enabled bool `yaml:"enabled"`

	// Dir is the directory holding the trace database. Supports ${VAR}
	// expansion. Empty means ".lifnet" under the working directory.
	Dir string `yaml:"dir,omitempty"`
}

// Default returns a SimConfig with sensible defaults: the ROM-mode network
// with the reference neuron parameters, 100 ticks, constant zero input.
func Default() *SimConfig {
	cfg := &SimConfig{
		Ticks: 100,
		Addr1: 7,
		Addr2: 7,
		Stimulus: StimulusConfig{
			Kind:        "constant",
			Bits:        "000",
			Probability: 0.5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
	cfg.Network.Defaults()
	return cfg
}

// LoadFromFile loads configuration from a specific YAML file, applying
// defaults for anything the file leaves unset.
func LoadFromFile(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.Trace.Dir = expandEnvVars(cfg.Trace.Dir)
	applyEnvOverrides(cfg)

	return cfg, nil
}

// Validate checks the driver-side settings and delegates the core
// parameters to the engine's own fail-fast validation.
func (c *SimConfig) Validate() error {
	if c.Ticks < 0 {
		return fmt.Errorf("ticks must be non-negative, got %d", c.Ticks)
	}

	if err := c.Network.Neuron.Validate(); err != nil {
		return fmt.Errorf("neuron config: %w", err)
	}
	if c.Network.Mode == lif.ModeHebbian {
		if err := c.Network.Hebbian.Validate(); err != nil {
			return fmt.Errorf("hebbian config: %w", err)
		}
	}

	validKinds := map[string]bool{"": true, "constant": true, "pulse": true, "random": true}
	if !validKinds[c.Stimulus.Kind] {
		return fmt.Errorf("invalid stimulus kind: %s (valid: constant, pulse, random)", c.Stimulus.Kind)
	}
	if c.Stimulus.Probability < 0 || c.Stimulus.Probability > 1 {
		return fmt.Errorf("stimulus probability must be between 0 and 1, got %f", c.Stimulus.Probability)
	}

	validLevels := map[string]bool{"": true, "info": true, "debug": true, "trace": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *SimConfig) {
	if v := os.Getenv("LIFNET_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("LIFNET_TRACE_DIR"); v != "" {
		cfg.Trace.Dir = v
	}

	if v := os.Getenv("LIFNET_TICKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Ticks = n
		}
	}

	if v := os.Getenv("LIFNET_STIMULUS_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Stimulus.Seed = n
		}
	}
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, os.Getenv)
}
