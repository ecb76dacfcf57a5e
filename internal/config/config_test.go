package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/neurowire/lifnet/internal/lif"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Network.Mode != lif.ModeROM {
		t.Errorf("expected mode %q, got %q", lif.ModeROM, cfg.Network.Mode)
	}
	if cfg.Network.Neuron.VRest != 6 || cfg.Network.Neuron.VLeak != 1 || cfg.Network.Neuron.VThresh != 14 {
		t.Errorf("unexpected neuron defaults: %+v", cfg.Network.Neuron)
	}
	if cfg.Ticks != 100 {
		t.Errorf("expected 100 ticks, got %d", cfg.Ticks)
	}
	if cfg.Stimulus.Kind != "constant" {
		t.Errorf("expected constant stimulus, got %q", cfg.Stimulus.Kind)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected Logging.Level 'info', got '%s'", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
network:
  mode: hebbian
  neuron:
    potential_width: 10
    weight_width: 8
  hebbian:
    eta: 4
    decay_shift: 6

ticks: 500

stimulus:
  kind: random
  seed: 42
  probability: 0.25
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Network.Mode != lif.ModeHebbian {
		t.Errorf("expected hebbian mode, got %q", cfg.Network.Mode)
	}
	if cfg.Network.Neuron.PotentialWidth != 10 {
		t.Errorf("expected potential_width 10, got %d", cfg.Network.Neuron.PotentialWidth)
	}
	if cfg.Network.Hebbian.Eta != 4 {
		t.Errorf("expected eta 4, got %d", cfg.Network.Hebbian.Eta)
	}
	// Unset keys keep their defaults.
	if cfg.Network.Neuron.VThresh != 14 {
		t.Errorf("expected default v_thresh 14, got %d", cfg.Network.Neuron.VThresh)
	}
	if cfg.Network.Hebbian.Seed != 10 {
		t.Errorf("expected default seed 10, got %d", cfg.Network.Hebbian.Seed)
	}
	if cfg.Ticks != 500 {
		t.Errorf("expected 500 ticks, got %d", cfg.Ticks)
	}
	if cfg.Stimulus.Seed != 42 || cfg.Stimulus.Probability != 0.25 {
		t.Errorf("unexpected stimulus config: %+v", cfg.Stimulus)
	}
}

func TestLoadFromFile_ExpandsTraceDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("LIFNET_TEST_DATA", "/data/runs")

	configPath := filepath.Join(tmpDir, "config.yaml")
	configContent := `
trace:
  enabled: true
  dir: ${LIFNET_TEST_DATA}/traces
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Trace.Dir != "/data/runs/traces" {
		t.Errorf("expected expanded trace dir, got %q", cfg.Trace.Dir)
	}
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("LIFNET_TICKS", "7")
	t.Setenv("LIFNET_LOG_LEVEL", "debug")

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("ticks: 3\n"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Ticks != 7 {
		t.Errorf("expected env override ticks 7, got %d", cfg.Ticks)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected env override level debug, got %q", cfg.Logging.Level)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*SimConfig)
	}{
		{"negative ticks", func(c *SimConfig) { c.Ticks = -1 }},
		{"bad stimulus kind", func(c *SimConfig) { c.Stimulus.Kind = "sine" }},
		{"probability out of range", func(c *SimConfig) { c.Stimulus.Probability = 1.5 }},
		{"bad log level", func(c *SimConfig) { c.Logging.Level = "verbose" }},
		{"neuron threshold too wide", func(c *SimConfig) { c.Network.Neuron.VThresh = 99 }},
		{"hebbian seed above max", func(c *SimConfig) {
			c.Network.Mode = lif.ModeHebbian
			c.Network.Hebbian.MaxWeight = 5
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.mut(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
