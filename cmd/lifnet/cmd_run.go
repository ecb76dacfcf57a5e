package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/neurowire/lifnet/internal/config"
	"github.com/neurowire/lifnet/internal/lif"
	"github.com/neurowire/lifnet/internal/logging"
	"github.com/neurowire/lifnet/internal/stimulus"
	"github.com/neurowire/lifnet/internal/trace"
)

// runSummary is what the run command reports after a simulation.
type runSummary struct {
	Name          string                     `json:"name"`
	Mode          string                     `json:"mode"`
	Ticks         int                        `json:"ticks"`
	HiddenSpikes  [lif.HiddenSize]int        `json:"hidden_spikes"`
	OutputSpikes  [lif.OutputSize]int        `json:"output_spikes"`
	HiddenWeights [lif.HiddenSize]lif.Triple `json:"hidden_weights"`
	OutputWeights [lif.OutputSize]lif.Triple `json:"output_weights"`
	TracePath     string                     `json:"trace_path,omitempty"`
	Elapsed       string                     `json:"elapsed"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [name]",
		Short: "Run a simulation for a configured number of ticks",
		Long: `run resets the network, then issues ticks with the configured stimulus,
reporting per-layer spike counts and the final observable weights.
Parameters come from --config (YAML) with flag overrides.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "run"
			if len(args) == 1 {
				name = args[0]
			}

			cfg, err := loadRunConfig(cmd)
			if err != nil {
				return err
			}

			logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)

			var tickLog *logging.TickLogger
			var recorder *trace.Recorder
			if cfg.Trace.Enabled || cfg.Logging.Level != "info" {
				dir := cfg.Trace.Dir
				if dir == "" {
					dir = ".lifnet"
				}
				tickLog = logging.NewTickLogger(dir, cfg.Logging.Level)
				defer tickLog.Close()

				if cfg.Trace.Enabled {
					recorder, err = trace.NewRecorder(dir)
					if err != nil {
						return fmt.Errorf("opening trace recorder: %w", err)
					}
					defer recorder.Close()
				}
			}

			summary, err := simulate(cmd.Context(), name, cfg, logger, tickLog, recorder)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(summary)
			}
			printSummary(summary)
			return nil
		},
	}

	cmd.Flags().Int("ticks", 0, "Override the configured tick count")
	cmd.Flags().String("mode", "", "Override the weight mode (rom or hebbian)")
	cmd.Flags().Bool("record", false, "Record the run to the SQLite trace store")
	return cmd
}

// loadRunConfig resolves the effective configuration: defaults, then the
// --config file, then flag overrides, then fail-fast validation.
func loadRunConfig(cmd *cobra.Command) (*config.SimConfig, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if ticks, _ := cmd.Flags().GetInt("ticks"); cmd.Flags().Changed("ticks") {
		cfg.Ticks = ticks
	}
	if mode, _ := cmd.Flags().GetString("mode"); mode != "" {
		cfg.Network.Mode = mode
		if mode == lif.ModeHebbian {
			// Hebbian weights need the wide registers.
			cfg.Network.Neuron.WeightWidth = 8
			cfg.Network.Neuron.PotentialWidth = 10
		}
	}
	if record, _ := cmd.Flags().GetBool("record"); record {
		cfg.Trace.Enabled = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// simulate drives the network for the configured number of ticks.
func simulate(ctx context.Context, name string, cfg *config.SimConfig, logger *slog.Logger,
	tickLog *logging.TickLogger, recorder *trace.Recorder) (runSummary, error) {

	net, err := lif.NewNetwork(cfg.Network)
	if err != nil {
		return runSummary{}, fmt.Errorf("constructing network: %w", err)
	}
	gen, err := stimulus.FromConfig(cfg.Stimulus)
	if err != nil {
		return runSummary{}, fmt.Errorf("constructing stimulus: %w", err)
	}

	var runID int64
	if recorder != nil {
		runID, err = recorder.BeginRun(ctx, name, cfg.Network.Mode)
		if err != nil {
			return runSummary{}, err
		}
	}

	logger.Info("starting simulation",
		"name", name, "mode", cfg.Network.Mode, "ticks", cfg.Ticks, "stimulus", cfg.Stimulus.Kind)
	start := time.Now()

	summary := runSummary{Name: name, Mode: cfg.Network.Mode, Ticks: cfg.Ticks}

	// The reset tick forces the defined initial state before the run.
	reset := lif.TickInput{Reset: true, Addr1: cfg.Addr1, Addr2: cfg.Addr2}
	out := net.Tick(reset)
	if recorder != nil {
		if err := recorder.RecordTick(ctx, runID, 0, reset, out); err != nil {
			return runSummary{}, err
		}
	}

	for i := 0; i < cfg.Ticks; i++ {
		in := lif.TickInput{Inputs: gen.Next(), Addr1: cfg.Addr1, Addr2: cfg.Addr2}
		out = net.Tick(in)

		for j, s := range out.Hidden {
			if s {
				summary.HiddenSpikes[j]++
			}
		}
		for j, s := range out.Out {
			if s {
				summary.OutputSpikes[j]++
			}
		}

		tickLog.Log(map[string]any{
			"event":  "tick",
			"tick":   i,
			"inputs": in.Inputs,
			"hidden": out.Hidden,
			"out":    out.Out,
		})
		if recorder != nil {
			if err := recorder.RecordTick(ctx, runID, i+1, in, out); err != nil {
				return runSummary{}, err
			}
		}
	}

	summary.HiddenWeights = out.HiddenWeights
	summary.OutputWeights = out.OutWeights
	summary.Elapsed = time.Since(start).String()
	if recorder != nil {
		summary.TracePath = recorder.Path()
	}

	logger.Info("simulation finished",
		"name", name, "hidden_spikes", summary.HiddenSpikes, "output_spikes", summary.OutputSpikes,
		"elapsed", summary.Elapsed)
	return summary, nil
}

func printSummary(s runSummary) {
	fmt.Printf("%s: %s mode, %d ticks (%s)\n", s.Name, s.Mode, s.Ticks, s.Elapsed)
	fmt.Printf("  hidden spikes: %v\n", s.HiddenSpikes)
	fmt.Printf("  output spikes: %v\n", s.OutputSpikes)
	fmt.Printf("  hidden weights: %v\n", s.HiddenWeights)
	fmt.Printf("  output weights: %v\n", s.OutputWeights)
	if s.TracePath != "" {
		fmt.Printf("  trace: %s\n", s.TracePath)
	}
}
