package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neurowire/lifnet/internal/config"
	"github.com/neurowire/lifnet/internal/lif"
	"github.com/neurowire/lifnet/internal/trace"
	"github.com/neurowire/lifnet/internal/visualization"
)

func newDotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Render the network topology as Graphviz DOT",
		Long: `dot constructs the configured network, applies the reset, and renders
its topology with the resolved weight triples as edge labels.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				loaded, err := config.LoadFromFile(path)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			net, err := lif.NewNetwork(cfg.Network)
			if err != nil {
				return fmt.Errorf("constructing network: %w", err)
			}
			out := net.Tick(lif.TickInput{Reset: true, Addr1: cfg.Addr1, Addr2: cfg.Addr2})

			fmt.Print(visualization.RenderDOT(net.Snapshot(), out.HiddenWeights, out.OutWeights))
			return nil
		},
	}
	return cmd
}

func newRasterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "raster",
		Short: "Print a spike raster from the trace store",
		Long: `raster reads a recorded run from the SQLite trace store and prints one
row per neuron with '|' marking spike ticks and 'R' marking resets.
Without --run it shows the most recent run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			recorder, err := trace.NewRecorder(dir)
			if err != nil {
				return fmt.Errorf("opening trace store: %w", err)
			}
			defer recorder.Close()

			ctx := cmd.Context()
			runID, _ := cmd.Flags().GetInt64("run")
			name := fmt.Sprintf("run %d", runID)
			if !cmd.Flags().Changed("run") {
				runID, name, err = recorder.LatestRun(ctx)
				if err != nil {
					return err
				}
			}

			ticks, err := recorder.Ticks(ctx, runID)
			if err != nil {
				return err
			}
			if len(ticks) == 0 {
				return fmt.Errorf("run %d has no recorded ticks", runID)
			}

			fmt.Fprintf(os.Stdout, "%s (%d ticks)\n", name, len(ticks))
			fmt.Print(visualization.RenderRaster(ticks))
			return nil
		},
	}
	cmd.Flags().String("dir", ".lifnet", "Trace store directory")
	cmd.Flags().Int64("run", 0, "Run id to render (default: latest)")
	return cmd
}
