package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "lifnet",
		Short: "lifnet - discrete-time LIF spiking-network simulator",
		Long: `lifnet simulates small feed-forward networks of leaky-integrate-and-fire
spiking neurons with bit-exact fixed-width integer arithmetic.

The network has two weight strategies: a fixed ROM of preset weight
triples, and online Hebbian learning with decay and clamping. An external
driver pushes input vectors in one tick at a time and reads back the
spike vectors of both layers.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newROMCmd(),
		newDotCmd(),
		newRasterCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]string{"version": version})
			} else {
				fmt.Printf("lifnet version %s\n", version)
			}
		},
	}
}
