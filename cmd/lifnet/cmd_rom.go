package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neurowire/lifnet/internal/lif"
)

func newROMCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rom",
		Short: "Print the weight ROM contents",
		Long: `rom prints the preset weight table. With --addr it resolves a single
address, including out-of-range addresses (which resolve to the zero
triple by definition).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			addr, _ := cmd.Flags().GetInt("addr")

			rom := lif.DefaultROM()

			if cmd.Flags().Changed("addr") {
				tr := rom.Lookup(addr)
				if jsonOut {
					return json.NewEncoder(os.Stdout).Encode(map[string]any{
						"addr":    addr,
						"weights": tr,
					})
				}
				fmt.Printf("%d: (%d, %d, %d)\n", addr, tr[0], tr[1], tr[2])
				return nil
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(rom)
			}
			for a, tr := range rom {
				fmt.Printf("%d: (%d, %d, %d)\n", a, tr[0], tr[1], tr[2])
			}
			return nil
		},
	}
	cmd.Flags().Int("addr", 0, "Resolve a single address")
	return cmd
}
