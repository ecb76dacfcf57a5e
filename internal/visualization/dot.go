// Package visualization renders network topology and spike activity in text formats.
package visualization

import (
	"fmt"
	"strings"

	"github.com/neurowire/lifnet/internal/lif"
	"github.com/neurowire/lifnet/internal/trace"
)

// nodeColors distinguish quiescent and spiking neurons in DOT output.
const (
	colorQuiet = "lightgray"
	colorSpike = "tomato"
	colorInput = "steelblue"
)

// RenderDOT produces a Graphviz DOT representation of the two-layer topology.
// Edge labels carry the synaptic weights currently in effect; neurons that
// spiked on the committed tick are highlighted.
func RenderDOT(snap lif.NetworkState, hidden [lif.HiddenSize]lif.Triple, out [lif.OutputSize]lif.Triple) string {
	var b strings.Builder
	b.WriteString("digraph lifnet {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=circle, style=filled, fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	for i := 0; i < lif.FanIn; i++ {
		fmt.Fprintf(&b, "  \"in%d\" [shape=point, fillcolor=%q];\n", i, colorInput)
	}
	for i, s := range snap.Hidden {
		fmt.Fprintf(&b, "  \"h%d\" [label=\"h%d\\nV=%d\", fillcolor=%q];\n",
			i, i, s.V, spikeColor(s.Spike))
	}
	for i, s := range snap.Out {
		fmt.Fprintf(&b, "  \"o%d\" [label=\"o%d\\nV=%d\", fillcolor=%q];\n",
			i, i, s.V, spikeColor(s.Spike))
	}
	b.WriteString("\n")

	for i := 0; i < lif.HiddenSize; i++ {
		for j := 0; j < lif.FanIn; j++ {
			fmt.Fprintf(&b, "  \"in%d\" -> \"h%d\" [label=\"%d\"];\n", j, i, hidden[i][j])
		}
	}
	for i := 0; i < lif.OutputSize; i++ {
		for j := 0; j < lif.FanIn; j++ {
			fmt.Fprintf(&b, "  \"h%d\" -> \"o%d\" [label=\"%d\"];\n", j, i, out[i][j])
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func spikeColor(spiked bool) string {
	if spiked {
		return colorSpike
	}
	return colorQuiet
}

// RenderRaster produces a text spike raster from recorded ticks, one row per
// neuron, one column per tick. Spikes print as '|', silence as '.', and reset
// ticks as 'R' across all rows.
func RenderRaster(ticks []trace.RecordedTick) string {
	if len(ticks) == 0 {
		return "(no ticks recorded)\n"
	}

	rows := make([]strings.Builder, lif.HiddenSize+lif.OutputSize)
	for _, tk := range ticks {
		for i := 0; i < lif.HiddenSize; i++ {
			rows[i].WriteByte(rasterMark(tk.Reset, bitAt(tk.Hidden, i)))
		}
		for i := 0; i < lif.OutputSize; i++ {
			rows[lif.HiddenSize+i].WriteByte(rasterMark(tk.Reset, bitAt(tk.Outputs, i)))
		}
	}

	var b strings.Builder
	for i := 0; i < lif.HiddenSize; i++ {
		fmt.Fprintf(&b, "h%d %s\n", i, rows[i].String())
	}
	for i := 0; i < lif.OutputSize; i++ {
		fmt.Fprintf(&b, "o%d %s\n", i, rows[lif.HiddenSize+i].String())
	}
	return b.String()
}

func bitAt(bits string, i int) bool {
	return i < len(bits) && bits[i] == '1'
}

func rasterMark(reset, spike bool) byte {
	switch {
	case reset:
		return 'R'
	case spike:
		return '|'
	default:
		return '.'
	}
}
