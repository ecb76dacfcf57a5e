package visualization

import (
	"strings"
	"testing"

	"github.com/neurowire/lifnet/internal/lif"
	"github.com/neurowire/lifnet/internal/trace"
)

func TestRenderDOT(t *testing.T) {
	snap := lif.NetworkState{}
	snap.Hidden[1] = lif.NeuronState{V: 9, Spike: true}
	snap.Out[0] = lif.NeuronState{V: 6}

	var hidden [lif.HiddenSize]lif.Triple
	var out [lif.OutputSize]lif.Triple
	hidden[0] = lif.Triple{2, 1, 0}
	out[1] = lif.Triple{4, 4, 4}

	dot := RenderDOT(snap, hidden, out)

	if !strings.HasPrefix(dot, "digraph lifnet {") {
		t.Fatalf("missing digraph header:\n%s", dot)
	}
	if !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Fatalf("missing closing brace:\n%s", dot)
	}

	// Spiking neuron is highlighted, quiet ones are not.
	if !strings.Contains(dot, `"h1" [label="h1\nV=9", fillcolor="tomato"]`) {
		t.Errorf("spiking hidden neuron not highlighted:\n%s", dot)
	}
	if !strings.Contains(dot, `"o0" [label="o0\nV=6", fillcolor="lightgray"]`) {
		t.Errorf("quiet output neuron rendered wrong:\n%s", dot)
	}

	// Every input feeds every hidden neuron, every hidden feeds every output.
	for _, edge := range []string{
		`"in0" -> "h0" [label="2"]`,
		`"in1" -> "h0" [label="1"]`,
		`"in2" -> "h0" [label="0"]`,
		`"h0" -> "o1" [label="4"]`,
		`"h2" -> "o0" [label="0"]`,
	} {
		if !strings.Contains(dot, edge) {
			t.Errorf("missing edge %s", edge)
		}
	}
}

func TestRenderRaster(t *testing.T) {
	ticks := []trace.RecordedTick{
		{Tick: 0, Reset: true, Hidden: "000", Outputs: "00"},
		{Tick: 1, Hidden: "101", Outputs: "00"},
		{Tick: 2, Hidden: "000", Outputs: "11"},
	}

	got := RenderRaster(ticks)
	want := "h0 R|.\n" +
		"h1 R..\n" +
		"h2 R|.\n" +
		"o0 R.|\n" +
		"o1 R.|\n"
	if got != want {
		t.Errorf("raster mismatch\ngot:\n%swant:\n%s", got, want)
	}
}

func TestRenderRaster_Empty(t *testing.T) {
	if got := RenderRaster(nil); !strings.Contains(got, "no ticks") {
		t.Errorf("empty raster = %q", got)
	}
}
