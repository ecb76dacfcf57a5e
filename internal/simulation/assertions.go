package simulation

import "testing"

// AssertNoOutputSpikes asserts that no output neuron fires on any tick.
func AssertNoOutputSpikes(t *testing.T, result Result) {
	t.Helper()
	for _, tr := range result.Ticks {
		for i, s := range tr.Out.Out {
			if s {
				t.Errorf("AssertNoOutputSpikes: tick %d: output neuron %d spiked", tr.Tick, i)
			}
		}
	}
}

// AssertNoHiddenSpikes asserts that no hidden neuron fires on any tick.
func AssertNoHiddenSpikes(t *testing.T, result Result) {
	t.Helper()
	for _, tr := range result.Ticks {
		for i, s := range tr.Out.Hidden {
			if s {
				t.Errorf("AssertNoHiddenSpikes: tick %d: hidden neuron %d spiked", tr.Tick, i)
			}
		}
	}
}

// AssertPotentialsBounded asserts that every membrane potential stays
// within its declared width on every tick.
func AssertPotentialsBounded(t *testing.T, result Result, max uint16) {
	t.Helper()
	for _, tr := range result.Ticks {
		for i, s := range tr.State.Hidden {
			if s.V > max {
				t.Errorf("AssertPotentialsBounded: tick %d: hidden %d V = %d > %d", tr.Tick, i, s.V, max)
			}
		}
		for i, s := range tr.State.Out {
			if s.V > max {
				t.Errorf("AssertPotentialsBounded: tick %d: output %d V = %d > %d", tr.Tick, i, s.V, max)
			}
		}
	}
}

// AssertWeightsBounded asserts that every plastic weight stays within
// [0, max] on every tick.
func AssertWeightsBounded(t *testing.T, result Result, max uint8) {
	t.Helper()
	for _, tr := range result.Ticks {
		for i, triple := range tr.State.HiddenWeights {
			for j, w := range triple {
				if w > max {
					t.Errorf("AssertWeightsBounded: tick %d: hidden %d w%d = %d > %d", tr.Tick, i, j, w, max)
				}
			}
		}
		for i, triple := range tr.State.OutWeights {
			for j, w := range triple {
				if w > max {
					t.Errorf("AssertWeightsBounded: tick %d: output %d w%d = %d > %d", tr.Tick, i, j, w, max)
				}
			}
		}
	}
}

// AssertIdenticalRuns asserts two runs produced bit-identical tick
// sequences.
func AssertIdenticalRuns(t *testing.T, a, b Result) {
	t.Helper()
	if len(a.Ticks) != len(b.Ticks) {
		t.Fatalf("AssertIdenticalRuns: tick counts differ: %d vs %d", len(a.Ticks), len(b.Ticks))
	}
	for i := range a.Ticks {
		if a.Ticks[i].Out != b.Ticks[i].Out {
			t.Fatalf("AssertIdenticalRuns: tick %d: outputs diverged:\n%+v\n%+v", i, a.Ticks[i].Out, b.Ticks[i].Out)
		}
		if a.Ticks[i].State != b.Ticks[i].State {
			t.Fatalf("AssertIdenticalRuns: tick %d: states diverged:\n%+v\n%+v", i, a.Ticks[i].State, b.Ticks[i].State)
		}
	}
}

// HiddenSpikeTicks returns the tick indices on which a hidden neuron
// fired.
func HiddenSpikeTicks(result Result, neuron int) []int {
	var ticks []int
	for _, tr := range result.Ticks {
		if tr.Out.Hidden[neuron] {
			ticks = append(ticks, tr.Tick)
		}
	}
	return ticks
}

// HiddenWeightSeries returns the per-tick trajectory of one hidden
// neuron's synapse weight.
func HiddenWeightSeries(result Result, neuron, synapse int) []uint8 {
	out := make([]uint8, 0, len(result.Ticks))
	for _, tr := range result.Ticks {
		out = append(out, tr.State.HiddenWeights[neuron][synapse])
	}
	return out
}
