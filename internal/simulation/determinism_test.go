package simulation_test

import (
	"testing"

	"github.com/neurowire/lifnet/internal/lif"
	"github.com/neurowire/lifnet/internal/simulation"
	"github.com/neurowire/lifnet/internal/stimulus"
)

// TestRunsAreBitIdentical runs the same seeded-random scenario twice,
// including a mid-run reset, and requires bit-identical tick sequences.
func TestRunsAreBitIdentical(t *testing.T) {
	r := simulation.NewRunner(t)

	scenario := func() simulation.Scenario {
		gen := stimulus.NewRandom(1234, 0.4)
		return simulation.Scenario{
			Name:    "seeded-random",
			Ticks:   300,
			Addr1:   7,
			Addr2:   6,
			InputAt: func(int) [lif.FanIn]bool { return gen.Next() },
			ResetAt: map[int]bool{150: true},
		}
	}

	a := r.Run(scenario())
	b := r.Run(scenario())
	simulation.AssertIdenticalRuns(t, a, b)
}

// TestHebbianRunsAreBitIdentical covers the plastic variant, where weight
// state compounds across the whole run.
func TestHebbianRunsAreBitIdentical(t *testing.T) {
	r := simulation.NewRunner(t)

	scenario := func() simulation.Scenario {
		var p lif.NetworkParams
		p.Defaults()
		p.Mode = lif.ModeHebbian
		p.Neuron.WeightWidth = 8
		p.Neuron.PotentialWidth = 10

		gen := stimulus.NewRandom(99, 0.3)
		return simulation.Scenario{
			Name:    "seeded-random-hebbian",
			Params:  p,
			Ticks:   300,
			InputAt: func(int) [lif.FanIn]bool { return gen.Next() },
		}
	}

	a := r.Run(scenario())
	b := r.Run(scenario())
	simulation.AssertIdenticalRuns(t, a, b)
}

// TestResetRestoresInitialState checks that a mid-run reset produces the
// same state as a fresh construction, and that back-to-back resets are
// idempotent.
func TestResetRestoresInitialState(t *testing.T) {
	r := simulation.NewRunner(t)

	drive := func(resets map[int]bool) simulation.Result {
		var p lif.NetworkParams
		p.Defaults()
		p.Mode = lif.ModeHebbian
		p.Neuron.WeightWidth = 8
		p.Neuron.PotentialWidth = 10
		return r.Run(simulation.Scenario{
			Name:    "reset",
			Params:  p,
			Ticks:   60,
			InputAt: func(i int) [lif.FanIn]bool { return [lif.FanIn]bool{true, i%2 == 0, false} },
			ResetAt: resets,
		})
	}

	once := drive(map[int]bool{58: true, 59: true}) // reset twice in a row
	fresh := drive(map[int]bool{59: true})          // reset once at the end

	if once.Final != fresh.Final {
		t.Fatalf("double reset differs from single reset:\n%+v\n%+v", once.Final, fresh.Final)
	}
}
