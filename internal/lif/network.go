package lif

import "fmt"

// Layer sizes of the fixed feed-forward topology: 3 external inputs fan
// into 3 hidden neurons, whose spikes fan into 2 output neurons.
const (
	HiddenSize = 3
	OutputSize = 2
)

// Weight strategy names. ROM resolves each layer's shared triple through
// the weight table and rotates it across the layer; Hebbian gives every
// neuron its own plastic synapse bank.
const (
	ModeROM     = "rom"
	ModeHebbian = "hebbian"
)

// NetworkParams configures a network at construction time. None of it is
// runtime-mutable.
type NetworkParams struct {
	// Mode selects the weight strategy: ModeROM or ModeHebbian.
	Mode string `yaml:"mode"`

	// Neuron parameterizes every neuron in both layers.
	Neuron NeuronParams `yaml:"neuron"`

	// Hebbian parameterizes the synapse banks. Ignored in ROM mode.
	Hebbian HebbianParams `yaml:"hebbian"`

	// ROM is the weight table for ROM mode. Nil means DefaultROM.
	ROM WeightROM `yaml:"-"`
}

// Defaults sets ROM mode with the standard neuron and Hebbian parameters.
func (p *NetworkParams) Defaults() {
	p.Mode = ModeROM
	p.Neuron.Defaults()
	p.Hebbian.Defaults()
}

// TickInput is everything the external driver supplies for one tick.
type TickInput struct {
	// Inputs is the layer-0 spike vector.
	Inputs [FanIn]bool

	// Addr1 and Addr2 select the hidden and output layer weight triples
	// from the ROM. Ignored in Hebbian mode.
	Addr1 int
	Addr2 int

	// Reset forces every component into its initial state this tick,
	// overriding the normal transition.
	Reset bool
}

// TickOutput is what the driver reads back after one tick: the registered
// spike vectors of both layers and the weight triples each neuron used
// (ROM mode) or holds after its update (Hebbian mode).
type TickOutput struct {
	Hidden        [HiddenSize]bool
	Out           [OutputSize]bool
	HiddenWeights [HiddenSize]Triple
	OutWeights    [OutputSize]Triple
}

// NetworkState is a full snapshot of the committed register state, for
// inspection by tests and recorders. It is a copy; mutating it has no
// effect on the network.
type NetworkState struct {
	Hidden        [HiddenSize]NeuronState
	Out           [OutputSize]NeuronState
	HiddenWeights [HiddenSize]Triple
	OutWeights    [OutputSize]Triple
}

// Network composes the two-layer feed-forward topology under one global
// tick. All neurons advance from the previous tick's committed outputs:
// layer 2 consumes the hidden spike vector that was valid at the start of
// the tick, never a same-tick value.
type Network struct {
	params NetworkParams
	rom    WeightROM

	hidden [HiddenSize]*Neuron
	out    [OutputSize]*Neuron

	// Per-neuron plastic banks, only in Hebbian mode.
	hiddenBanks [HiddenSize]*SynapseBank
	outBanks    [OutputSize]*SynapseBank
}

// NewNetwork validates the configuration and returns a network in its
// reset state. Configuration violations (unknown mode, widths too narrow,
// ROM entries exceeding the weight width) are rejected here; there are no
// recoverable errors after construction.
func NewNetwork(params NetworkParams) (*Network, error) {
	if params.Mode != ModeROM && params.Mode != ModeHebbian {
		return nil, fmt.Errorf("unknown weight mode %q", params.Mode)
	}
	rom := params.ROM
	if rom == nil {
		rom = DefaultROM()
	}

	net := &Network{params: params, rom: rom}

	if params.Mode == ModeROM {
		max := params.Neuron.WeightMax()
		for addr, tr := range rom {
			for i, w := range tr {
				if w > max {
					return nil, fmt.Errorf("rom entry %d weight %d (%d) exceeds weight_width %d (max %d)",
						addr, i, w, params.Neuron.WeightWidth, max)
				}
			}
		}
	}
	if params.Mode == ModeHebbian {
		if hMax := params.Neuron.WeightMax(); params.Hebbian.MaxWeight > hMax {
			return nil, fmt.Errorf("hebbian max_weight %d exceeds weight_width %d (max %d)",
				params.Hebbian.MaxWeight, params.Neuron.WeightWidth, hMax)
		}
	}

	for i := range net.hidden {
		n, err := NewNeuron(params.Neuron)
		if err != nil {
			return nil, fmt.Errorf("hidden neuron %d: %w", i, err)
		}
		net.hidden[i] = n
	}
	for i := range net.out {
		n, err := NewNeuron(params.Neuron)
		if err != nil {
			return nil, fmt.Errorf("output neuron %d: %w", i, err)
		}
		net.out[i] = n
	}

	if params.Mode == ModeHebbian {
		for i := range net.hiddenBanks {
			b, err := NewSynapseBank(params.Hebbian)
			if err != nil {
				return nil, fmt.Errorf("hidden bank %d: %w", i, err)
			}
			net.hiddenBanks[i] = b
		}
		for i := range net.outBanks {
			b, err := NewSynapseBank(params.Hebbian)
			if err != nil {
				return nil, fmt.Errorf("output bank %d: %w", i, err)
			}
			net.outBanks[i] = b
		}
	}
	return net, nil
}

// Params returns the construction-time configuration.
func (net *Network) Params() NetworkParams {
	return net.params
}

// Reset forces every neuron and synapse bank into its initial state.
func (net *Network) Reset() {
	for _, n := range net.hidden {
		n.Reset()
	}
	for _, n := range net.out {
		n.Reset()
	}
	if net.params.Mode == ModeHebbian {
		for _, b := range net.hiddenBanks {
			b.Reset()
		}
		for _, b := range net.outBanks {
			b.Reset()
		}
	}
}

// hiddenTriple resolves the weight triple for hidden neuron i this tick.
func (net *Network) hiddenTriple(i, addr int) Triple {
	if net.params.Mode == ModeHebbian {
		return net.hiddenBanks[i].Weights()
	}
	return Rotate(net.rom.Lookup(addr), i)
}

// outTriple resolves the weight triple for output neuron i this tick.
func (net *Network) outTriple(i, addr int) Triple {
	if net.params.Mode == ModeHebbian {
		return net.outBanks[i].Weights()
	}
	return Rotate(net.rom.Lookup(addr), i)
}

// Tick advances the whole network one step and returns the registered
// outputs. The tick is a single atomic step: phase one computes every
// next-state from committed state only, phase two commits them all.
//
// A reset tick overrides the normal transition and yields the initial
// state; issuing reset twice in a row is equivalent to issuing it once.
func (net *Network) Tick(in TickInput) TickOutput {
	if in.Reset {
		net.Reset()
		return net.observe(in)
	}

	// Phase 1: compute. Output neurons read the hidden spike vector
	// committed at the start of the tick.
	var prevHidden [HiddenSize]bool
	for i, n := range net.hidden {
		prevHidden[i] = n.State().Spike
	}

	var nextHidden [HiddenSize]NeuronState
	var hiddenW [HiddenSize]Triple
	for i, n := range net.hidden {
		hiddenW[i] = net.hiddenTriple(i, in.Addr1)
		nextHidden[i] = n.Next(in.Inputs, hiddenW[i])
	}

	var nextOut [OutputSize]NeuronState
	var outW [OutputSize]Triple
	for i, n := range net.out {
		outW[i] = net.outTriple(i, in.Addr2)
		nextOut[i] = n.Next(prevHidden, outW[i])
	}

	// Hebbian updates read each neuron's spike output for this tick
	// before any weight commits.
	var nextHiddenW [HiddenSize]Triple
	var nextOutW [OutputSize]Triple
	if net.params.Mode == ModeHebbian {
		for i, b := range net.hiddenBanks {
			nextHiddenW[i] = b.Next(in.Inputs, nextHidden[i].Spike)
		}
		for i, b := range net.outBanks {
			nextOutW[i] = b.Next(prevHidden, nextOut[i].Spike)
		}
	}

	// Phase 2: commit everything simultaneously.
	out := TickOutput{}
	for i, n := range net.hidden {
		n.Commit(nextHidden[i])
		out.Hidden[i] = nextHidden[i].Spike
	}
	for i, n := range net.out {
		n.Commit(nextOut[i])
		out.Out[i] = nextOut[i].Spike
	}
	if net.params.Mode == ModeHebbian {
		for i, b := range net.hiddenBanks {
			b.Commit(nextHiddenW[i])
			out.HiddenWeights[i] = nextHiddenW[i]
		}
		for i, b := range net.outBanks {
			b.Commit(nextOutW[i])
			out.OutWeights[i] = nextOutW[i]
		}
	} else {
		out.HiddenWeights = hiddenW
		out.OutWeights = outW
	}
	return out
}

// observe reports the committed outputs and resolved weights without
// advancing state. Used for the reset tick.
func (net *Network) observe(in TickInput) TickOutput {
	out := TickOutput{}
	for i, n := range net.hidden {
		out.Hidden[i] = n.State().Spike
		out.HiddenWeights[i] = net.hiddenTriple(i, in.Addr1)
	}
	for i, n := range net.out {
		out.Out[i] = n.State().Spike
		out.OutWeights[i] = net.outTriple(i, in.Addr2)
	}
	return out
}

// Snapshot copies the full committed register state, including membrane
// potentials and refractory counters, for inspection.
func (net *Network) Snapshot() NetworkState {
	st := NetworkState{}
	for i, n := range net.hidden {
		st.Hidden[i] = n.State()
		if net.params.Mode == ModeHebbian {
			st.HiddenWeights[i] = net.hiddenBanks[i].Weights()
		}
	}
	for i, n := range net.out {
		st.Out[i] = n.State()
		if net.params.Mode == ModeHebbian {
			st.OutWeights[i] = net.outBanks[i].Weights()
		}
	}
	return st
}
