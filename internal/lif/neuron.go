package lif

// NeuronState is one neuron's complete register set. Spike is the output
// for exactly one tick: it reflects a threshold crossing decided on the
// previous tick's potential and this tick's inputs, and is deasserted on
// the next tick unless the neuron refires.
type NeuronState struct {
	// V is the membrane potential, clamped to the configured width.
	V uint16

	// Refrac counts down the remaining refractory ticks. The neuron
	// integrates and may fire exactly when Refrac is zero.
	Refrac uint8

	// Spike is the registered spike output for this tick.
	Spike bool
}

// Neuron is a single LIF unit. It exposes the two-phase discipline
// directly: Next computes the successor state from the committed state
// without mutating anything, and Commit publishes it. The network calls
// Next on every neuron before committing any of them, so no neuron ever
// reads another's same-tick output.
type Neuron struct {
	params NeuronParams
	state  NeuronState
}

// NewNeuron validates the parameters and returns a neuron in its reset
// state.
func NewNeuron(params NeuronParams) (*Neuron, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	n := &Neuron{params: params}
	n.Reset()
	return n, nil
}

// Params returns the construction-time configuration.
func (n *Neuron) Params() NeuronParams {
	return n.params
}

// State returns the committed state, i.e. the values observable by other
// components this tick.
func (n *Neuron) State() NeuronState {
	return n.state
}

// Reset forces the defined initial state: V at rest, no spike, counter
// clear. Reset is idempotent.
func (n *Neuron) Reset() {
	n.state = NeuronState{V: n.params.VRest}
}

// Next computes the state the neuron will hold after this tick, given the
// current input vector and the weight triple resolved for this neuron.
// The committed state is not modified.
//
// The arithmetic is total: sums are evaluated at full int width and the
// result is clamped to the declared potential width, so no input in range
// can wrap a register.
func (n *Neuron) Next(in [FanIn]bool, w Triple) NeuronState {
	cur := n.state

	if n.params.HasRefractory && cur.Refrac != 0 {
		return NeuronState{V: cur.V, Refrac: cur.Refrac - 1}
	}

	sum := 0
	for i := 0; i < FanIn; i++ {
		if in[i] {
			sum += int(n.params.KSyn) * int(w[i])
		}
	}

	var v int
	if n.params.HasRefractory {
		// Underflow floors on the input current alone rather than
		// going negative.
		if int(cur.V) <= int(n.params.VLeak) {
			v = sum
		} else {
			v = int(cur.V) + sum - int(n.params.VLeak)
		}
	} else {
		// Plain variant clips at the resting potential.
		v = int(cur.V) + sum - int(n.params.VLeak)
		if v < int(n.params.VRest) {
			v = int(n.params.VRest)
		}
	}
	if max := int(n.params.PotentialMax()); v > max {
		v = max
	}

	if v >= int(n.params.VThresh) {
		next := NeuronState{V: n.params.VRest, Spike: true}
		if n.params.HasRefractory {
			next.Refrac = n.params.RefractoryCycles
		}
		return next
	}
	return NeuronState{V: uint16(v)}
}

// Commit publishes a state computed by Next, making it the externally
// visible state from the start of the following tick.
func (n *Neuron) Commit(s NeuronState) {
	n.state = s
}

// Tick performs Next and Commit in one step. It is a convenience for
// driving a neuron in isolation; the network always separates the two
// phases across all neurons.
func (n *Neuron) Tick(in [FanIn]bool, w Triple) NeuronState {
	s := n.Next(in, w)
	n.Commit(s)
	return s
}
