package lif

// SynapseBank holds one neuron's triple of plastic 8-bit weights. Each
// tick every weight updates independently from the coincidence of its own
// input line with the owning neuron's spike output for that tick:
//
//	candidate  = weight + eta        if input AND spike, else weight
//	decay      = weight >> decayShift  (pre-update weight)
//	new weight = clamp(max(candidate - decay, 0), maxWeight)
//
// Intermediate sums run one step wider than the weight registers (uint16
// over uint8), so adding eta at the clamp rail cannot wrap; the final
// store clamps back to the weight range.
type SynapseBank struct {
	params  HebbianParams
	weights Triple
}

// NewSynapseBank validates the parameters and returns a bank holding the
// seed weights.
func NewSynapseBank(params HebbianParams) (*SynapseBank, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	b := &SynapseBank{params: params}
	b.Reset()
	return b, nil
}

// Params returns the construction-time configuration.
func (b *SynapseBank) Params() HebbianParams {
	return b.params
}

// Weights returns the committed weight triple.
func (b *SynapseBank) Weights() Triple {
	return b.weights
}

// Reset loads the seed value into all three weights.
func (b *SynapseBank) Reset() {
	for i := range b.weights {
		b.weights[i] = b.params.Seed
	}
}

// Next computes the post-update weight triple from the committed weights,
// the current tick's input vector, and the owning neuron's spike output
// for this tick. The committed weights are not modified.
func (b *SynapseBank) Next(in [FanIn]bool, spike bool) Triple {
	var out Triple
	for i := 0; i < FanIn; i++ {
		cand := uint16(b.weights[i])
		if in[i] && spike {
			cand += uint16(b.params.Eta)
		}
		decay := uint16(b.weights[i] >> b.params.DecayShift)

		var w uint16
		if cand > decay {
			w = cand - decay
		}
		if w > uint16(b.params.MaxWeight) {
			w = uint16(b.params.MaxWeight)
		}
		out[i] = uint8(w)
	}
	return out
}

// Commit publishes a weight triple computed by Next.
func (b *SynapseBank) Commit(w Triple) {
	b.weights = w
}
