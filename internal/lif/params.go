// Package lif implements a discrete-time simulation core for small
// feed-forward networks of leaky-integrate-and-fire spiking neurons.
//
// All state lives in fixed-width unsigned integers and advances under a
// single global tick with two-phase (compute-then-commit) semantics: every
// component computes its next state from the previously committed state,
// and all next states become visible simultaneously. No component ever
// observes a same-tick update of another component.
package lif

import "fmt"

// NeuronParams is the construction-time configuration for a single LIF
// neuron. The same state machine covers both source variants: set
// HasRefractory to enable the post-spike dead time, leave it false for the
// plain clip-at-rest model.
type NeuronParams struct {
	// PotentialWidth is the bit width of the membrane potential register.
	// The potential is clamped to [0, 2^PotentialWidth-1]; it never wraps.
	PotentialWidth int `yaml:"potential_width"`

	// WeightWidth is the bit width of each synaptic weight (3 for ROM
	// weights, 8 for Hebbian weights).
	WeightWidth int `yaml:"weight_width"`

	// VRest is the resting potential, also the post-spike reset value.
	VRest uint16 `yaml:"v_rest"`

	// VLeak is the amount subtracted from the potential every tick.
	VLeak uint16 `yaml:"v_leak"`

	// VThresh is the firing threshold. A tentative potential >= VThresh
	// emits a spike and resets to VRest.
	VThresh uint16 `yaml:"v_thresh"`

	// KSyn is the synaptic gain multiplying the weighted input sum.
	KSyn uint16 `yaml:"k_syn"`

	// HasRefractory enables the refractory branch: after a spike the
	// neuron ignores input for RefractoryCycles ticks.
	HasRefractory bool `yaml:"has_refractory"`

	// RefractoryCycles is the number of ticks the neuron stays silent
	// after firing. Only meaningful when HasRefractory is set.
	RefractoryCycles uint8 `yaml:"refractory_cycles"`

	// RefracWidth is the bit width of the refractory counter. Zero means
	// derive the minimum width that holds RefractoryCycles. A non-zero
	// width too narrow for RefractoryCycles is a construction error,
	// never a silent truncation.
	RefracWidth int `yaml:"refrac_width"`
}

// Defaults sets the small-weight ROM variant parameters: 5-bit potential,
// 3-bit weights, rest 6, leak 1, threshold 14, unit gain, no refractory.
func (p *NeuronParams) Defaults() {
	p.PotentialWidth = 5
	p.WeightWidth = 3
	p.VRest = 6
	p.VLeak = 1
	p.VThresh = 14
	p.KSyn = 1
	p.HasRefractory = false
	p.RefractoryCycles = 0
	p.RefracWidth = 0
}

// PotentialMax returns the upper clamp rail for the membrane potential.
func (p *NeuronParams) PotentialMax() uint16 {
	return uint16(1<<p.PotentialWidth) - 1
}

// WeightMax returns the largest value representable at WeightWidth.
func (p *NeuronParams) WeightMax() uint8 {
	return uint8(1<<p.WeightWidth) - 1
}

// refracWidth returns the effective refractory counter width, deriving the
// minimum width when RefracWidth is zero.
func (p *NeuronParams) refracWidth() int {
	if p.RefracWidth != 0 {
		return p.RefracWidth
	}
	w := 0
	for v := uint(p.RefractoryCycles); v != 0; v >>= 1 {
		w++
	}
	if w == 0 {
		w = 1
	}
	return w
}

// Validate rejects configurations whose declared bit widths cannot hold
// their parameters. Truncating silently here produced divergent behavior
// across the hardware variants this model descends from, so every check
// fails fast at construction.
func (p *NeuronParams) Validate() error {
	if p.PotentialWidth < 1 || p.PotentialWidth > 16 {
		return fmt.Errorf("potential_width %d out of range [1,16]", p.PotentialWidth)
	}
	if p.WeightWidth < 1 || p.WeightWidth > 8 {
		return fmt.Errorf("weight_width %d out of range [1,8]", p.WeightWidth)
	}
	if p.KSyn < 1 {
		return fmt.Errorf("k_syn must be >= 1, got %d", p.KSyn)
	}
	max := p.PotentialMax()
	if p.VRest > max {
		return fmt.Errorf("v_rest %d does not fit potential_width %d (max %d)", p.VRest, p.PotentialWidth, max)
	}
	if p.VLeak > max {
		return fmt.Errorf("v_leak %d does not fit potential_width %d (max %d)", p.VLeak, p.PotentialWidth, max)
	}
	if p.VThresh > max {
		return fmt.Errorf("v_thresh %d does not fit potential_width %d (max %d)", p.VThresh, p.PotentialWidth, max)
	}
	if p.HasRefractory {
		if p.RefracWidth < 0 || p.RefracWidth > 8 {
			return fmt.Errorf("refrac_width %d out of range [0,8]", p.RefracWidth)
		}
		if rw := p.refracWidth(); int(p.RefractoryCycles) > (1<<rw)-1 {
			return fmt.Errorf("refractory_cycles %d does not fit refrac_width %d (max %d)",
				p.RefractoryCycles, rw, (1<<rw)-1)
		}
	}
	return nil
}

// HebbianParams is the construction-time configuration for a plastic
// synapse bank.
type HebbianParams struct {
	// Eta is the weight increment applied on input/output coincidence.
	Eta uint8 `yaml:"eta"`

	// DecayShift controls passive decay: every tick each weight loses
	// weight >> DecayShift, computed from the pre-update value.
	DecayShift uint8 `yaml:"decay_shift"`

	// MaxWeight is the upper clamp rail for every weight.
	MaxWeight uint8 `yaml:"max_weight"`

	// Seed is the reset value for all weights. It is nonzero so learning
	// starts from a non-degenerate baseline.
	Seed uint8 `yaml:"seed"`
}

// Defaults sets the 8-bit Hebbian variant parameters. With Eta=2 and
// DecayShift=7 the per-tick decay stays below Eta across the whole weight
// range, so a synapse whose input tracks the output spike train can reach
// the clamp.
func (p *HebbianParams) Defaults() {
	p.Eta = 2
	p.DecayShift = 7
	p.MaxWeight = 255
	p.Seed = 10
}

// Validate rejects parameter sets the 8-bit weight registers cannot
// represent.
func (p *HebbianParams) Validate() error {
	if p.Eta < 1 {
		return fmt.Errorf("eta must be >= 1, got %d", p.Eta)
	}
	if p.DecayShift > 15 {
		return fmt.Errorf("decay_shift %d out of range [0,15]", p.DecayShift)
	}
	if p.MaxWeight < 1 {
		return fmt.Errorf("max_weight must be >= 1, got %d", p.MaxWeight)
	}
	if p.Seed < 1 {
		return fmt.Errorf("seed must be nonzero so learning starts from a non-degenerate baseline")
	}
	if p.Seed > p.MaxWeight {
		return fmt.Errorf("seed %d exceeds max_weight %d", p.Seed, p.MaxWeight)
	}
	return nil
}
