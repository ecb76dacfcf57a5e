package lif

import "testing"

func newBank(t *testing.T, mut func(*HebbianParams)) *SynapseBank {
	t.Helper()
	var p HebbianParams
	p.Defaults()
	if mut != nil {
		mut(&p)
	}
	b, err := NewSynapseBank(p)
	if err != nil {
		t.Fatalf("NewSynapseBank: %v", err)
	}
	return b
}

func TestSynapseBank_SeedsOnReset(t *testing.T) {
	b := newBank(t, nil)
	if b.Weights() != (Triple{10, 10, 10}) {
		t.Fatalf("weights = %v, want seed (10,10,10)", b.Weights())
	}

	b.Commit(Triple{100, 0, 42})
	b.Reset()
	if b.Weights() != (Triple{10, 10, 10}) {
		t.Fatalf("weights after reset = %v, want (10,10,10)", b.Weights())
	}
}

func TestSynapseBank_CoincidenceIncrementsOnlyActiveInput(t *testing.T) {
	// DecayShift=3 so the decay term is visible: decay(10) = 10>>3 = 1.
	b := newBank(t, func(p *HebbianParams) { p.DecayShift = 3 })

	w := b.Next([FanIn]bool{true, false, false}, true)
	if w[0] != 10+2-1 {
		t.Errorf("w0 = %d, want %d (seed + eta - decay)", w[0], 10+2-1)
	}
	for i := 1; i < FanIn; i++ {
		if w[i] != 10-1 {
			t.Errorf("w%d = %d, want %d (decay only)", i, w[i], 10-1)
		}
	}
}

func TestSynapseBank_NoIncrementWithoutSpike(t *testing.T) {
	b := newBank(t, func(p *HebbianParams) { p.DecayShift = 3 })

	w := b.Next([FanIn]bool{true, true, true}, false)
	for i, v := range w {
		if v != 9 {
			t.Errorf("w%d = %d, want 9 (decay only, no coincidence)", i, v)
		}
	}
}

func TestSynapseBank_MonotonicUntilClamp(t *testing.T) {
	// With Eta=2 and DecayShift=7 the decay per tick (at most 255>>7 = 1)
	// stays below eta, so a synapse whose input coincides with every
	// spike is non-decreasing all the way to the clamp.
	b := newBank(t, nil)
	in := [FanIn]bool{true, false, false}

	prev := b.Weights()[0]
	reached := false
	for i := 0; i < 400; i++ {
		b.Commit(b.Next(in, true))
		w := b.Weights()[0]
		if w < prev {
			t.Fatalf("tick %d: w0 decreased %d -> %d before clamp", i, prev, w)
		}
		if w > b.Params().MaxWeight {
			t.Fatalf("tick %d: w0 = %d exceeds MaxWeight %d", i, w, b.Params().MaxWeight)
		}
		if w == b.Params().MaxWeight {
			reached = true
		}
		prev = w
	}
	if !reached {
		t.Fatalf("w0 never reached MaxWeight, final %d", prev)
	}
	if b.Weights()[0] != b.Params().MaxWeight {
		t.Fatalf("w0 = %d after clamp, want to stay at %d", b.Weights()[0], b.Params().MaxWeight)
	}
}

func TestSynapseBank_ClampHoldsAtSmallerMax(t *testing.T) {
	b := newBank(t, func(p *HebbianParams) { p.MaxWeight = 100 })
	in := [FanIn]bool{true, false, false}

	for i := 0; i < 200; i++ {
		b.Commit(b.Next(in, true))
		if w := b.Weights()[0]; w > 100 {
			t.Fatalf("tick %d: w0 = %d exceeds clamp 100", i, w)
		}
	}
	if b.Weights()[0] != 100 {
		t.Fatalf("w0 = %d, want clamped at 100", b.Weights()[0])
	}
}

func TestSynapseBank_DecayOnlyReachesZero(t *testing.T) {
	// DecayShift=0 makes the decay term equal the whole pre-update
	// weight, so an unused synapse floors at zero immediately and stays.
	b := newBank(t, func(p *HebbianParams) { p.DecayShift = 0 })

	for i := 0; i < 10; i++ {
		b.Commit(b.Next([FanIn]bool{}, false))
		for j, w := range b.Weights() {
			if w != 0 {
				t.Fatalf("tick %d: w%d = %d, want 0", i, j, w)
			}
		}
	}
}

func TestSynapseBank_DecayIsNonIncreasing(t *testing.T) {
	b := newBank(t, func(p *HebbianParams) { p.DecayShift = 2; p.Seed = 200 })

	prev := b.Weights()
	for i := 0; i < 100; i++ {
		b.Commit(b.Next([FanIn]bool{}, false))
		for j, w := range b.Weights() {
			if w > prev[j] {
				t.Fatalf("tick %d: w%d increased %d -> %d with no coincidence", i, j, prev[j], w)
			}
		}
		prev = b.Weights()
	}
}

func TestSynapseBank_IntermediateWidthDoesNotWrap(t *testing.T) {
	// Adding eta at the clamp rail must saturate, never wrap an 8-bit
	// register.
	b := newBank(t, func(p *HebbianParams) { p.Eta = 255; p.Seed = 255 })

	w := b.Next([FanIn]bool{true, true, true}, true)
	for i, v := range w {
		if v != 255 {
			t.Errorf("w%d = %d, want saturated 255", i, v)
		}
	}
}

func TestHebbianParams_Validate(t *testing.T) {
	mk := func(mut func(*HebbianParams)) HebbianParams {
		var p HebbianParams
		p.Defaults()
		mut(&p)
		return p
	}

	cases := []struct {
		name    string
		params  HebbianParams
		wantErr bool
	}{
		{"defaults", mk(func(p *HebbianParams) {}), false},
		{"zero eta", mk(func(p *HebbianParams) { p.Eta = 0 }), true},
		{"seed above max", mk(func(p *HebbianParams) { p.MaxWeight = 5 }), true},
		{"zero max weight", mk(func(p *HebbianParams) { p.MaxWeight = 0; p.Seed = 0 }), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.params.Validate()
			if c.wantErr && err == nil {
				t.Errorf("Validate() = nil, want error")
			}
			if !c.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}
