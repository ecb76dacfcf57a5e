// Package stimulus generates per-tick input-spike vectors for the
// simulation driver. Generators are deterministic: the random generator
// runs from an explicit seed, so a run can always be reproduced.
package stimulus

import (
	"fmt"
	"math/rand"

	"github.com/neurowire/lifnet/internal/config"
	"github.com/neurowire/lifnet/internal/lif"
)

// Generator produces the layer-0 input vector for a tick. Next is called
// once per tick, in tick order.
type Generator interface {
	Next() [lif.FanIn]bool
}

// Constant drives the same input vector every tick.
type Constant [lif.FanIn]bool

// Next returns the fixed vector.
func (c Constant) Next() [lif.FanIn]bool {
	return [lif.FanIn]bool(c)
}

// Pulse drives its bit pattern once every Period ticks and zeros in
// between.
type Pulse struct {
	Bits   [lif.FanIn]bool
	Period int

	tick int
}

// Next returns the pattern on pulse ticks, the zero vector otherwise.
func (p *Pulse) Next() [lif.FanIn]bool {
	fire := p.Period > 0 && p.tick%p.Period == 0
	p.tick++
	if !fire {
		return [lif.FanIn]bool{}
	}
	return p.Bits
}

// Random drives each input line independently with a fixed per-tick
// probability, from a seeded PRNG.
type Random struct {
	rng *rand.Rand
	p   float64
}

// NewRandom returns a random generator with the given seed and per-line
// firing probability.
func NewRandom(seed int64, p float64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed)), p: p}
}

// Next draws a fresh input vector.
func (r *Random) Next() [lif.FanIn]bool {
	var out [lif.FanIn]bool
	for i := range out {
		out[i] = r.rng.Float64() < r.p
	}
	return out
}

// ParseBits parses a pattern like "101" into an input vector, most
// significant line first.
func ParseBits(s string) ([lif.FanIn]bool, error) {
	var out [lif.FanIn]bool
	if len(s) != lif.FanIn {
		return out, fmt.Errorf("bit pattern %q must have exactly %d characters", s, lif.FanIn)
	}
	for i, c := range s {
		switch c {
		case '0':
		case '1':
			out[i] = true
		default:
			return out, fmt.Errorf("bit pattern %q contains %q, want only 0 and 1", s, c)
		}
	}
	return out, nil
}

// FromConfig builds the generator selected by a stimulus configuration.
func FromConfig(cfg config.StimulusConfig) (Generator, error) {
	switch cfg.Kind {
	case "", "constant":
		bits, err := ParseBits(orZeros(cfg.Bits))
		if err != nil {
			return nil, err
		}
		return Constant(bits), nil
	case "pulse":
		bits, err := ParseBits(orZeros(cfg.Bits))
		if err != nil {
			return nil, err
		}
		period := cfg.Period
		if period <= 0 {
			period = 2
		}
		return &Pulse{Bits: bits, Period: period}, nil
	case "random":
		return NewRandom(cfg.Seed, cfg.Probability), nil
	default:
		return nil, fmt.Errorf("unknown stimulus kind %q", cfg.Kind)
	}
}

func orZeros(bits string) string {
	if bits == "" {
		return "000"
	}
	return bits
}
