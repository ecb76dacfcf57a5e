package simulation

import "github.com/neurowire/lifnet/internal/lif"

// Scenario defines a complete simulation experiment.
type Scenario struct {
	Name string

	// Params configures the network. A zero Mode means ROM defaults.
	Params lif.NetworkParams

	// Ticks is the number of ticks issued after the initial reset tick.
	Ticks int

	// Addr1 and Addr2 are the per-layer ROM addresses for every tick.
	Addr1 int
	Addr2 int

	// InputAt, when non-nil, produces the input vector for each tick
	// index. Nil means all-zero input. It is called once per tick, in
	// tick order, so stateful generators work.
	InputAt func(tick int) [lif.FanIn]bool

	// ResetAt marks tick indices that are issued as reset ticks,
	// overriding the normal transition for that tick.
	ResetAt map[int]bool
}

// TickRecord captures one tick's stimulus, the registered outputs, and
// the full register snapshot after commit.
type TickRecord struct {
	Tick  int
	In    lif.TickInput
	Out   lif.TickOutput
	State lif.NetworkState
}

// Result captures a whole run.
type Result struct {
	Ticks []TickRecord

	// Final is the register snapshot after the last tick.
	Final lif.NetworkState
}
