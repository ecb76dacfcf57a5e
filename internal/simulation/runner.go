package simulation

import (
	"testing"

	"github.com/neurowire/lifnet/internal/lif"
)

// Runner executes scenarios against a real network.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run executes the scenario and returns the collected results. The run
// always starts with a reset tick (not counted in Scenario.Ticks).
func (r *Runner) Run(s Scenario) Result {
	r.t.Helper()

	params := s.Params
	if params.Mode == "" {
		params.Defaults()
	}
	net, err := lif.NewNetwork(params)
	if err != nil {
		r.t.Fatalf("Run(%s): NewNetwork: %v", s.Name, err)
	}

	net.Tick(lif.TickInput{Reset: true, Addr1: s.Addr1, Addr2: s.Addr2})

	result := Result{Ticks: make([]TickRecord, 0, s.Ticks)}
	for i := 0; i < s.Ticks; i++ {
		in := lif.TickInput{Addr1: s.Addr1, Addr2: s.Addr2}
		if s.ResetAt[i] {
			in.Reset = true
		} else if s.InputAt != nil {
			in.Inputs = s.InputAt(i)
		}
		out := net.Tick(in)
		result.Ticks = append(result.Ticks, TickRecord{
			Tick:  i,
			In:    in,
			Out:   out,
			State: net.Snapshot(),
		})
	}
	result.Final = net.Snapshot()
	return result
}
