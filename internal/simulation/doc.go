// Package simulation provides a scenario harness for driving the lif core
// over many ticks in tests. A Scenario declares the network parameters,
// the stimulus, and the reset schedule; the Runner executes it against a
// real network and records every tick's inputs, outputs, and register
// snapshot so assertions can check whole-run properties like bounds
// invariance, determinism, and learning trajectories.
package simulation
