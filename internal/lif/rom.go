package lif

// FanIn is the number of synapses on every neuron in the network: hidden
// neurons see the 3 external inputs, output neurons see the 3 hidden
// spikes.
const FanIn = 3

// Triple is one set of synaptic weights, indexed by synapse position.
type Triple [FanIn]uint8

// WeightROM is a fixed, read-only table mapping a small address to a
// preset weight triple. It is consulted by the network, never mutated,
// and is safe to share across simulation replicas without locking.
type WeightROM []Triple

// Lookup resolves an address to its weight triple. Lookup is total: any
// out-of-range address resolves to the all-zero triple by definition, not
// as an error.
func (r WeightROM) Lookup(addr int) Triple {
	if addr < 0 || addr >= len(r) {
		return Triple{}
	}
	return r[addr]
}

// DefaultROM returns the standard 8-entry table of 3-bit weight triples.
// Address 7 holds the uniform (2,2,2) triple used by the reference
// scenarios.
func DefaultROM() WeightROM {
	return WeightROM{
		{0, 0, 0},
		{1, 1, 1},
		{2, 1, 0},
		{0, 1, 2},
		{3, 2, 1},
		{1, 2, 3},
		{4, 4, 4},
		{2, 2, 2},
	}
}

// Rotate returns the cyclic permutation of a triple for the neuron at
// position i within a layer: neuron 0 sees (w0,w1,w2), neuron 1 sees
// (w1,w2,w0), neuron 2 sees (w2,w0,w1). One shared triple per layer thus
// yields response diversity across the layer's neurons.
func Rotate(w Triple, i int) Triple {
	var out Triple
	for j := 0; j < FanIn; j++ {
		out[j] = w[(i+j)%FanIn]
	}
	return out
}
