package cluster

import "github.com/sarchlab/akita/v4/sim"

// Builder constructs and wires a Cluster through a fluent chain of
// With* calls, deferring the actual build until every required field
// is set.
type Builder struct {
	engine    sim.Engine
	freq      sim.Freq
	peRows    int
	peCols    int
	iactBanks int
}

// NewBuilder returns a Builder with no engine, frequency, or topology
// set.
func NewBuilder() Builder {
	return Builder{}
}

// WithEngine sets the simulation engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the cluster's clock frequency.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithPERows sets the number of PE rows in the grid.
func (b Builder) WithPERows(peRows int) Builder {
	b.peRows = peRows
	return b
}

// WithPECols sets the number of PE columns in the grid.
func (b Builder) WithPECols(peCols int) Builder {
	b.peCols = peCols
	return b
}

// WithIActBanks sets the number of iact banks feeding the grid.
func (b Builder) WithIActBanks(iactBanks int) Builder {
	b.iactBanks = iactBanks
	return b
}

// Build creates a Cluster ticked by the builder's engine and
// frequency, with the builder's PE grid topology. SetConfig and the
// Bind* methods must still be called on the result before the engine
// starts ticking it.
func (b Builder) Build(name string) *Cluster {
	return New(name, b.engine, b.freq, b.peRows, b.peCols, b.iactBanks)
}
