package pe

import "github.com/sarchlab/akita/v4/sim"

// Builder constructs and wires a PE through a fluent chain of With*
// calls, deferring the actual build until every required field is set.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
}

// NewBuilder returns a Builder with no engine or frequency set.
func NewBuilder() Builder {
	return Builder{}
}

// WithEngine sets the simulation engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the PE's clock frequency.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// Build creates a PE ticked by the builder's engine and frequency.
func (b Builder) Build(name string) *PE {
	return New(name, b.engine, b.freq)
}
