// Package router implements the 6-port multicast router:
// one independent task per input port, each replicating one input token to
// all enabled output ports.
package router

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/eyerissv2/kernel"
	"github.com/sarchlab/eyerissv2/mcast"
)

// Config is the router's routing matrix: a 6×6 MulticastConfig over the
// {N, E, S, W, GLB, PE} ports.
type Config = mcast.Config

// NewConfig builds an empty 6×6 router configuration.
func NewConfig() Config {
	return mcast.New(NumDirections, NumDirections)
}

type portState int

const (
	portIdle portState = iota
	portLatency
	portForward
)

// srcPort is one input port's independent forwarding task: states
// {Idle→Latency→Forward[dst_k]→Idle}. It never
// terminates; Tick re-enters wherever it left off.
type srcPort[T any] struct {
	router *Router[T]
	dir    Direction

	state     portState
	remaining int // crossbar latency cycles left
	nextDst   int // next destination to consider, in enum order
	token     T
}

// Tick advances this port's state machine by one cycle, returning whether
// it made progress.
func (p *srcPort[T]) Tick() bool {
	switch p.state {
	case portIdle:
		v, ok := p.router.in[p.dir].TryRead()
		if !ok {
			return false
		}
		p.token = v
		p.remaining = 1 // one cycle of crossbar latency, the forward()'s wait(1)
		p.state = portLatency
		return true

	case portLatency:
		p.remaining--
		if p.remaining > 0 {
			return true
		}
		p.nextDst = 0
		p.state = portForward
		return true

	case portForward:
		progressed := false
		for p.nextDst < NumDirections {
			if !p.router.cfg.Path(int(p.dir), p.nextDst) {
				p.nextDst++
				continue
			}
			if !p.router.out[p.nextDst].TryWrite(p.token) {
				// Stalls only this source port; others remain free to
				// forward independent traffic 
				return progressed
			}
			kernel.Trace("router: forwarded token", "src", p.dir.String(), "dst", Direction(p.nextDst).String())
			progressed = true
			p.nextDst++
		}
		p.state = portIdle
		return true
	}

	return false
}

// Name identifies this port for deadlock diagnostics.
func (p *srcPort[T]) Name() string {
	return fmt.Sprintf("%s.in[%s]", p.router.name, p.dir)
}

// Blocked implements kernel.BlockedProbe.
func (p *srcPort[T]) Blocked() (bool, string) {
	switch p.state {
	case portForward:
		return true, fmt.Sprintf("out[%s]", Direction(p.nextDst))
	case portIdle:
		return true, fmt.Sprintf("in[%s]", p.dir)
	default:
		return false, ""
	}
}

// Router is the 6-port multicast switch of the multicast forwarding task, generic over the
// token type T it carries (weights, iacts, or psums in this fabric; the
// reference model is itself a C++ template over DataType).
type Router[T any] struct {
	*sim.TickingComponent

	name string
	in   [NumDirections]*kernel.FIFO[T]
	out  [NumDirections]*kernel.FIFO[T]
	cfg  Config

	ports      [NumDirections]*srcPort[T]
	configured bool
}

// New creates a router. Input and output FIFOs must be bound with BindIn
// and BindOut, and a configuration installed with SetConfig, before the
// engine starts ticking it.
func New[T any](name string, engine sim.Engine, freq sim.Freq) *Router[T] {
	r := &Router[T]{name: name}
	r.TickingComponent = sim.NewTickingComponent(name, engine, freq, r)

	for d := 0; d < NumDirections; d++ {
		r.ports[d] = &srcPort[T]{router: r, dir: Direction(d)}
	}

	return r
}

// BindIn connects dir's input FIFO.
func (r *Router[T]) BindIn(dir Direction, f *kernel.FIFO[T]) {
	r.in[dir] = f
}

// BindOut connects dir's output FIFO.
func (r *Router[T]) BindOut(dir Direction, f *kernel.FIFO[T]) {
	r.out[dir] = f
}

// SetConfig validates and installs the routing matrix. It panics with a
// *kernel.ConfigError if the matrix is invalid (the error taxonomy, ConfigInvalid),
// and panics with a plain error if any port is unbound (PortUnbound).
func (r *Router[T]) SetConfig(cfg Config) {
	if cfg.Srcs() != NumDirections || cfg.Dsts() != NumDirections {
		panic(&kernel.ConfigError{Module: r.name, Reason: "routing matrix must be 6x6"})
	}
	if !cfg.Valid() {
		panic(&kernel.ConfigError{Module: r.name, Reason: "more than one source drives the same destination"})
	}

	for d := 0; d < NumDirections; d++ {
		if r.in[d] == nil || r.out[d] == nil {
			panic(fmt.Sprintf("%s: port %s unbound before set_config", r.name, Direction(d)))
		}
	}

	r.cfg = cfg
	r.configured = true

	kernel.Trace("router: configuration installed", "router", r.name)
	kernel.Trace("router: routing matrix\n" + r.cfg.Print())
}

// Tick runs every input port's forwarding task once, in fixed direction
// order, and reports whether any of them made progress.
func (r *Router[T]) Tick(_ sim.VTimeInSec) (madeProgress bool) {
	if !r.configured {
		return false
	}

	for d := 0; d < NumDirections; d++ {
		if r.ports[d].Tick() {
			madeProgress = true
		}
	}

	return madeProgress
}

// BlockedProbes exposes each port's deadlock probe, for wiring into a
// kernel.DeadlockMonitor.
func (r *Router[T]) BlockedProbes() []kernel.BlockedProbe {
	probes := make([]kernel.BlockedProbe, NumDirections)
	for d := 0; d < NumDirections; d++ {
		probes[d] = r.ports[d]
	}
	return probes
}
