package pe

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/eyerissv2/kernel"
)

// PE is the Processing Element: three internal tasks
// (window generator, weight selector, MAC/accumulator) chained through
// depth-1 FIFOs, ticked together every cycle.
type PE struct {
	*sim.TickingComponent

	name string
	cfg  Config

	iactIn   *kernel.FIFO[IAct]
	weightIn *kernel.FIFO[Weight]
	psumIn   *kernel.FIFO[PSum]
	psumOut  *kernel.FIFO[PSum]

	f12       *kernel.FIFO[IAct]
	f23Act    *kernel.FIFO[IAct]
	f23Weight *kernel.FIFO[Weight]

	stage1 *stage1
	stage2 *stage2
	stage3 *stage3

	configured bool
}

// New creates a PE. Its external ports must be bound with BindIActIn,
// BindWeightIn, BindPSumOut, and (only if its eventual Config sets
// PSumAccIn) BindPSumIn, before SetConfig is called.
func New(name string, engine sim.Engine, freq sim.Freq) *PE {
	p := &PE{name: name}
	p.TickingComponent = sim.NewTickingComponent(name, engine, freq, p)

	p.f12 = kernel.NewFIFO[IAct](name+".F12", 1)
	p.f23Act = kernel.NewFIFO[IAct](name+".F23Act", 1)
	p.f23Weight = kernel.NewFIFO[Weight](name+".F23Weight", 1)

	return p
}

// BindIActIn connects the iact propagation fifo this PE reads from.
func (p *PE) BindIActIn(f *kernel.FIFO[IAct]) { p.iactIn = f }

// BindWeightIn connects the weight propagation fifo this PE reads from.
func (p *PE) BindWeightIn(f *kernel.FIFO[Weight]) { p.weightIn = f }

// BindPSumIn connects the upstream psum fifo, required only when this
// PE's Config has PSumAccIn set.
func (p *PE) BindPSumIn(f *kernel.FIFO[PSum]) { p.psumIn = f }

// BindPSumOut connects the psum fifo this PE emits into.
func (p *PE) BindPSumOut(f *kernel.FIFO[PSum]) { p.psumOut = f }

// SetConfig validates cfg and wires up the three internal stages. It
// panics with a *kernel.ConfigError on an invalid kernel size, and a
// plain error if required ports are unbound.
func (p *PE) SetConfig(cfg Config) {
	if !cfg.Valid() {
		panic(&kernel.ConfigError{Module: p.name, Reason: "kernel_w and kernel_h must both be > 0"})
	}
	if p.iactIn == nil || p.weightIn == nil || p.psumOut == nil {
		panic(fmt.Sprintf("%s: iact/weight/psum_out ports unbound before set_config", p.name))
	}
	if cfg.PSumAccIn && p.psumIn == nil {
		panic(fmt.Sprintf("%s: psum_acc_in set but psum_in unbound", p.name))
	}

	p.cfg = cfg
	p.stage1 = newStage1(cfg.KernelW, p.iactIn, p.f12)
	p.stage2 = newStage2(cfg.KernelW, p.f12, p.weightIn, p.f23Act, p.f23Weight)
	p.stage3 = newStage3(cfg.KernelW, cfg.PSumAccIn, p.f23Act, p.f23Weight, p.psumIn, p.psumOut)
	p.configured = true
}

// Tick runs the window generator, weight selector, and MAC/accumulator
// once each, in pipeline order.
func (p *PE) Tick(_ sim.VTimeInSec) (madeProgress bool) {
	if !p.configured {
		return false
	}

	if p.stage1.Tick() {
		madeProgress = true
	}
	if p.stage2.Tick() {
		madeProgress = true
	}
	if p.stage3.Tick() {
		madeProgress = true
	}

	return madeProgress
}

// BlockedProbes exposes this PE's internal queues for deadlock
// diagnostics: a PE that is neither draining its input nor filling its
// output is stuck somewhere in its pipeline.
func (p *PE) BlockedProbes() []kernel.BlockedProbe {
	return []kernel.BlockedProbe{&peProbe{pe: p}}
}

type peProbe struct{ pe *PE }

func (pp *peProbe) Name() string { return pp.pe.name }

func (pp *peProbe) Blocked() (bool, string) {
	p := pp.pe
	if !p.configured {
		return true, "unconfigured"
	}
	if p.iactIn.CanRead() && !p.f12.CanWrite() {
		return true, "F12 full"
	}
	if p.f23Act.CanRead() && !p.psumOut.CanWrite() {
		return true, "psum_out full"
	}
	return false, ""
}
