package cluster

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/eyerissv2/kernel"
	"github.com/sarchlab/eyerissv2/pe"
)

// Cluster is the PE cluster of the systolic fabric.
type Cluster struct {
	*sim.TickingComponent

	name           string
	peRows, peCols int
	iactBanks      int

	grid        [][]*pe.PE
	iactFifos   [][]*kernel.FIFO[pe.IAct]
	weightFifos [][]*kernel.FIFO[pe.Weight]
	psumFifos   [][]*kernel.FIFO[pe.PSum] // [peRows-1][peCols]

	iactIn   []*kernel.FIFO[pe.IAct]
	weightIn []*kernel.FIFO[pe.Weight]
	psumIn   []*kernel.FIFO[pe.PSum]
	psumOut  []*kernel.FIFO[pe.PSum]

	iactTasks   []*iactBankTask
	weightTasks []*weightRowTask

	cfg        Config
	configured bool
}

// New builds a cluster's fixed topology: the PERows×PECols PE grid, the
// internal iact/weight/psum FIFOs, and the boundary ports. A routing and
// datapath Config must still be installed with SetConfig, and the
// boundary ports bound with BindIActIn/BindWeightIn/BindPSumIn/
// BindPSumOut, before the engine starts ticking it.
func New(name string, engine sim.Engine, freq sim.Freq, peRows, peCols, iactBanks int) *Cluster {
	if peRows < 1 || peCols < 1 || iactBanks < 1 {
		panic(fmt.Sprintf("%s: peRows, peCols, and iactBanks must all be >= 1", name))
	}

	c := &Cluster{
		name:      name,
		peRows:    peRows,
		peCols:    peCols,
		iactBanks: iactBanks,
	}
	c.TickingComponent = sim.NewTickingComponent(name, engine, freq, c)

	c.grid = make([][]*pe.PE, peRows)
	c.iactFifos = make([][]*kernel.FIFO[pe.IAct], peRows)
	c.weightFifos = make([][]*kernel.FIFO[pe.Weight], peRows)
	for row := peRows - 1; row >= 0; row-- {
		c.grid[row] = make([]*pe.PE, peCols)
		c.iactFifos[row] = make([]*kernel.FIFO[pe.IAct], peCols)
		c.weightFifos[row] = make([]*kernel.FIFO[pe.Weight], peCols)
		for col := 0; col < peCols; col++ {
			peName := fmt.Sprintf("%s.PE[%d][%d]", name, row, col)
			c.grid[row][col] = pe.New(peName, engine, freq)
			c.iactFifos[row][col] = kernel.NewFIFO[pe.IAct](peName+".iact_in", 1)
			c.weightFifos[row][col] = kernel.NewFIFO[pe.Weight](peName+".weight_in", 1)
		}
	}

	if peRows > 1 {
		c.psumFifos = make([][]*kernel.FIFO[pe.PSum], peRows-1)
		for row := 0; row < peRows-1; row++ {
			c.psumFifos[row] = make([]*kernel.FIFO[pe.PSum], peCols)
			for col := 0; col < peCols; col++ {
				c.psumFifos[row][col] = kernel.NewFIFO[pe.PSum](fmt.Sprintf("%s.psum[%d][%d]", name, row, col), 1)
			}
		}
	}

	c.iactIn = make([]*kernel.FIFO[pe.IAct], iactBanks)
	c.weightIn = make([]*kernel.FIFO[pe.Weight], peRows)
	c.psumIn = make([]*kernel.FIFO[pe.PSum], peCols)
	c.psumOut = make([]*kernel.FIFO[pe.PSum], peCols)

	c.iactTasks = make([]*iactBankTask, iactBanks)
	for bank := 0; bank < iactBanks; bank++ {
		c.iactTasks[bank] = &iactBankTask{c: c, bank: bank}
	}
	c.weightTasks = make([]*weightRowTask, peRows)
	for row := 0; row < peRows; row++ {
		c.weightTasks[row] = &weightRowTask{c: c, row: row}
	}

	for row := 0; row < peRows; row++ {
		for col := 0; col < peCols; col++ {
			p := c.grid[row][col]
			p.BindIActIn(c.iactFifos[row][col])
			p.BindWeightIn(c.weightFifos[row][col])
			if row < peRows-1 {
				p.BindPSumIn(c.psumFifos[row][col])
			}
			if row > 0 {
				p.BindPSumOut(c.psumFifos[row-1][col])
			}
		}
	}

	return c
}

// BindIActIn connects bank's external iact input.
func (c *Cluster) BindIActIn(bank int, f *kernel.FIFO[pe.IAct]) { c.iactIn[bank] = f }

// BindWeightIn connects row's external weight input.
func (c *Cluster) BindWeightIn(row int, f *kernel.FIFO[pe.Weight]) { c.weightIn[row] = f }

// BindPSumIn connects col's external psum input, read by the bottom PE
// row only when that row's psum_acc_in ends up true.
func (c *Cluster) BindPSumIn(col int, f *kernel.FIFO[pe.PSum]) {
	c.psumIn[col] = f
	c.grid[c.peRows-1][col].BindPSumIn(f)
}

// BindPSumOut connects col's external psum output, written by the top PE
// row.
func (c *Cluster) BindPSumOut(col int, f *kernel.FIFO[pe.PSum]) {
	c.psumOut[col] = f
	c.grid[0][col].BindPSumOut(f)
}

// SetConfig validates cfg against this cluster's topology and installs
// it, setting each PE's psum_acc_in to (row < kernel_h-1): every PE
// except those in the last kernel row of the vertical reduction
// accumulates an incoming psum.
func (c *Cluster) SetConfig(cfg Config) {
	if cfg.IActPropagation.Srcs() != c.iactBanks || cfg.IActPropagation.Dsts() != c.peRows*c.peCols {
		panic(&kernel.ConfigError{Module: c.name, Reason: "iact_propagation dimensions must be IActBanks x (PERows*PECols)"})
	}
	if !cfg.IActPropagation.Valid() {
		panic(&kernel.ConfigError{Module: c.name, Reason: "iact_propagation routes more than one bank to the same PE"})
	}
	if len(cfg.WeightPropagation) != c.peRows {
		panic(&kernel.ConfigError{Module: c.name, Reason: "weight_propagation must have one matrix per PE row"})
	}
	for row, wp := range cfg.WeightPropagation {
		if wp.Srcs() != 1 || wp.Dsts() != c.peCols {
			panic(&kernel.ConfigError{Module: c.name, Reason: fmt.Sprintf("weight_propagation[%d] dimensions must be 1 x PECols", row)})
		}
		if !wp.Valid() {
			panic(&kernel.ConfigError{Module: c.name, Reason: fmt.Sprintf("weight_propagation[%d] routes more than one source to the same PE", row)})
		}
	}
	if !cfg.PE.Valid() {
		panic(&kernel.ConfigError{Module: c.name, Reason: "kernel_w and kernel_h must both be > 0"})
	}

	for row := 0; row < c.peRows; row++ {
		for col := 0; col < c.peCols; col++ {
			c.grid[row][col].SetConfig(pe.Config{
				KernelW:   cfg.PE.KernelW,
				KernelH:   cfg.PE.KernelH,
				PSumAccIn: row < cfg.PE.KernelH-1,
			})
		}
	}

	c.cfg = cfg
	c.configured = true

	kernel.Trace("cluster: configuration installed", "cluster", c.name)
	kernel.Trace("cluster: iact propagation\n" + cfg.IActPropagation.Print())
	for row, wp := range cfg.WeightPropagation {
		kernel.Trace(fmt.Sprintf("cluster: weight propagation[%d]\n%s", row, wp.Print()))
	}
}

// Tick runs every bank broadcast task, every row broadcast task, and
// every PE once, in that order, and reports whether any of them made
// progress.
func (c *Cluster) Tick(now sim.VTimeInSec) (madeProgress bool) {
	if !c.configured {
		return false
	}

	for _, t := range c.iactTasks {
		if t.Tick() {
			madeProgress = true
		}
	}
	for _, t := range c.weightTasks {
		if t.Tick() {
			madeProgress = true
		}
	}
	for row := 0; row < c.peRows; row++ {
		for col := 0; col < c.peCols; col++ {
			if c.grid[row][col].Tick(now) {
				madeProgress = true
			}
		}
	}

	return madeProgress
}

// BlockedProbes exposes every bank task, row task, and PE's deadlock
// probe, for wiring into a kernel.DeadlockMonitor.
func (c *Cluster) BlockedProbes() []kernel.BlockedProbe {
	probes := make([]kernel.BlockedProbe, 0, len(c.iactTasks)+len(c.weightTasks)+c.peRows*c.peCols)
	for _, t := range c.iactTasks {
		probes = append(probes, t)
	}
	for _, t := range c.weightTasks {
		probes = append(probes, t)
	}
	for row := 0; row < c.peRows; row++ {
		for col := 0; col < c.peCols; col++ {
			probes = append(probes, c.grid[row][col].BlockedProbes()...)
		}
	}
	return probes
}
