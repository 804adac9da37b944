package cluster

import (
	"fmt"

	"github.com/sarchlab/eyerissv2/kernel"
	"github.com/sarchlab/eyerissv2/pe"
)

type fanoutState int

const (
	fanoutIdle fanoutState = iota
	fanoutLatency
	fanoutForward
)

// iactBankTask is one iact bank's broadcast task (the systolic fabric,
// iact_thread): read one token from the bank, then fan it out, in
// ascending linearized-position order, to every PE whose iact_fifo the
// routing matrix enables.
type iactBankTask struct {
	c    *Cluster
	bank int

	state     fanoutState
	remaining int
	nextPos   int
	token     pe.IAct
}

func (t *iactBankTask) Tick() bool {
	switch t.state {
	case fanoutIdle:
		v, ok := t.c.iactIn[t.bank].TryRead()
		if !ok {
			return false
		}
		t.token = v
		t.remaining = 1
		t.state = fanoutLatency
		return true

	case fanoutLatency:
		t.remaining--
		if t.remaining > 0 {
			return true
		}
		t.nextPos = 0
		t.state = fanoutForward
		return true

	case fanoutForward:
		progressed := false
		total := t.c.peRows * t.c.peCols
		for t.nextPos < total {
			if !t.c.cfg.IActPropagation.Path(t.bank, t.nextPos) {
				t.nextPos++
				continue
			}
			row, col := t.nextPos/t.c.peCols, t.nextPos%t.c.peCols
			if !t.c.iactFifos[row][col].TryWrite(t.token) {
				return progressed
			}
			progressed = true
			t.nextPos++
		}
		t.state = fanoutIdle
		return true
	}
	return false
}

func (t *iactBankTask) Name() string {
	return fmt.Sprintf("%s.iact_thread[%d]", t.c.name, t.bank)
}

func (t *iactBankTask) Blocked() (bool, string) {
	switch t.state {
	case fanoutForward:
		return true, fmt.Sprintf("iact_fifos[%d][%d]", t.nextPos/t.c.peCols, t.nextPos%t.c.peCols)
	case fanoutIdle:
		return true, fmt.Sprintf("iact_in[%d]", t.bank)
	default:
		return false, ""
	}
}

// weightRowTask is one row's weight-broadcast task (the systolic fabric,
// weight_thread): read one token from the row, then fan it out, in
// ascending column order, to every PE whose weight_fifo the row's
// routing matrix enables.
type weightRowTask struct {
	c   *Cluster
	row int

	state     fanoutState
	remaining int
	nextCol   int
	token     pe.Weight
}

func (t *weightRowTask) Tick() bool {
	switch t.state {
	case fanoutIdle:
		v, ok := t.c.weightIn[t.row].TryRead()
		if !ok {
			return false
		}
		t.token = v
		t.remaining = 1
		t.state = fanoutLatency
		return true

	case fanoutLatency:
		t.remaining--
		if t.remaining > 0 {
			return true
		}
		t.nextCol = 0
		t.state = fanoutForward
		return true

	case fanoutForward:
		progressed := false
		for t.nextCol < t.c.peCols {
			if !t.c.cfg.WeightPropagation[t.row].Path(0, t.nextCol) {
				t.nextCol++
				continue
			}
			if !t.c.weightFifos[t.row][t.nextCol].TryWrite(t.token) {
				return progressed
			}
			progressed = true
			t.nextCol++
		}
		t.state = fanoutIdle
		return true
	}
	return false
}

func (t *weightRowTask) Name() string {
	return fmt.Sprintf("%s.weight_thread[%d]", t.c.name, t.row)
}

func (t *weightRowTask) Blocked() (bool, string) {
	switch t.state {
	case fanoutForward:
		return true, fmt.Sprintf("weight_fifos[%d][%d]", t.row, t.nextCol)
	case fanoutIdle:
		return true, fmt.Sprintf("weight_in[%d]", t.row)
	default:
		return false, ""
	}
}

var _ kernel.BlockedProbe = (*iactBankTask)(nil)
var _ kernel.BlockedProbe = (*weightRowTask)(nil)
