package pe

import "github.com/sarchlab/eyerissv2/kernel"

type stage1Mode int

const (
	stage1Filling stage1Mode = iota
	stage1Draining
	stage1Fetching
)

// stage1 is the sliding-window generator: it reads raw
// iacts off the row's propagation bus and re-emits each KW-wide window
// onto F12, so stage2/stage3 downstream never have to remember history
// themselves. The first KW reads fill iact_win; every round after that
// re-emits the KW-1 stored values before fetching one fresh iact and
// rotating the window.
type stage1 struct {
	kw  int
	in  *kernel.FIFO[IAct] // bound to the row's iact propagation fifo
	out *kernel.FIFO[IAct] // F12

	win []IAct // holds the last KW-1 iacts, oldest first

	mode     stage1Mode
	fillIdx  int
	drainIdx int
	waiting  bool
	pending  IAct
}

func newStage1(kw int, in, out *kernel.FIFO[IAct]) *stage1 {
	return &stage1{
		kw:  kw,
		in:  in,
		out: out,
		win: make([]IAct, 0, maxInt(kw-1, 0)),
	}
}

// Tick advances the window generator by one cycle.
func (s *stage1) Tick() bool {
	switch s.mode {
	case stage1Filling:
		return s.tickFilling()
	case stage1Draining:
		return s.tickDraining()
	case stage1Fetching:
		return s.tickFetching()
	}
	return false
}

func (s *stage1) tickFilling() bool {
	if !s.waiting {
		v, ok := s.in.TryRead()
		if !ok {
			return false
		}
		s.pending = v
		s.waiting = true
		return true
	}

	if !s.out.TryWrite(s.pending) {
		return false
	}
	if s.fillIdx > 0 {
		s.win = append(s.win, s.pending)
	}
	s.fillIdx++
	s.waiting = false

	if s.fillIdx == s.kw {
		s.mode = stage1Draining
		s.drainIdx = 0
	}
	return true
}

func (s *stage1) tickDraining() bool {
	if s.drainIdx >= len(s.win) {
		s.mode = stage1Fetching
		return s.Tick()
	}

	if !s.waiting {
		s.pending = s.win[s.drainIdx]
		s.waiting = true
		return true
	}

	if !s.out.TryWrite(s.pending) {
		return false
	}
	s.waiting = false
	s.drainIdx++
	return true
}

func (s *stage1) tickFetching() bool {
	if !s.waiting {
		v, ok := s.in.TryRead()
		if !ok {
			return false
		}
		s.pending = v
		s.waiting = true
		return true
	}

	if !s.out.TryWrite(s.pending) {
		return false
	}
	if len(s.win) > 0 {
		s.win = append(s.win[1:], s.pending)
	}
	s.waiting = false
	s.mode = stage1Draining
	s.drainIdx = 0
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
