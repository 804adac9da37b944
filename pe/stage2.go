package pe

import "github.com/sarchlab/eyerissv2/kernel"

// stage2 is the weight-selection task: it pairs every
// F12 iact with the weight at the current row pointer, caching weights
// the first time each pointer value is seen (weight_row only ever
// grows, up to KW entries) and replaying the cache on every later pass
// so the weight fifo is read exactly KW times for the whole run.
type stage2 struct {
	kw int

	actIn     *kernel.FIFO[IAct]   // F12
	weightIn  *kernel.FIFO[Weight] // bound to the row's weight propagation fifo
	actOut    *kernel.FIFO[IAct]   // F23_act
	weightOut *kernel.FIFO[Weight] // F23_w

	weightRow []Weight
	ptr       int

	needWeightRead bool
	haveAct        bool
	actWritten     bool
	pendingAct     IAct
	pendingWeight  Weight
}

func newStage2(kw int, actIn *kernel.FIFO[IAct], weightIn *kernel.FIFO[Weight], actOut *kernel.FIFO[IAct], weightOut *kernel.FIFO[Weight]) *stage2 {
	return &stage2{
		kw:        kw,
		actIn:     actIn,
		weightIn:  weightIn,
		actOut:    actOut,
		weightOut: weightOut,
		weightRow: make([]Weight, 0, kw),
	}
}

// Tick advances weight selection by one cycle.
func (s *stage2) Tick() bool {
	if !s.haveAct {
		v, ok := s.actIn.TryRead()
		if !ok {
			return false
		}
		s.pendingAct = v
		s.haveAct = true
		s.needWeightRead = s.ptr >= len(s.weightRow)
		return true
	}

	if s.needWeightRead {
		w, ok := s.weightIn.TryRead()
		if !ok {
			return false
		}
		s.weightRow = append(s.weightRow, w)
		s.needWeightRead = false
		return true
	}

	s.pendingWeight = s.weightRow[s.ptr]

	if !s.actWritten {
		if !s.actOut.TryWrite(s.pendingAct) {
			return false
		}
		s.actWritten = true
	}
	if !s.weightOut.TryWrite(s.pendingWeight) {
		return false
	}

	s.actWritten = false
	s.haveAct = false
	s.ptr = (s.ptr + 1) % s.kw
	return true
}
