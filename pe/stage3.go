package pe

import "github.com/sarchlab/eyerissv2/kernel"

type stage3State int

const (
	stage3Read stage3State = iota
	stage3Advance
	stage3RemoteRead
	stage3RemoteAdvance
	stage3Write
)

// stage3 is the MAC/accumulate task: it consumes KW
// (iact, weight) pairs per output pixel, accumulates their products,
// optionally folds in a partial sum arriving from the PE below it in
// the systolic psum chain on the last pair, and emits one psum token.
type stage3 struct {
	kw        int
	psumAccIn bool

	actIn    *kernel.FIFO[IAct]
	weightIn *kernel.FIFO[Weight]
	psumIn   *kernel.FIFO[PSum] // nil unless psumAccIn
	psumOut  *kernel.FIFO[PSum]

	state      stage3State
	i          int
	localPsum  PSum
	remotePsum PSum
}

func newStage3(kw int, psumAccIn bool, actIn *kernel.FIFO[IAct], weightIn *kernel.FIFO[Weight], psumIn *kernel.FIFO[PSum], psumOut *kernel.FIFO[PSum]) *stage3 {
	return &stage3{
		kw:        kw,
		psumAccIn: psumAccIn,
		actIn:     actIn,
		weightIn:  weightIn,
		psumIn:    psumIn,
		psumOut:   psumOut,
	}
}

// Tick advances the accumulator by one cycle.
func (s *stage3) Tick() bool {
	switch s.state {
	case stage3Read:
		return s.tickRead()
	case stage3Advance:
		return s.tickAdvance()
	case stage3RemoteRead:
		return s.tickRemoteRead()
	case stage3RemoteAdvance:
		return s.tickRemoteAdvance()
	case stage3Write:
		return s.tickWrite()
	}
	return false
}

func (s *stage3) tickRead() bool {
	if !s.actIn.CanRead() || !s.weightIn.CanRead() {
		return false
	}
	a, _ := s.actIn.TryRead()
	w, _ := s.weightIn.TryRead()
	s.localPsum += PSum(a) * PSum(w)
	s.state = stage3Advance
	return true
}

func (s *stage3) tickAdvance() bool {
	if s.i < s.kw-1 {
		s.i++
		s.state = stage3Read
		return true
	}

	if s.psumAccIn {
		s.state = stage3RemoteRead
	} else {
		s.state = stage3Write
	}
	return true
}

func (s *stage3) tickRemoteRead() bool {
	v, ok := s.psumIn.TryRead()
	if !ok {
		return false
	}
	s.remotePsum = v
	s.state = stage3RemoteAdvance
	return true
}

func (s *stage3) tickRemoteAdvance() bool {
	s.localPsum += s.remotePsum
	s.state = stage3Write
	return true
}

func (s *stage3) tickWrite() bool {
	if !s.psumOut.TryWrite(s.localPsum) {
		return false
	}
	s.localPsum = 0
	s.i = 0
	s.state = stage3Read
	return true
}
