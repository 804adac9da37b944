package kernel

import "github.com/sarchlab/akita/v4/sim"

// Ticker is anything that can be advanced one clock cycle and report
// whether it made progress — a Router, PE, Cluster, or any composite of
// them. It is the same Handler.Tick shape akita's TickingComponent
// expects, so any of this module's components already satisfies it.
type Ticker interface {
	Tick(now sim.VTimeInSec) (madeProgress bool)
}

// Run advances t one cycle at a time, watching monitor for a deadlock,
// until either maxCycles elapses or a deadlock is detected. It returns
// the cycle count reached and a non-nil *DeadlockError if one occurred.
// It is a direct cycle-by-cycle driver for tests and small scenarios
// that don't need akita's full event engine to step a Ticker.
func Run(t Ticker, monitor *DeadlockMonitor, maxCycles uint64) (cycles uint64, err *DeadlockError) {
	for cycles = 1; cycles <= maxCycles; cycles++ {
		progress := t.Tick(0)
		if monitor != nil {
			if err = monitor.Observe(cycles, progress); err != nil {
				return cycles, err
			}
		}
	}
	return cycles - 1, nil
}
