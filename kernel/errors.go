package kernel

import "fmt"

// ConfigError reports an invalid configuration: a routing matrix that
// violates Valid(), or a PE kernel dimension of zero. SetConfig methods
// across this module panic with a *ConfigError so the "fails hard"
// contract holds while keeping the failure inspectable via errors.As by a
// caller that wants to recover() in a test.
type ConfigError struct {
	Module string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: invalid configuration: %s", e.Module, e.Reason)
}

// DeadlockError reports that the kernel reached a point where no task
// could make progress because some tasks are waiting on FIFOs or events
// with no producer. Unlike ConfigError this is not a panic — a deadlock
// is a test failure, not an internal error — it is returned from a run
// loop for the caller to report.
type DeadlockError struct {
	Cycle   uint64
	Blocked []string
}

func (e *DeadlockError) Error() string {
	return fmt.Sprintf(
		"deadlock at cycle %d: %d task(s) blocked with no producer: %v",
		e.Cycle, len(e.Blocked), e.Blocked,
	)
}
