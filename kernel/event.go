package kernel

// Event is a broadcast notification primitive: notify() wakes every task
// currently waiting on the event. Because every task in
// this module is re-entered once per clock edge rather than blocked inside
// a goroutine, "waiting" is expressed as a task remembering the event's
// generation at the point it started waiting and polling Fired every Tick
// — any number of waiters recorded before a Notify observe the same
// generation bump, which is what gives notify its broadcast-to-all
// semantics here.
type Event struct {
	gen uint64
}

// Notify wakes all tasks currently waiting on the event. Matches the
// SC_ZERO_TIME notify semantics used by the reference model in that a
// waiter polling later in the same cycle (after the notifying task has
// yielded) already observes the new generation.
func (e *Event) Notify() {
	e.gen++
}

// Snapshot returns the event's current generation. A waiter should record
// this before it starts waiting.
func (e *Event) Snapshot() uint64 {
	return e.gen
}

// Fired reports whether the event has been notified at least once since
// the given generation snapshot.
func (e *Event) Fired(since uint64) bool {
	return e.gen != since
}
