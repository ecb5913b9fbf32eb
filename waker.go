package pollexec

import "sync"

// Wakeable is the capability a reactor needs to unblock whatever is
// waiting on a registered event. Implementations must be safe to call
// from any goroutine, any number of times.
type Wakeable interface {
	// Notify marks the bound task ready and wakes the waiter.
	Notify()
}

// wakeGate is the blocking primitive an executor idles on between
// attempts: a condition variable paired with a pending flag, scoped to a
// single run. The flag is what makes the pair lossless — a Signal that
// lands while the executor is still attempting is observed by the next
// Wait instead of being dropped.
type wakeGate struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending bool
}

func newWakeGate() *wakeGate {
	g := &wakeGate{}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// Signal records a pending wake and unblocks the waiter, if any.
func (g *wakeGate) Signal() {
	g.mu.Lock()
	g.pending = true
	g.mu.Unlock()
	g.cond.Signal()
}

// Wait blocks until a wake is pending, then consumes it. Spurious
// condition-variable wakeups are absorbed by re-checking the flag.
func (g *wakeGate) Wait() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for !g.pending {
		g.cond.Wait()
	}
	g.pending = false
}

// WakeHandle is a cloneable, shareable notification token. It pairs a
// task id with the ready set and wake gate of a single [Run] invocation.
//
// A handle is created fresh for each run and cloned on every reactor
// registration; clones share the ready set and gate by reference, so a
// Notify from any clone unblocks the same executor.
type WakeHandle struct {
	id      TaskID
	ready   *ReadySet
	gate    *wakeGate
	metrics *Metrics
}

var _ Wakeable = (*WakeHandle)(nil)

// TaskID returns the task id the handle is bound to (zero if unbound).
func (h *WakeHandle) TaskID() TaskID {
	return h.id
}

// Notify inserts the bound task id into the shared ready set and then
// unblocks the idle executor, in that order. Inserting first is what
// guarantees the executor, which always re-checks readiness after waking,
// can never sleep through a completion.
//
// Notify is safe to call from any goroutine, concurrently with other
// notifies for the same or different ids.
func (h *WakeHandle) Notify() {
	h.ready.Add(h.id)
	h.metrics.incNotifies()
	h.gate.Signal()
}

// Clone duplicates the handle. The ready set and gate are shared, not
// copied.
func (h *WakeHandle) Clone() *WakeHandle {
	c := *h
	return &c
}

// Bind returns a clone of the handle bound to id. Leaf tasks use it to
// hand the reactor a handle carrying their own id.
func (h *WakeHandle) Bind(id TaskID) *WakeHandle {
	c := *h
	c.id = id
	return &c
}
