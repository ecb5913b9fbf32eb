package pollexec

import "sync/atomic"

// Metrics collects runtime counters for a [Reactor] or [Executor].
// Collection is enabled via [WithMetrics]; all methods are nil-safe so
// the hot paths need no enabled checks.
type Metrics struct {
	attempts      atomic.Uint64
	wakeups       atomic.Uint64
	spuriousWakes atomic.Uint64
	notifies      atomic.Uint64
	registrations atomic.Uint64
	workersSpawn  atomic.Uint64
	workersJoined atomic.Uint64
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	// Attempts is the number of Task.Attempt calls made by Run.
	Attempts uint64
	// Wakeups is the number of times the executor unblocked after idling.
	Wakeups uint64
	// SpuriousWakes is the subset of wakeups that found no ready ids.
	SpuriousWakes uint64
	// Notifies is the number of WakeHandle.Notify invocations.
	Notifies uint64
	// Registrations is the number of accepted reactor registrations.
	Registrations uint64
	// WorkersSpawned is the number of worker goroutines the reactor started.
	WorkersSpawned uint64
	// WorkersJoined is the number of worker goroutines that have exited.
	WorkersJoined uint64
}

// Snapshot returns a copy of the current counter values. Returns the zero
// snapshot on a nil receiver.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	return MetricsSnapshot{
		Attempts:       m.attempts.Load(),
		Wakeups:        m.wakeups.Load(),
		SpuriousWakes:  m.spuriousWakes.Load(),
		Notifies:       m.notifies.Load(),
		Registrations:  m.registrations.Load(),
		WorkersSpawned: m.workersSpawn.Load(),
		WorkersJoined:  m.workersJoined.Load(),
	}
}

func (m *Metrics) incAttempts() {
	if m != nil {
		m.attempts.Add(1)
	}
}

func (m *Metrics) incWakeups() {
	if m != nil {
		m.wakeups.Add(1)
	}
}

func (m *Metrics) incSpuriousWakes() {
	if m != nil {
		m.spuriousWakes.Add(1)
	}
}

func (m *Metrics) incNotifies() {
	if m != nil {
		m.notifies.Add(1)
	}
}

func (m *Metrics) incRegistrations() {
	if m != nil {
		m.registrations.Add(1)
	}
}

func (m *Metrics) incWorkersSpawned() {
	if m != nil {
		m.workersSpawn.Add(1)
	}
}

func (m *Metrics) incWorkersJoined() {
	if m != nil {
		m.workersJoined.Add(1)
	}
}
