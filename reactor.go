package pollexec

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/logiface"
)

const defaultDispatchBuffer = 64

// taskStatus tracks one registered task id through its lifetime.
type taskStatus uint8

const (
	// statusPending: registered, worker not yet fired.
	statusPending taskStatus = iota
	// statusReady: worker fired; IsReady reports true.
	statusReady
	// statusConsumed: a task observed readiness and took its value.
	statusConsumed
)

// reactorTestHooks provides injection points for deterministic race
// testing of the worker's mark-then-notify sequence.
type reactorTestHooks struct {
	PreMark   func(id TaskID) // called before the registry is marked ready
	PreNotify func(id TaskID) // called between marking ready and Notify
}

// Reactor simulates asynchronous completion sources. It owns a dispatch
// channel and a long-lived dispatch goroutine; each accepted registration
// spawns one ephemeral worker that waits out the requested delay, marks
// the task ready, and fires the registration's wake handle.
//
// The zero value is not usable; construct with [NewReactor]. A reactor
// may serve any number of sequential executor runs. Close it exactly once
// when no more registrations will be made.
type Reactor struct {
	// Prevent copying
	_ [0]func()

	dispatch chan event
	done     chan struct{} // closed after the dispatch goroutine exits

	mu     sync.Mutex
	tasks  map[TaskID]taskStatus
	closed bool

	closeOnce sync.Once

	outstanding atomic.Int64

	logger  *logiface.Logger[logiface.Event]
	metrics *Metrics

	testHooks *reactorTestHooks
}

// NewReactor creates a reactor and starts its dispatch goroutine.
func NewReactor(opts ...ReactorOption) (*Reactor, error) {
	cfg, err := resolveReactorOptions(opts)
	if err != nil {
		return nil, err
	}

	r := &Reactor{
		dispatch: make(chan event, cfg.dispatchBuffer),
		done:     make(chan struct{}),
		tasks:    make(map[TaskID]taskStatus),
		logger:   cfg.logger,
	}
	if cfg.metricsEnabled {
		r.metrics = &Metrics{}
	}

	go r.dispatchLoop()

	return r, nil
}

// Register asks the reactor to fire wake after delay, on behalf of task
// id. It records the id, hands a timeout event to the dispatch goroutine,
// and returns without waiting for the worker.
//
// Registration is rejected with [ErrReactorClosed] after Close, and with
// [ErrDuplicateTask] if the id has ever been registered on this reactor —
// a duplicate would spawn a redundant worker, so it is a hard error.
func (r *Reactor) Register(delay time.Duration, wake Wakeable, id TaskID) error {
	if wake == nil {
		return ErrNilWake
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrReactorClosed
	}
	if _, dup := r.tasks[id]; dup {
		r.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrDuplicateTask, id)
	}
	r.tasks[id] = statusPending
	r.outstanding.Add(1)
	// Send under the lock: Close also holds it to append the terminal
	// event, so a registration can never land behind eventClose.
	r.dispatch <- event{kind: eventTimeout, id: id, delay: delay, wake: wake}
	r.mu.Unlock()

	r.metrics.incRegistrations()
	r.logger.Debug().
		Uint64("task", uint64(id)).
		Dur("delay", delay).
		Log("pollexec: registered")

	return nil
}

// IsReady reports whether the event registered for id has completed and
// has not yet been consumed by the task observing it.
func (r *Reactor) IsReady(id TaskID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tasks[id] == statusReady
}

// consume marks id's registration as observed. Called by a task when it
// takes its completion; the entry is retained so the id can never be
// registered twice.
func (r *Reactor) consume(id TaskID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tasks[id] == statusReady {
		r.tasks[id] = statusConsumed
	}
}

// Outstanding returns the number of registrations whose workers have not
// yet fired.
func (r *Reactor) Outstanding() int64 {
	return r.outstanding.Load()
}

// Metrics returns the reactor's metrics, or nil unless [WithMetrics] was
// enabled.
func (r *Reactor) Metrics() *Metrics {
	return r.metrics
}

// Close stops the reactor: no further registrations are accepted, and
// Close blocks until the dispatch goroutine and every spawned worker have
// exited. In-flight registrations still fire and notify before Close
// returns. Close is idempotent.
func (r *Reactor) Close() error {
	return r.Shutdown(context.Background())
}

// Shutdown is Close with a deadline: it initiates the same terminal
// sequence but gives up waiting when ctx expires. The dispatch goroutine
// keeps winding down in the background in that case.
func (r *Reactor) Shutdown(ctx context.Context) error {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.dispatch <- event{kind: eventClose}
		r.mu.Unlock()
		r.logger.Debug().Log("pollexec: reactor closing")
	})

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// dispatchLoop receives events serially and spawns one worker per timeout
// event. On eventClose it stops receiving and joins all outstanding
// workers before signalling done — a worker can therefore never notify
// into a torn-down run.
func (r *Reactor) dispatchLoop() {
	var workers sync.WaitGroup
	defer func() {
		workers.Wait()
		close(r.done)
		r.logger.Debug().Log("pollexec: reactor dispatch loop exited")
	}()

	for ev := range r.dispatch {
		if ev.kind == eventClose {
			return
		}
		workers.Add(1)
		r.metrics.incWorkersSpawned()
		go r.await(&workers, ev)
	}
}

// await is the body of one ephemeral worker: simulate the asynchronous
// wait, mark the task ready, then fire the wake handle. Mark-then-notify
// mirrors the insert-then-signal ordering in [WakeHandle.Notify]; the
// executor that wakes is guaranteed to observe IsReady true.
func (r *Reactor) await(wg *sync.WaitGroup, ev event) {
	defer func() {
		r.metrics.incWorkersJoined()
		wg.Done()
	}()

	time.Sleep(ev.delay)

	if r.testHooks != nil && r.testHooks.PreMark != nil {
		r.testHooks.PreMark(ev.id)
	}

	r.mu.Lock()
	r.tasks[ev.id] = statusReady
	r.mu.Unlock()

	if r.testHooks != nil && r.testHooks.PreNotify != nil {
		r.testHooks.PreNotify(ev.id)
	}

	ev.wake.Notify()
	r.outstanding.Add(-1)

	r.logger.Debug().
		Uint64("task", uint64(ev.id)).
		Dur("delay", ev.delay).
		Log("pollexec: event fired")
}
