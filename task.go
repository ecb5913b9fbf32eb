package pollexec

import (
	"fmt"
	"sync/atomic"
	"time"
)

// TaskID identifies a registered task. Ids must be unique per reactor;
// [NextTaskID] allocates process-unique ids.
type TaskID uint64

var taskIDCounter atomic.Uint64

// NextTaskID allocates a fresh task id. Safe for concurrent use.
func NextTaskID() TaskID {
	return TaskID(taskIDCounter.Add(1))
}

// outcomeState discriminates the Outcome variants.
type outcomeState uint8

const (
	outcomePending outcomeState = iota
	outcomeComplete
	outcomeFailed
)

// Outcome is the result of a single [Task.Attempt]: pending, complete
// with a value, or failed with an error.
type Outcome[T any] struct {
	value T
	err   error
	state outcomeState
}

// Pending returns the outcome of an attempt that made no final progress.
func Pending[T any]() Outcome[T] {
	return Outcome[T]{state: outcomePending}
}

// Complete returns the terminal outcome carrying the task's value.
func Complete[T any](value T) Outcome[T] {
	return Outcome[T]{state: outcomeComplete, value: value}
}

// Failed returns the terminal outcome carrying an error.
func Failed[T any](err error) Outcome[T] {
	return Outcome[T]{state: outcomeFailed, err: err}
}

// IsPending reports whether the task is still blocked.
func (o Outcome[T]) IsPending() bool {
	return o.state == outcomePending
}

// IsComplete reports whether the task produced its value.
func (o Outcome[T]) IsComplete() bool {
	return o.state == outcomeComplete
}

// Value returns the completed value (the zero value unless IsComplete).
func (o Outcome[T]) Value() T {
	return o.value
}

// Err returns the failure (nil unless the outcome is failed).
func (o Outcome[T]) Err() error {
	return o.err
}

// Task is a suspendable, resumable unit of computation. Attempt must
// return promptly: it either completes, fails, or registers interest in a
// future wake (via the handle or a reactor registration carrying a bound
// clone of it) and reports pending. A task must register with its reactor
// at most once, and must not be attempted again after a terminal outcome.
//
// Attempt is only ever called from the executor goroutine; implementations
// need no internal locking.
type Task[T any] interface {
	Attempt(wake *WakeHandle) Outcome[T]
}

// TimerTask is the leaf task: it completes with a fixed value after a
// simulated delay elapses on its reactor.
type TimerTask[T any] struct {
	reactor    *Reactor
	value      T
	id         TaskID
	delay      time.Duration
	registered bool
	done       bool
}

var _ Task[struct{}] = (*TimerTask[struct{}])(nil)

// NewTimerTask creates a timer task with a fresh id. The registration
// happens lazily, on the first Attempt.
func NewTimerTask[T any](reactor *Reactor, delay time.Duration, value T) *TimerTask[T] {
	return &TimerTask[T]{
		reactor: reactor,
		value:   value,
		id:      NextTaskID(),
		delay:   delay,
	}
}

// ID returns the task's id.
func (t *TimerTask[T]) ID() TaskID {
	return t.id
}

// Attempt registers with the reactor on the first call (exactly once,
// guarded by the registered flag) and reports pending. Subsequent calls
// query readiness; once the reactor reports the delay elapsed, Attempt
// consumes the registration and completes with the task's value.
//
// Attempting a task that already returned a terminal outcome fails with
// [ErrTaskCompleted].
func (t *TimerTask[T]) Attempt(wake *WakeHandle) Outcome[T] {
	if t.done {
		return Failed[T](fmt.Errorf("%w: %d", ErrTaskCompleted, t.id))
	}

	if !t.registered {
		t.registered = true
		if err := t.reactor.Register(t.delay, wake.Bind(t.id), t.id); err != nil {
			t.done = true
			return Failed[T](err)
		}
		return Pending[T]()
	}

	if t.reactor.IsReady(t.id) {
		t.reactor.consume(t.id)
		t.done = true
		return Complete(t.value)
	}
	return Pending[T]()
}
