package pollexec

import "sync/atomic"

// RunState represents the current state of an [Executor].
//
// State machine:
//
//	RunStateIdle (0)    → RunStateRunning (1)  [Run()]
//	RunStateRunning (1) → RunStateWaiting (2)  [task reported pending]
//	RunStateWaiting (2) → RunStateRunning (1)  [wake handle fired]
//	RunStateRunning (1) → RunStateIdle (0)     [task completed or failed]
//
// Transitions into and out of the temporary states use CAS; only the
// terminal return to RunStateIdle uses a plain store.
type RunState uint64

const (
	// RunStateIdle indicates the executor is not driving a task.
	RunStateIdle RunState = iota
	// RunStateRunning indicates the executor is attempting the task.
	RunStateRunning
	// RunStateWaiting indicates the executor is blocked between attempts.
	RunStateWaiting
)

// String returns a human-readable representation of the state.
func (s RunState) String() string {
	switch s {
	case RunStateIdle:
		return "Idle"
	case RunStateRunning:
		return "Running"
	case RunStateWaiting:
		return "Waiting"
	default:
		return "Unknown"
	}
}

// runState is an atomic state machine over [RunState] values.
type runState struct {
	v atomic.Uint64
}

// Load returns the current state atomically.
func (s *runState) Load() RunState {
	return RunState(s.v.Load())
}

// Store atomically stores a new state, without transition validation.
func (s *runState) Store(state RunState) {
	s.v.Store(uint64(state))
}

// TryTransition attempts to atomically transition from one state to
// another, returning true on success.
func (s *runState) TryTransition(from, to RunState) bool {
	return s.v.CompareAndSwap(uint64(from), uint64(to))
}
