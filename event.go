package pollexec

import "time"

// eventKind discriminates dispatch-channel messages.
type eventKind uint8

const (
	// eventTimeout requests a worker that fires after a delay.
	eventTimeout eventKind = iota
	// eventClose is the terminal message; the dispatch loop stops
	// receiving and joins its workers.
	eventClose
)

// event is a single dispatch-channel message. Timeout events carry the
// readiness parameters of one registration; the wake handle clone travels
// with the event so the worker can notify without touching shared state.
type event struct {
	kind  eventKind
	id    TaskID
	delay time.Duration
	wake  Wakeable
}
