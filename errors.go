package pollexec

import "errors"

// Standard errors.
var (
	// ErrReactorClosed is returned when a registration is attempted on a
	// reactor that has been closed (or is closing).
	ErrReactorClosed = errors.New("pollexec: reactor is closed")

	// ErrDuplicateTask is returned when a task id is registered more than
	// once over the lifetime of a reactor. Duplicate registration would
	// spawn a redundant worker, so it is a hard error rather than a silent
	// dedup.
	ErrDuplicateTask = errors.New("pollexec: task id already registered")

	// ErrTaskCompleted is returned (wrapped in a failed Outcome) when a
	// task is attempted again after it has already produced its value.
	ErrTaskCompleted = errors.New("pollexec: task already completed")

	// ErrExecutorBusy is returned when Run is called on an executor that
	// is already driving a task.
	ErrExecutorBusy = errors.New("pollexec: executor is already running")

	// ErrNilTask is returned when Run is called with a nil task.
	ErrNilTask = errors.New("pollexec: nil task")

	// ErrNilWake is returned when a registration carries no wake handle.
	// A registration that cannot notify anyone can never be observed.
	ErrNilWake = errors.New("pollexec: nil wake handle")
)
