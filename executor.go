package pollexec

import (
	"sync/atomic"

	"github.com/joeycumines/logiface"
)

// Executor drives a single [Task] to completion on the calling goroutine,
// idling without CPU use between attempts. An executor is reusable across
// sequential runs but rejects concurrent ones.
type Executor struct {
	// Prevent copying
	_ [0]func()

	state   runState
	runSeq  atomic.Uint64
	logger  *logiface.Logger[logiface.Event]
	metrics *Metrics
}

// NewExecutor creates an executor.
func NewExecutor(opts ...ExecutorOption) (*Executor, error) {
	cfg, err := resolveExecutorOptions(opts)
	if err != nil {
		return nil, err
	}

	x := &Executor{
		logger: cfg.logger,
	}
	if cfg.metricsEnabled {
		x.metrics = &Metrics{}
	}
	return x, nil
}

// State returns the executor's current run state.
func (x *Executor) State() RunState {
	return x.state.Load()
}

// Metrics returns the executor's metrics, or nil unless [WithMetrics] was
// enabled.
func (x *Executor) Metrics() *Metrics {
	return x.metrics
}

// Run drives task until it completes or fails, blocking the calling
// goroutine. It constructs one [WakeHandle] (over a fresh ready set and
// wake gate) for the whole run and passes it to every attempt; between
// pending attempts it blocks on the gate until some clone of the handle
// fires.
//
// The loop tolerates spurious wakeups by always re-attempting rather than
// trusting the wake, and it has no timeout: a task that never arranges a
// wake hangs the run, by contract of [Task] and [Reactor].
//
// Run returns [ErrNilTask] for a nil task and [ErrExecutorBusy] if the
// executor is already driving a task.
func Run[T any](x *Executor, task Task[T]) (T, error) {
	var zero T
	if task == nil {
		return zero, ErrNilTask
	}
	if !x.state.TryTransition(RunStateIdle, RunStateRunning) {
		return zero, ErrExecutorBusy
	}
	defer x.state.Store(RunStateIdle)

	run := x.runSeq.Add(1)
	gate := newWakeGate()
	wake := &WakeHandle{
		ready:   NewReadySet(),
		gate:    gate,
		metrics: x.metrics,
	}

	x.logger.Debug().Uint64("run", run).Log("pollexec: run started")

	for {
		x.metrics.incAttempts()
		out := task.Attempt(wake)

		switch {
		case out.IsComplete():
			x.logger.Debug().Uint64("run", run).Log("pollexec: run completed")
			return out.Value(), nil
		case !out.IsPending():
			x.logger.Debug().
				Uint64("run", run).
				Err(out.Err()).
				Log("pollexec: run failed")
			return zero, out.Err()
		}

		// Idle until a handle clone fires. The gate's pending flag means
		// a Notify that raced the attempt above is not lost; Wait returns
		// immediately in that case.
		x.state.TryTransition(RunStateRunning, RunStateWaiting)
		gate.Wait()
		x.state.TryTransition(RunStateWaiting, RunStateRunning)

		x.metrics.incWakeups()
		woken := wake.ready.Drain()
		if len(woken) == 0 {
			x.metrics.incSpuriousWakes()
		}
		x.logger.Trace().
			Uint64("run", run).
			Int("ready", len(woken)).
			Log("pollexec: woke")
	}
}
