// Package pollexec provides a minimal cooperative task-execution runtime:
// a single-threaded polling executor paired with a simulated event reactor,
// connected by a wake-notification mechanism.
//
// # Architecture
//
// Four pieces cooperate to drive a suspendable computation to completion:
//
//   - [Task]: a unit of work with a single operation, [Task.Attempt], which
//     either makes progress to a final value or reports that it is blocked.
//   - [Reactor]: owns a dispatch goroutine that accepts registrations
//     ("notify me after this delay, using this handle") and spawns one
//     ephemeral worker per registration to simulate asynchronous completion.
//   - [WakeHandle]: a cloneable notification token. Its Notify method marks
//     the bound task id ready and unblocks the idle executor goroutine.
//   - [Executor]: the driving loop. [Run] repeatedly attempts the root task
//     and blocks between attempts without consuming CPU, waking only when a
//     WakeHandle fires.
//
// # Protocol
//
// [Run] constructs one WakeHandle per invocation and passes it to every
// Attempt. On its first attempt a leaf task registers with the reactor,
// handing over a handle clone bound to its own id, and reports pending.
// The executor then blocks. When the worker simulating the registered event
// completes, the reactor marks the id ready and invokes the handle, which
// inserts the id into the run's ready set before signalling the executor
// awake. The executor re-attempts the task, which now observes readiness
// via [Reactor.IsReady] and completes.
//
// # Ordering
//
// The ready-set insertion always happens before the wake signal, and the
// executor always re-attempts after waking rather than assuming a wake
// implies readiness. Together these rule out missed wakeups; a spurious
// wake costs one extra attempt and nothing else.
//
// # Thread Safety
//
// [Reactor.Register], [Reactor.IsReady], and [WakeHandle.Notify] are safe
// to call from any goroutine. [Run] drives the task on the calling
// goroutine only; Attempt implementations must return promptly and must
// never block, or the whole run stalls.
//
// # Usage
//
//	reactor, err := pollexec.NewReactor()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reactor.Close()
//
//	exec, err := pollexec.NewExecutor()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	task := pollexec.NewTimerTask(reactor, 50*time.Millisecond, "done")
//	v, err := pollexec.Run(exec, task)
package pollexec
