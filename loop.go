// Package ell is a single-threaded cooperative coroutine runtime: tasks
// that suspend and resume on an explicit scheduler loop, with a small set
// of synchronization primitives (Lock, ConditionVariable, Queue) built on
// top of the same wait-handle mechanism the scheduler itself uses.
package ell

import "ell/internal/runtime"

// Option configures a new EventLoop.
type Option func(*options)

type options struct {
	cfg  runtime.Config
	hook func(event string, taskID uint64)
}

// WithMaxTasks caps the number of simultaneously live tasks. Exceeding it
// makes CallSoon return a PoolExhaustedError instead of spawning.
func WithMaxTasks(n int) Option {
	return func(o *options) { o.cfg.MaxTasks = n }
}

// WithClock overrides the loop's time source, used by Sleep. The default
// is runtime.RealClock{}; tests pass a *runtime.VirtualClock.
func WithClock(c runtime.Clock) Option {
	return func(o *options) { o.cfg.Clock = c }
}

// WithLog installs a Sink that receives spawn/complete trace events.
func WithLog(s Sink) Option {
	return func(o *options) { o.cfg.Log = s }
}

// WithFuzz randomizes each round's task iteration order using seed instead
// of preserving submission order, for chaos-testing scheduling assumptions
// that should not depend on FIFO ordering.
func WithFuzz(seed uint64) Option {
	return func(o *options) { o.cfg.Fuzz = true; o.cfg.Seed = seed }
}

// WithStackHook installs a callback invoked on every task spawn and
// completion. It stands in for the original library's stack-registration
// hook (bookkeeping for an external stack-usage checker); Go has no such
// external tool to integrate with, so the hook is wired to the scheduler's
// own trace events instead.
func WithStackHook(fn func(event string, taskID uint64)) Option {
	return func(o *options) { o.hook = fn }
}

// EventLoop owns one Executor and must be driven from a single goroutine
// (spec §5 thread-affinity invariant). requireLoop checks at runtime that
// tasks and awaitables belong to this loop; which goroutine drives the
// loop is not checked.
type EventLoop struct {
	exec *runtime.Executor
}

// NewEventLoop constructs a loop bound to the calling goroutine.
func NewEventLoop(opts ...Option) *EventLoop {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.hook != nil {
		base := o.cfg.Log
		if base == nil {
			base = runtime.NopSink{}
		}
		o.cfg.Log = &hookSink{base: base, hook: o.hook}
	}
	return &EventLoop{exec: runtime.NewExecutor(o.cfg)}
}

// Snapshot reports the loop's current scheduling state, used by the CLI
// monitor and inspector.
func (l *EventLoop) Snapshot() runtime.Snapshot {
	return l.exec.Snapshot()
}

// Cancel requests cancellation of the task behind a. If the task is parked,
// the handles it waits on are detached so it runs again; it observes the
// cancellation at its next suspension point. A task that has not started
// yet runs until its first suspension point before observing it.
func (l *EventLoop) Cancel(a Awaitable) {
	requireLoop(a.owner(), l, "EventLoop.Cancel")
	l.exec.Cancel(a.task())
}

func requireLoop(got, want *EventLoop, op string) {
	if got != want {
		panic(ContractViolationError{Op: op, Reason: "task, handle, or awaitable belongs to a different event loop"})
	}
}

// hookSink forwards spawn/complete events to a stack-hook callback while
// still delegating to an underlying Sink for general trace events.
type hookSink struct {
	base runtime.Sink
	hook func(event string, taskID uint64)
}

func (s *hookSink) Enabled() bool { return true }

func (s *hookSink) Emit(ev runtime.Event) {
	if ev.Kind == "spawn" || ev.Kind == "complete" {
		s.hook(ev.Kind, uint64(ev.TaskID))
	}
	if s.base.Enabled() {
		s.base.Emit(ev)
	}
}
