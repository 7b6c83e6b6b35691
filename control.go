package ell

import (
	"context"

	"ell/internal/runtime"
)

// CallSoon schedules fn to run as a new task on the next iteration and
// returns a handle to it immediately. fn receives a context carrying l and
// its own task, required by every suspending helper in this package.
func CallSoon[T any](l *EventLoop, fn func(context.Context) (T, error)) (*TaskHandle[T], error) {
	h := &TaskHandle[T]{l: l}
	entry := func(t *runtime.Task) (any, error) {
		ctx := withTask(context.Background(), l, t)
		return fn(ctx)
	}
	t, err := l.exec.Spawn(entry)
	if err != nil {
		return nil, err
	}
	h.t = t
	return h, nil
}

// RunUntilComplete drives l's scheduler loop until a completes. It must be
// called from outside any task running on l.
func RunUntilComplete(l *EventLoop, a Awaitable) error {
	requireLoop(a.owner(), l, "RunUntilComplete")
	for !a.done() {
		if l.exec.Idle() {
			panic(ContractViolationError{Op: "RunUntilComplete", Reason: "scheduler has no runnable or pending work but the awaited task has not completed"})
		}
		l.exec.Iteration()
	}
	return nil
}

// Run drives l's scheduler loop to quiescence: until there are no newly
// spawned tasks, no active tasks, no parked tasks, and no pending timers.
func Run(l *EventLoop) {
	for !l.exec.Idle() {
		l.exec.Iteration()
	}
}

// Step drives exactly one scheduler iteration and reports whether the loop
// still has runnable or pending work afterward. Intended for callers that
// want to pace scheduling themselves, such as a live monitor redrawing
// between rounds instead of running a loop to completion between frames.
func Step(l *EventLoop) bool {
	if l.exec.Idle() {
		return false
	}
	l.exec.Iteration()
	return !l.exec.Idle()
}
