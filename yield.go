package ell

import (
	"context"
	"time"

	"fortio.org/safecast"
)

// Yield suspends the current task for exactly one scheduler round, being
// nice and giving other runnable tasks a chance to run.
func Yield(ctx context.Context) error {
	_, task := fromContext(ctx)
	task.Suspend()
	task.CheckCancel()
	return nil
}

// YieldTo spawns fn as a new task and suspends the caller until it
// completes, returning fn's result directly.
func YieldTo[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	loop, _ := fromContext(ctx)
	var zero T
	h, err := CallSoon(loop, fn)
	if err != nil {
		return zero, err
	}
	if err := WaitFor(ctx, h); err != nil {
		return zero, err
	}
	return h.GetResult()
}

// Sleep suspends the current task until at least d has elapsed on the
// loop's clock.
func Sleep(ctx context.Context, d time.Duration) error {
	loop, task := fromContext(ctx)
	ms, err := safecast.Conv[uint64](d.Milliseconds())
	if err != nil {
		panic(ContractViolationError{Op: "Sleep", Reason: "negative duration"})
	}
	deadline := loop.exec.Clock().NowMs() + ms
	handle := loop.exec.NewHandle()
	timerID := loop.exec.ScheduleSleep(handle, deadline)
	loop.exec.Attach(handle, task)
	task.Suspend()
	if task.CancelRequested() {
		loop.exec.CancelSleep(timerID)
	}
	task.CheckCancel()
	return nil
}

// WaitFor suspends the current task until every awaitable has completed.
func WaitFor(ctx context.Context, awaitables ...Awaitable) error {
	loop, task := fromContext(ctx)
	for _, a := range awaitables {
		requireLoop(a.owner(), loop, "WaitFor")
		if !a.done() {
			loop.exec.Attach(a.waitHandle(), task)
		}
	}
	for {
		allDone := true
		for _, a := range awaitables {
			if !a.done() {
				allDone = false
				break
			}
		}
		if allDone {
			return nil
		}
		task.Suspend()
		task.CheckCancel()
	}
}
