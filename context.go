package ell

import (
	"context"

	"ell/internal/runtime"
)

type ctxKey struct{}

type ctxValue struct {
	loop *EventLoop
	task *runtime.Task
}

// withTask returns a context carrying the owning loop and the task running
// on it, the explicit stand-in for the original's thread-local current-loop
// pointer (see SPEC_FULL.md §1).
func withTask(parent context.Context, l *EventLoop, t *runtime.Task) context.Context {
	return context.WithValue(parent, ctxKey{}, ctxValue{loop: l, task: t})
}

func fromContext(ctx context.Context) (*EventLoop, *runtime.Task) {
	v, ok := ctx.Value(ctxKey{}).(ctxValue)
	if !ok {
		panic(ContractViolationError{Op: "ell", Reason: "context was not produced by this runtime (no current task)"})
	}
	return v.loop, v.task
}
