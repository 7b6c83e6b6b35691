package ell

import (
	"context"

	"ell/internal/runtime"
)

// ConditionVariable pairs with a Lock exactly as in
// original_source/src/condition_variable.hpp: Wait releases the lock,
// suspends until notified, then reacquires it before returning.
type ConditionVariable struct {
	l      *EventLoop
	handle *runtime.WaitHandle
}

// NewConditionVariable creates a condition variable owned by l.
func NewConditionVariable(l *EventLoop) *ConditionVariable {
	return &ConditionVariable{l: l, handle: l.exec.NewHandle()}
}

// Wait releases lk, suspends the current task until a notification
// arrives, then reacquires lk before returning.
func (cv *ConditionVariable) Wait(ctx context.Context, lk *Lock) error {
	loop, task := fromContext(ctx)
	requireLoop(loop, cv.l, "ConditionVariable.Wait")
	lk.Unlock()
	loop.exec.Attach(cv.handle, task)
	task.Suspend()
	if lockErr := lk.Lock(ctx); lockErr != nil {
		return lockErr
	}
	task.CheckCancel()
	return nil
}

// NotifyOne wakes at most one waiting task.
func (cv *ConditionVariable) NotifyOne() {
	cv.l.exec.DetachOne(cv.handle)
}

// NotifyAll wakes every waiting task.
func (cv *ConditionVariable) NotifyAll() {
	cv.l.exec.Detach(cv.handle)
}
