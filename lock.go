package ell

import (
	"context"

	"ell/internal/runtime"
)

// Lock is a non-reentrant mutual-exclusion primitive scoped to one
// EventLoop, grounded on original_source/src/lock.hpp: a single wait
// handle and a boolean, since only one task ever runs at a time and the
// only way to block another task out is to suspend while holding it.
type Lock struct {
	l      *EventLoop
	handle *runtime.WaitHandle
	locked bool
}

// NewLock creates an unlocked Lock owned by l.
func NewLock(l *EventLoop) *Lock {
	return &Lock{l: l, handle: l.exec.NewHandle()}
}

// Lock blocks the current task until the lock is free, then takes it.
func (lk *Lock) Lock(ctx context.Context) error {
	loop, task := fromContext(ctx)
	requireLoop(loop, lk.l, "Lock.Lock")
	for lk.locked {
		loop.exec.Attach(lk.handle, task)
		task.Suspend()
		task.CheckCancel()
	}
	lk.locked = true
	return nil
}

// TryLock takes the lock without suspending if it is free, reporting
// whether it succeeded.
func (lk *Lock) TryLock() bool {
	if lk.locked {
		return false
	}
	lk.locked = true
	return true
}

// Unlock releases the lock and wakes every task waiting on it. Panics if
// the lock is not currently held.
func (lk *Lock) Unlock() {
	if !lk.locked {
		panic(ContractViolationError{Op: "Lock.Unlock", Reason: "lock is not held"})
	}
	lk.locked = false
	lk.l.exec.Detach(lk.handle)
}

// Locked reports whether the lock is currently held.
func (lk *Lock) Locked() bool { return lk.locked }
