package runtime

import (
	"fmt"
	"sync/atomic"
)

// TaskID uniquely identifies a Task within the Executor that created it.
type TaskID uint64

// Entry is the user callable a Task runs, wrapped to erase its concrete
// return type. It receives the Task so it can check cancellation and
// receives no result channel: the outcome is reported via the returned
// (value, error) pair and stored into the Task's Result by run().
type Entry func(t *Task) (any, error)

// Task is a suspendable unit of work: its own goroutine (standing in for
// the private execution stack of the original spec — see SPEC_FULL.md §1),
// a one-shot Result, and wait-count bookkeeping.
//
// resume()/suspend() are implemented as a strict unbuffered channel
// hand-off between the caller (the Executor's goroutine) and the Task's
// own goroutine: at most one side ever runs user code at a time, which is
// the single-threaded-cooperative invariant the spec requires regardless
// of GOMAXPROCS.
type Task struct {
	id     TaskID
	owner  *Executor
	self   *WaitHandle
	entry  Entry
	result Result

	waitCount int32
	active    bool
	dirty     bool

	cancelRequested atomic.Bool
	parkedOn        []*WaitHandle

	started  bool
	complete bool
	resumeCh chan struct{}
	yieldCh  chan struct{}
}

// ID returns the task's identity.
func (t *Task) ID() TaskID { return t.id }

// Owner returns the Executor that created this task.
func (t *Task) Owner() *Executor { return t.owner }

// SelfHandle returns the wait handle dependents attach to in order to be
// woken when this task completes.
func (t *Task) SelfHandle() *WaitHandle { return t.self }

// Active reports whether the scheduler currently considers this task
// runnable (wait count is zero).
func (t *Task) Active() bool { return t.active }

// WaitCount returns the number of wait handles this task is currently
// attached to.
func (t *Task) WaitCount() int32 { return t.waitCount }

// IncrWaitCount records one more handle this task is parked on, marking
// it dirty for reclassification out of active if it was previously
// runnable (spec §4.3).
func (t *Task) IncrWaitCount() {
	if t.waitCount == 0 {
		t.owner.markDirty(t)
	}
	t.waitCount++
}

// DecrWaitCount records that this task is no longer parked on one fewer
// handle, marking it dirty for reclassification into active once the
// count reaches zero. Panics if the count is already zero.
func (t *Task) DecrWaitCount() {
	if t.waitCount <= 0 {
		panic(ContractViolationError{Op: "Task.DecrWaitCount", Reason: "wait count is already zero"})
	}
	t.waitCount--
	if t.waitCount == 0 {
		t.owner.markDirty(t)
	}
}

// IsComplete reports whether the user callable has returned (normally, by
// failure, or by cancellation) and the bootstrap has finished.
func (t *Task) IsComplete() bool { return t.complete }

// GetResult returns the task's stored outcome. Valid only after
// IsComplete returns true; panics otherwise (via Result.Take's own
// contract check).
func (t *Task) GetResult() (any, error) {
	return t.result.Take()
}

// RequestCancel sets the cancellation flag observed at the task's next
// suspension point.
func (t *Task) RequestCancel() {
	t.cancelRequested.Store(true)
}

// CancelRequested reports whether RequestCancel has been called.
func (t *Task) CancelRequested() bool {
	return t.cancelRequested.Load()
}

// Resume transfers control into the task's goroutine. It returns when the
// task next suspends or completes. Panics if the task is already complete.
func (t *Task) Resume() {
	if t.complete {
		panic(ContractViolationError{Op: "Task.Resume", Reason: "task is already complete"})
	}
	if !t.started {
		t.started = true
		t.resumeCh = make(chan struct{})
		t.yieldCh = make(chan struct{})
		go t.run()
	} else {
		t.resumeCh <- struct{}{}
	}
	<-t.yieldCh
}

// Suspend transfers control back to the scheduler. Must be called from
// within the task's own goroutine.
func (t *Task) Suspend() {
	t.yieldCh <- struct{}{}
	<-t.resumeCh
}

// CheckCancel raises Cancelled (via panic, recovered by run) if
// cancellation has been requested. Suspension helpers call this right
// after resuming from Suspend.
func (t *Task) CheckCancel() {
	if t.cancelRequested.Load() {
		panic(cancelledPanic{err: Cancelled{TaskID: t.id}})
	}
}

func (t *Task) run() {
	defer func() {
		if r := recover(); r != nil {
			t.result.StoreFailure(failureFromPanic(t.id, r))
		}
		t.complete = true
		t.yieldCh <- struct{}{}
	}()

	val, err := t.entry(t)
	if err != nil {
		t.result.StoreFailure(err)
		return
	}
	t.result.Store(val)
}

func failureFromPanic(id TaskID, r any) error {
	if cp, ok := r.(cancelledPanic); ok {
		return cp.err
	}
	if err, ok := r.(error); ok {
		return panicFailure{TaskID: id, Value: err}
	}
	return panicFailure{TaskID: id, Value: r}
}

// panicFailure wraps an arbitrary value recovered from a panic raised by
// the user callable, mirroring the original C++ bootstrap's
// catch(std::exception) -> promise.set_exception behavior: any panic, not
// only typed errors, becomes the task's stored failure.
type panicFailure struct {
	TaskID TaskID
	Value  any
}

func (e panicFailure) Error() string {
	if err, ok := e.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("ell: task panicked: %v", e.Value)
}
