package ell

import "ell/internal/runtime"

// Awaitable is anything RunUntilComplete, WaitFor, and (*EventLoop).Cancel
// can wait on or cancel. Its methods are unexported, so only this package's
// own handle types can implement it.
type Awaitable interface {
	waitHandle() *runtime.WaitHandle
	done() bool
	task() *runtime.Task
	owner() *EventLoop
}

// TaskHandle is the typed handle returned by CallSoon, used to retrieve a
// task's result or to pass it to WaitFor/Cancel.
type TaskHandle[T any] struct {
	t *runtime.Task
	l *EventLoop
}

func (h *TaskHandle[T]) waitHandle() *runtime.WaitHandle { return h.t.SelfHandle() }
func (h *TaskHandle[T]) done() bool { return h.t.IsComplete() }
func (h *TaskHandle[T]) task() *runtime.Task { return h.t }
func (h *TaskHandle[T]) owner() *EventLoop { return h.l }

// GetResult returns the task's outcome. Valid only once the task is
// complete; panics otherwise (propagated from runtime.Result.Take).
func (h *TaskHandle[T]) GetResult() (T, error) {
	v, err := h.t.GetResult()
	var zero T
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	return v.(T), nil
}

// IsComplete reports whether the task has finished.
func (h *TaskHandle[T]) IsComplete() bool { return h.t.IsComplete() }

// ID returns the task's identity, for logging and the CLI inspector.
func (h *TaskHandle[T]) ID() uint64 { return uint64(h.t.ID()) }
