package runtime

import "fmt"

// ContractViolationError reports misuse of the runtime's API contract:
// double-store into a result slot, decrementing a wait count below zero,
// resuming a completed task, detaching an unlocked lock, or cross-executor
// use of a task or wait handle. These are unrecoverable by design; Go has
// no separate release-mode elision worth adding, so the check always runs
// and always panics, mirroring the standard library's own convention for
// misuse of sync.Mutex.
type ContractViolationError struct {
	Op     string
	Reason string
}

func (e ContractViolationError) Error() string {
	return fmt.Sprintf("ell: contract violation in %s: %s", e.Op, e.Reason)
}

// Cancelled is raised inside a task's goroutine at its next suspension
// point after RequestCancel has been observed, and is stored as the task's
// failure.
type Cancelled struct {
	TaskID TaskID
}

func (e Cancelled) Error() string {
	return fmt.Sprintf("ell: task %d cancelled", e.TaskID)
}

// cancelledPanic is the sentinel panic value suspension points raise to
// unwind a cancelled task's goroutine; Task.run recovers it and stores it
// as the task's failure. It is never observed outside this package.
type cancelledPanic struct {
	err Cancelled
}
