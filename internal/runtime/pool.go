package runtime

import "fmt"

// PoolExhaustedError is returned synchronously from Spawn when the
// executor has MaxTasks tasks already live, mirroring spec §7's "Pool
// exhaustion... reported as a constructor failure (call_soon fails
// synchronously)". Grounded on the teacher's TaskBuilder/boost::pool
// allocator and b97tsk-async's sync.Pool-based task recycling, with one
// deliberate departure: a completed task's record is never handed back
// for reuse while any TaskHandle might still read it, so liveTasks is a
// plain counter rather than sync.Pool occupancy. Go's own allocator (and
// the task's goroutine stack, already reclaimed by the runtime once it
// returns) is the pool; MaxTasks bounds concurrency, not allocation
// reuse.
type PoolExhaustedError struct {
	MaxTasks int
}

func (e PoolExhaustedError) Error() string {
	return fmt.Sprintf("ell: task pool exhausted (max %d live tasks)", e.MaxTasks)
}

func (e *Executor) acquireTask() (*Task, error) {
	if e.maxTasks > 0 && e.liveTasks >= e.maxTasks {
		return nil, PoolExhaustedError{MaxTasks: e.maxTasks}
	}
	e.liveTasks++
	return &Task{}, nil
}
