package runtime

import (
	"testing"

	"pgregory.net/rapid"
)

// TestWaitCountInvariant checks, across random sequences of spawn/attach/
// detach/iteration operations, that a task's membership in the active set
// always agrees with its wait count once pending dirty reclassification
// has been flushed: active iff waitCount == 0. Grounded on the
// action-map/invariant-closure shape of gosim's timer-heap rapid test.
func TestWaitCountInvariant(t *testing.T) {
	rapid.Check(t, checkWaitCountInvariant)
}

func checkWaitCountInvariant(t *rapid.T) {
	e := NewExecutor(Config{Clock: &VirtualClock{}})
	var tasks []*Task
	var handles []*WaitHandle

	spawnOne := func(t *rapid.T) {
		task, err := e.Spawn(func(tk *Task) (any, error) {
			for {
				tk.Suspend()
			}
		})
		if err != nil {
			return
		}
		tasks = append(tasks, task)
		// Drive one iteration so the task is merged into the active set
		// and runs to its first suspension point before anything else in
		// this property test tries to Attach it directly: Attach/Detach
		// are scheduler-internal protocol normally only invoked from a
		// task's own running goroutine (spec §4.4), never before it has
		// started.
		e.Iteration()
	}

	actions := map[string]func(*rapid.T){
		"spawn": spawnOne,
		"new_handle": func(t *rapid.T) {
			handles = append(handles, e.NewHandle())
		},
		"attach": func(t *rapid.T) {
			if len(tasks) == 0 || len(handles) == 0 {
				t.Skip()
			}
			task := rapid.SampledFrom(tasks).Draw(t, "task")
			handle := rapid.SampledFrom(handles).Draw(t, "handle")
			if task.complete {
				t.Skip()
			}
			e.Attach(handle, task)
		},
		"detach": func(t *rapid.T) {
			if len(handles) == 0 {
				t.Skip()
			}
			handle := rapid.SampledFrom(handles).Draw(t, "handle")
			e.Detach(handle)
		},
		"iteration": func(t *rapid.T) {
			e.Iteration()
		},
		"check_invariant": func(t *rapid.T) {
			e.reclassifyDirty()
			for _, task := range tasks {
				if task.complete || !(e.active.Contains(task) || e.inactive.Contains(task)) {
					continue
				}
				wantActive := task.waitCount == 0
				if task.active != wantActive {
					t.Fatalf("task %d: active=%v but waitCount=%d", task.id, task.active, task.waitCount)
				}
			}
		},
	}

	t.Repeat(actions)
}
