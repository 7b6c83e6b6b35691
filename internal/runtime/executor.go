package runtime

import "math/rand"

// Config controls executor scheduling behavior, grounded on the teacher's
// asyncrt.Config{Deterministic,Fuzz,Seed}.
type Config struct {
	// MaxTasks caps the number of simultaneously live tasks; 0 means
	// unbounded. Exceeding it makes Spawn return PoolExhaustedError.
	MaxTasks int
	// Fuzz, when true, randomizes the iteration order of the active-set
	// snapshot each round instead of preserving submission order, for
	// chaos-testing scheduling assumptions. Default is deterministic FIFO.
	Fuzz bool
	Seed uint64
	// Clock supplies time; defaults to RealClock.
	Clock Clock
	// Log receives structured trace events; defaults to NopSink.
	Log Sink
}

// Executor is the scheduler: the active/inactive task sets, the new/
// completed/dirty staging sets, the sleep-entry heap, and the task
// currently executing, if any. One Executor is bound to the OS
// thread/goroutine that calls RunUntilComplete and must not be driven from
// any other goroutine concurrently (spec §5 thread-affinity invariant).
type Executor struct {
	cfg Config

	nextTaskID   TaskID
	nextHandleID HandleID
	nextTimerID  TimerID

	active   taskSet
	inactive taskSet

	newTasks       []*Task
	completedTasks []*Task
	dirtyTasks     []*Task

	timers     sleepHeap
	timersByID map[TimerID]*sleepEntry

	current *Task

	maxTasks  int
	liveTasks int

	clock Clock
	log   Sink
	rng   *rand.Rand
}

// NewExecutor constructs a scheduler bound to the calling goroutine.
func NewExecutor(cfg Config) *Executor {
	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}
	if cfg.Log == nil {
		cfg.Log = NopSink{}
	}
	e := &Executor{
		cfg:        cfg,
		timersByID: make(map[TimerID]*sleepEntry),
		active:     newTaskSet(),
		inactive:   newTaskSet(),
		maxTasks:   cfg.MaxTasks,
		clock:      cfg.Clock,
		log:        cfg.Log,
	}
	if cfg.Fuzz {
		seed := cfg.Seed
		if seed == 0 {
			seed = 1
		}
		e.rng = rand.New(rand.NewSource(int64(seed))) //nolint:gosec // deterministic scheduler seed, not cryptographic
	}
	return e
}

// Clock exposes the executor's time source (needed by Sleep's caller to
// compute an absolute deadline).
func (e *Executor) Clock() Clock { return e.clock }

// Current returns the task whose goroutine is executing, or nil.
func (e *Executor) Current() *Task { return e.current }

// NewHandle allocates a fresh WaitHandle owned by this executor.
func (e *Executor) NewHandle() *WaitHandle {
	e.nextHandleID++
	return &WaitHandle{id: e.nextHandleID, owner: e}
}

// Spawn builds a Task wrapping entry and stages it for the next iteration
// (spec §4.6 call_soon). Returns PoolExhaustedError synchronously if the
// task-record pool has no capacity.
func (e *Executor) Spawn(entry Entry) (*Task, error) {
	t, err := e.acquireTask()
	if err != nil {
		return nil, err
	}
	e.nextTaskID++
	t.id = e.nextTaskID
	t.owner = e
	t.entry = entry
	t.self = e.NewHandle()
	e.newTasks = append(e.newTasks, t)
	e.emit("spawn", t.id, nil)
	return t, nil
}

// Attach marks task as waiting on handle (spec §4.4 attach).
func (e *Executor) Attach(handle *WaitHandle, t *Task) {
	if handle.owner != nil && handle.owner != e {
		panic(ContractViolationError{Op: "Executor.Attach", Reason: "wait handle belongs to a different executor"})
	}
	if t.owner != e {
		panic(ContractViolationError{Op: "Executor.Attach", Reason: "task belongs to a different executor"})
	}
	t.IncrWaitCount()
	handle.waiters = append(handle.waiters, t)
	t.parkedOn = append(t.parkedOn, handle)
}

// Detach wakes every waiter on handle (spec §4.4 detach): wake-all, no
// wake-one at this layer.
func (e *Executor) Detach(handle *WaitHandle) {
	waiters := handle.waiters
	handle.waiters = nil
	for _, w := range waiters {
		w.DecrWaitCount()
		w.removeParkedOn(handle)
	}
}

// DetachOne wakes at most the earliest-attached waiter on handle, for
// condition-variable notify-one semantics; Detach itself is always wake-all
// (spec §4.4 has no notion of notify-one, so this lives above that layer).
// Reports whether a waiter was woken.
func (e *Executor) DetachOne(handle *WaitHandle) bool {
	if len(handle.waiters) == 0 {
		return false
	}
	w := handle.waiters[0]
	handle.waiters = handle.waiters[1:]
	w.DecrWaitCount()
	w.removeParkedOn(handle)
	return true
}

func (t *Task) removeParkedOn(h *WaitHandle) {
	for i, p := range t.parkedOn {
		if p == h {
			t.parkedOn = append(t.parkedOn[:i], t.parkedOn[i+1:]...)
			return
		}
	}
}

func (e *Executor) markDirty(t *Task) {
	if t.dirty {
		return
	}
	t.dirty = true
	e.dirtyTasks = append(e.dirtyTasks, t)
}

// Cancel sets t's cancellation flag and, if it is currently parked on any
// handle, detaches those handles so it is resumed no later than the next
// iteration (spec §4.6 cancel, §8 property 5).
func (e *Executor) Cancel(t *Task) {
	if t.complete {
		return
	}
	t.RequestCancel()
	for _, h := range append([]*WaitHandle(nil), t.parkedOn...) {
		e.Detach(h)
	}
}

// Iteration runs one full scheduler cycle per spec §4.5, in strict order:
// reclassify dirty tasks, merge staging, wake timers, idle-sleep, run a
// round over a snapshot of the active set.
func (e *Executor) Iteration() {
	e.reclassifyDirty()
	e.mergeStaging()
	e.wakeTimers()
	e.idleSleep()
	e.runRound()
}

func (e *Executor) reclassifyDirty() {
	if e.current != nil {
		panic(ContractViolationError{Op: "Executor.reclassifyDirty", Reason: "called while a task is executing"})
	}
	for _, t := range e.dirtyTasks {
		t.dirty = false
		switch {
		case t.waitCount == 0 && !t.active:
			e.inactive.Remove(t)
			e.active.Add(t)
			t.active = true
		case t.waitCount > 0 && t.active:
			e.active.Remove(t)
			e.inactive.Add(t)
			t.active = false
		}
	}
	e.dirtyTasks = e.dirtyTasks[:0]
}

func (e *Executor) mergeStaging() {
	for _, t := range e.newTasks {
		t.active = true
		e.active.Add(t)
	}
	e.newTasks = e.newTasks[:0]

	for _, t := range e.completedTasks {
		e.active.Remove(t)
		e.inactive.Remove(t)
	}
	e.completedTasks = e.completedTasks[:0]
}

func (e *Executor) idleSleep() {
	// A task dirtied by wakeTimers this same iteration has not been
	// reclassified into active yet, but it will be on the very next
	// iteration without any further time passing — sleeping here anyway
	// would skip straight past it to whatever deadline comes after.
	if e.active.Len() > 0 || len(e.dirtyTasks) > 0 {
		return
	}
	deadline, ok := e.NextDeadlineMs()
	if !ok {
		return
	}
	e.clock.SleepUntilMs(deadline)
}

func (e *Executor) runRound() {
	snapshot := e.active.Snapshot()
	if e.rng != nil && len(snapshot) > 1 {
		e.rng.Shuffle(len(snapshot), func(i, j int) {
			snapshot[i], snapshot[j] = snapshot[j], snapshot[i]
		})
	}
	for _, t := range snapshot {
		if t.complete {
			continue
		}
		e.current = t
		t.Resume()
		e.current = nil

		if t.IsComplete() {
			e.taskCompleted(t)
		}
	}
}

func (e *Executor) taskCompleted(t *Task) {
	e.Detach(t.self)
	e.completedTasks = append(e.completedTasks, t)
	e.liveTasks--
	e.emit("complete", t.id, nil)
}

// Idle reports whether there is nothing left to schedule: no newly
// spawned, active, or parked tasks and no pending sleep entries.
func (e *Executor) Idle() bool {
	_, hasTimer := e.NextDeadlineMs()
	return len(e.newTasks) == 0 && e.active.Len() == 0 && e.inactive.Len() == 0 && !hasTimer
}

// Snapshot describes the executor's current membership, for debugging and
// the cmd/coopctl inspector/monitor.
type Snapshot struct {
	Active      int
	Inactive    int
	Sleeping    int
	NextTimerMs uint64
	HasTimer    bool
}

func (e *Executor) Snapshot() Snapshot {
	deadline, ok := e.NextDeadlineMs()
	return Snapshot{
		Active:      e.active.Len(),
		Inactive:    e.inactive.Len(),
		Sleeping:    len(e.timers),
		NextTimerMs: deadline,
		HasTimer:    ok,
	}
}
