package runtime

import "container/heap"

// TimerID identifies a scheduled sleep entry.
type TimerID uint64

// sleepEntry pairs a wait handle with an absolute wake deadline, owned by
// the Executor's timer service. Grounded on the teacher's
// internal/asyncrt/timer.go container/heap-based Timer.
type sleepEntry struct {
	id         TimerID
	deadlineMs uint64
	handle     *WaitHandle
	cancelled  bool
}

type sleepHeap []*sleepEntry

func (h sleepHeap) Len() int { return len(h) }

func (h sleepHeap) Less(i, j int) bool {
	if h[i].deadlineMs == h[j].deadlineMs {
		return h[i].id < h[j].id
	}
	return h[i].deadlineMs < h[j].deadlineMs
}

func (h sleepHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *sleepHeap) Push(x any) {
	entry, ok := x.(*sleepEntry)
	if !ok {
		return
	}
	*h = append(*h, entry)
}

func (h *sleepHeap) Pop() any {
	old := *h
	n := len(old)
	if n == 0 {
		return (*sleepEntry)(nil)
	}
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// ScheduleSleep registers a sleep entry for deadlineMs and returns its id.
func (e *Executor) ScheduleSleep(handle *WaitHandle, deadlineMs uint64) TimerID {
	e.nextTimerID++
	id := e.nextTimerID
	entry := &sleepEntry{id: id, deadlineMs: deadlineMs, handle: handle}
	e.timersByID[id] = entry
	heap.Push(&e.timers, entry)
	return id
}

// CancelSleep marks a sleep entry cancelled; it is dropped the next time
// the timer heap is drained.
func (e *Executor) CancelSleep(id TimerID) {
	entry, ok := e.timersByID[id]
	if !ok {
		return
	}
	entry.cancelled = true
	delete(e.timersByID, id)
}

// NextDeadlineMs returns the earliest pending (non-cancelled) deadline and
// true, or (0, false) if no sleep entries remain.
func (e *Executor) NextDeadlineMs() (uint64, bool) {
	for len(e.timers) > 0 {
		top := e.timers[0]
		if top.cancelled {
			heap.Pop(&e.timers)
			continue
		}
		return top.deadlineMs, true
	}
	return 0, false
}

// wakeTimers detaches the wait handle of every sleep entry whose deadline
// has passed, per spec §4.5 step 3.
func (e *Executor) wakeTimers() {
	now := e.clock.NowMs()
	for len(e.timers) > 0 {
		top := e.timers[0]
		if top.cancelled {
			heap.Pop(&e.timers)
			continue
		}
		if top.deadlineMs > now {
			break
		}
		heap.Pop(&e.timers)
		delete(e.timersByID, top.id)
		e.Detach(top.handle)
	}
}
