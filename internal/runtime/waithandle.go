package runtime

// HandleID uniquely identifies a WaitHandle within the Executor that
// created it.
type HandleID uint64

// WaitHandle is a rendezvous object: a task attaches to it to block, and is
// woken when the handle is detached. Identity is by ID alone, even across
// copies — callers should treat WaitHandle as owned by a single holder
// (a Task's self-handle, a sleep entry, a Lock) and pass pointers.
type WaitHandle struct {
	id      HandleID
	owner   *Executor
	waiters []*Task
}

// ID returns the handle's identity.
func (h *WaitHandle) ID() HandleID {
	return h.id
}

// WaiterCount returns the number of attached waiters, counted with
// multiplicity (one entry per Attach call).
func (h *WaitHandle) WaiterCount() int {
	return len(h.waiters)
}

// Reset clears the waiter list without touching waiter counts. Callers
// must ensure no one is attached; this is asserted.
func (h *WaitHandle) Reset() {
	if len(h.waiters) != 0 {
		panic(ContractViolationError{Op: "WaitHandle.Reset", Reason: "waiters still attached"})
	}
	h.waiters = nil
}
