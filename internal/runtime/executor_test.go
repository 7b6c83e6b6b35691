package runtime

import (
	"testing"
)

func runToIdle(e *Executor, max int) {
	for i := 0; i < max && !e.Idle(); i++ {
		e.Iteration()
	}
}

func TestSpawnAndComplete(t *testing.T) {
	e := NewExecutor(Config{Clock: &VirtualClock{}})
	task, err := e.Spawn(func(t *Task) (any, error) {
		return 99, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	runToIdle(e, 10)
	if !task.IsComplete() {
		t.Fatal("task did not complete")
	}
	v, err := task.GetResult()
	if err != nil {
		t.Fatal(err)
	}
	if v != 99 {
		t.Fatalf("got %v, want 99", v)
	}
}

func TestAttachDetachMovesTaskOutOfActive(t *testing.T) {
	e := NewExecutor(Config{Clock: &VirtualClock{}})
	gate := e.NewHandle()
	started := make(chan struct{})
	released := make(chan struct{})

	task, err := e.Spawn(func(t *Task) (any, error) {
		close(started)
		e.Attach(gate, t)
		t.Suspend()
		close(released)
		return nil, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// First iteration starts the task and lets it attach+suspend; the
	// resulting dirty state is reclassified at the start of the next
	// iteration, not mid-round (spec §4.5/§9: reclassification deferred).
	e.Iteration()
	<-started
	e.Iteration()

	if task.Active() {
		t.Fatal("task should be inactive while parked on gate")
	}

	e.Detach(gate)
	runToIdle(e, 10)
	<-released
	if !task.IsComplete() {
		t.Fatal("task did not complete after detach")
	}
}

func TestPoolExhaustion(t *testing.T) {
	e := NewExecutor(Config{Clock: &VirtualClock{}, MaxTasks: 1})
	if _, err := e.Spawn(func(t *Task) (any, error) { return nil, nil }); err != nil {
		t.Fatal(err)
	}
	_, err := e.Spawn(func(t *Task) (any, error) { return nil, nil })
	if _, ok := err.(PoolExhaustedError); !ok {
		t.Fatalf("expected PoolExhaustedError, got %v", err)
	}
}

func TestCancelWakesParkedTask(t *testing.T) {
	e := NewExecutor(Config{Clock: &VirtualClock{}})
	gate := e.NewHandle()

	task, err := e.Spawn(func(t *Task) (any, error) {
		e.Attach(gate, t)
		t.Suspend()
		t.CheckCancel()
		return nil, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	e.Iteration()
	e.Cancel(task)
	runToIdle(e, 10)
	if !task.IsComplete() {
		t.Fatal("cancelled task did not complete")
	}
	_, err = task.GetResult()
	if _, ok := err.(Cancelled); !ok {
		t.Fatalf("expected Cancelled, got %v", err)
	}
}

func TestSleepWakesViaVirtualClock(t *testing.T) {
	clock := &VirtualClock{}
	e := NewExecutor(Config{Clock: clock})

	task, err := e.Spawn(func(t *Task) (any, error) {
		h := e.NewHandle()
		e.ScheduleSleep(h, 1000)
		e.Attach(h, t)
		t.Suspend()
		return "woke", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	runToIdle(e, 20)
	if !task.IsComplete() {
		t.Fatal("sleeping task never woke")
	}
	v, err := task.GetResult()
	if err != nil {
		t.Fatal(err)
	}
	if v != "woke" {
		t.Fatalf("got %v", v)
	}
}
