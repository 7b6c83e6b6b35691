package ell

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ell/internal/runtime"
)

func TestQueueTryPushTryPop(t *testing.T) {
	l := NewEventLoop()
	q := NewQueue[int](l, 2)

	if !q.TryPush(1) {
		t.Fatal("expected TryPush to succeed")
	}
	if !q.TryPush(2) {
		t.Fatal("expected TryPush to succeed")
	}
	if q.TryPush(3) {
		t.Fatal("expected TryPush to fail once at capacity")
	}
	if q.Len() != 2 {
		t.Fatalf("got len %d, want 2", q.Len())
	}

	v, ok := q.TryPop()
	if !ok || v != 1 {
		t.Fatalf("got (%d, %v), want (1, true)", v, ok)
	}
}

func TestQueuePushBlocksUntilRoom(t *testing.T) {
	l := NewEventLoop()
	q := NewQueue[int](l, 1)
	var produced []int

	producer, err := CallSoon(l, func(ctx context.Context) (struct{}, error) {
		for i := 0; i < 3; i++ {
			if err := q.Push(ctx, i); err != nil {
				return struct{}{}, err
			}
			produced = append(produced, i)
		}
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	consumer, err := CallSoon(l, func(ctx context.Context) (struct{}, error) {
		for i := 0; i < 3; i++ {
			if _, err := q.Pop(ctx); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := RunUntilComplete(l, consumer); err != nil {
		t.Fatal(err)
	}
	if err := RunUntilComplete(l, producer); err != nil {
		t.Fatal(err)
	}

	if len(produced) != 3 {
		t.Fatalf("got %v, want 3 items produced", produced)
	}
}

// TestQueueS5ProducerSleepsBeforePushing encodes the queue-wait scenario:
// the pusher sleeps 2500ms then pushes 42, 21 back to back; the popper's
// first pop returns 42 no earlier than 2500ms in, and its second pop
// returns 21 within 5ms of the first, since nothing separates the two
// pushes but uncontended lock/notify traffic on the virtual clock.
func TestQueueS5ProducerSleepsBeforePushing(t *testing.T) {
	clock := &runtime.VirtualClock{}
	l := NewEventLoop(WithClock(clock))
	q := NewQueue[int](l, 0)
	start := clock.NowMs()

	var firstPopAt, secondPopAt uint64

	producer, err := CallSoon(l, func(ctx context.Context) (struct{}, error) {
		if err := Sleep(ctx, 2500*time.Millisecond); err != nil {
			return struct{}{}, err
		}
		if err := q.Push(ctx, 42); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, q.Push(ctx, 21)
	})
	if err != nil {
		t.Fatal(err)
	}

	consumer, err := CallSoon(l, func(ctx context.Context) (struct{}, error) {
		v, err := q.Pop(ctx)
		if err != nil {
			return struct{}{}, err
		}
		firstPopAt = clock.NowMs()
		if v != 42 {
			return struct{}{}, fmt.Errorf("first pop got %d, want 42", v)
		}

		v, err = q.Pop(ctx)
		if err != nil {
			return struct{}{}, err
		}
		secondPopAt = clock.NowMs()
		if v != 21 {
			return struct{}{}, fmt.Errorf("second pop got %d, want 21", v)
		}
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := RunUntilComplete(l, consumer); err != nil {
		t.Fatal(err)
	}
	if _, err := consumer.GetResult(); err != nil {
		t.Fatal(err)
	}
	if err := RunUntilComplete(l, producer); err != nil {
		t.Fatal(err)
	}

	if elapsed := firstPopAt - start; elapsed < 2500 {
		t.Fatalf("first pop after %dms, want >= 2500ms", elapsed)
	}
	if gap := secondPopAt - firstPopAt; gap > 5 {
		t.Fatalf("second pop %dms after first, want <= 5ms", gap)
	}
}

func TestQueueUnboundedNeverBlocksOnPush(t *testing.T) {
	l := NewEventLoop()
	q := NewQueue[int](l, 0)
	for i := 0; i < 100; i++ {
		if !q.TryPush(i) {
			t.Fatalf("unbounded queue rejected push %d", i)
		}
	}
	if q.Len() != 100 {
		t.Fatalf("got len %d, want 100", q.Len())
	}
}
