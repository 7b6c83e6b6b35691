package ell

import (
	"context"
	"testing"
)

func TestConditionVariableWaitNotify(t *testing.T) {
	l := NewEventLoop()
	lk := NewLock(l)
	cv := NewConditionVariable(l)
	ready := false
	var seen bool

	waiter, err := CallSoon(l, func(ctx context.Context) (struct{}, error) {
		if err := lk.Lock(ctx); err != nil {
			return struct{}{}, err
		}
		for !ready {
			if err := cv.Wait(ctx, lk); err != nil {
				return struct{}{}, err
			}
		}
		seen = ready
		lk.Unlock()
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	setter, err := CallSoon(l, func(ctx context.Context) (struct{}, error) {
		if err := lk.Lock(ctx); err != nil {
			return struct{}{}, err
		}
		ready = true
		lk.Unlock()
		cv.NotifyAll()
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := RunUntilComplete(l, setter); err != nil {
		t.Fatal(err)
	}
	if err := RunUntilComplete(l, waiter); err != nil {
		t.Fatal(err)
	}
	if !seen {
		t.Fatal("waiter never observed ready=true")
	}
}
