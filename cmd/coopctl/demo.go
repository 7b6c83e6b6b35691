package main

import (
	"context"
	"fmt"
	"time"

	"ell"
)

// buildDemoLoop wires a small producer/consumer scenario exercising every
// primitive this CLI exists to demonstrate: Sleep, a bounded Queue guarded
// by its Lock/ConditionVariable, and plain task composition via WaitFor.
func buildDemoLoop(opts ...ell.Option) (*ell.EventLoop, *ell.TaskHandle[string]) {
	loop := ell.NewEventLoop(opts...)
	q := ell.NewQueue[int](loop, 9)

	var producers []*ell.TaskHandle[struct{}]
	for i := 0; i < 3; i++ {
		i := i
		h, err := ell.CallSoon(loop, func(ctx context.Context) (struct{}, error) {
			if err := ell.Sleep(ctx, time.Duration(i*10)*time.Millisecond); err != nil {
				return struct{}{}, err
			}
			for j := 0; j < 3; j++ {
				if err := q.Push(ctx, i*10+j); err != nil {
					return struct{}{}, err
				}
				if err := ell.Yield(ctx); err != nil {
					return struct{}{}, err
				}
			}
			return struct{}{}, nil
		})
		if err != nil {
			continue
		}
		producers = append(producers, h)
	}

	summary, _ := ell.CallSoon(loop, func(ctx context.Context) (string, error) {
		awaited := make([]ell.Awaitable, len(producers))
		for i, p := range producers {
			awaited[i] = p
		}
		if err := ell.WaitFor(ctx, awaited...); err != nil {
			return "", err
		}
		total := 0
		for {
			v, ok := q.TryPop()
			if !ok {
				break
			}
			total += v
		}
		return fmt.Sprintf("consumed total=%d", total), nil
	})

	return loop, summary
}
