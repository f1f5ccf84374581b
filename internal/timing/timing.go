// Package timing holds the delay primitives the display cycle is built from.
package timing

import (
	"context"
	"sync"
	"time"
)

// Wait blocks for at least d or until ctx is done. It returns ctx.Err() when
// cancelled first and nil otherwise.
func Wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Sleep returns a task that waits for d. Handy as the timeout side of Race.
func Sleep(d time.Duration) func(context.Context) {
	return func(ctx context.Context) {
		_ = Wait(ctx, d)
	}
}

// Race runs every task on its own goroutine and returns the index of the
// first one to return. The context handed to the tasks is cancelled as soon
// as a winner is known, and Race waits for the losers to return before it
// does. If ctx ends before any task finishes, Race returns -1.
func Race(ctx context.Context, tasks ...func(context.Context)) int {
	if len(tasks) == 0 {
		return -1
	}
	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan int, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task(raceCtx)
			done <- i
		}()
	}

	winner := -1
	select {
	case winner = <-done:
	case <-ctx.Done():
	}
	cancel()
	wg.Wait()
	return winner
}
