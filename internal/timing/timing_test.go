package timing

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWait_ElapsesAtLeastDuration(t *testing.T) {
	start := time.Now()
	require.NoError(t, Wait(context.Background(), 30*time.Millisecond))
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestWait_NonPositiveReturnsImmediately(t *testing.T) {
	start := time.Now()
	require.NoError(t, Wait(context.Background(), 0))
	require.NoError(t, Wait(context.Background(), -time.Second))
	require.Less(t, time.Since(start), 20*time.Millisecond)
}

func TestWait_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	start := time.Now()
	err := Wait(ctx, time.Minute)
	require.True(t, errors.Is(err, context.Canceled))
	require.Less(t, time.Since(start), time.Second)

	require.ErrorIs(t, Wait(ctx, 0), context.Canceled)
}

func TestRace_FirstFinisherWinsAndLosersAreCancelled(t *testing.T) {
	var loserCancelled atomic.Bool

	fast := func(ctx context.Context) {
		_ = Wait(ctx, 5*time.Millisecond)
	}
	slow := func(ctx context.Context) {
		if err := Wait(ctx, time.Minute); err != nil {
			loserCancelled.Store(true)
		}
	}

	start := time.Now()
	winner := Race(context.Background(), slow, fast)
	require.Equal(t, 1, winner)
	require.True(t, loserCancelled.Load(), "Race must cancel and wait for the loser")
	require.Less(t, time.Since(start), time.Second)
}

func TestRace_SleepAsTimeout(t *testing.T) {
	hang := func(ctx context.Context) { <-ctx.Done() }
	winner := Race(context.Background(), hang, Sleep(10*time.Millisecond))
	require.Equal(t, 1, winner)
}

func TestRace_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	hang := func(ctx context.Context) { <-ctx.Done() }
	// Tasks observe the cancelled context immediately; either outcome is a
	// completed race, but it must return promptly.
	start := time.Now()
	_ = Race(ctx, hang, hang)
	require.Less(t, time.Since(start), time.Second)

	require.Equal(t, -1, Race(context.Background()))
}
