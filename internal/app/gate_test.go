package app

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakePrompt struct {
	mu      sync.Mutex
	visible []bool
}

func (p *fakePrompt) SetPromptVisible(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = append(p.visible, v)
}

func (p *fakePrompt) calls() []bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]bool(nil), p.visible...)
}

type fakeVoice struct {
	mu        sync.Mutex
	spoken    []string
	spokeAt   time.Time
	available bool
}

func (v *fakeVoice) Speak(_ context.Context, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.spoken = append(v.spoken, text)
	v.spokeAt = time.Now()
}

func (v *fakeVoice) Available() bool { return v.available }

func (v *fakeVoice) said() ([]string, time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.spoken...), v.spokeAt
}

type countingLoop struct {
	runs      atomic.Int32
	startedAt atomic.Int64
}

func (l *countingLoop) run(ctx context.Context) error {
	l.runs.Add(1)
	l.startedAt.Store(time.Now().UnixNano())
	<-ctx.Done()
	return ctx.Err()
}

func TestGate_OpenFiresOnce(t *testing.T) {
	prompt := &fakePrompt{}
	voice := &fakeVoice{available: true}
	loop := &countingLoop{}
	gate := NewGate(prompt, voice, loop.run, nil)
	gate.settle = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.False(t, gate.Started())
	require.True(t, gate.Open(ctx))
	require.False(t, gate.Open(ctx))
	require.False(t, gate.StartWithoutPrompt(ctx))
	require.True(t, gate.Started())

	require.Eventually(t, func() bool { return loop.runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	require.ErrorIs(t, gate.Wait(), context.Canceled)
	require.Equal(t, int32(1), loop.runs.Load())
	require.Equal(t, []bool{false}, prompt.calls())

	spoken, spokeAt := voice.said()
	require.Equal(t, []string{UnlockPhrase}, spoken)
	started := time.Unix(0, loop.startedAt.Load())
	require.GreaterOrEqual(t, started.Sub(spokeAt), gate.settle)
}

func TestGate_StartWithoutPromptSkipsUnlock(t *testing.T) {
	prompt := &fakePrompt{}
	voice := &fakeVoice{}
	loop := &countingLoop{}
	gate := NewGate(prompt, voice, loop.run, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.True(t, gate.StartWithoutPrompt(ctx))
	require.False(t, gate.Open(ctx))

	require.Eventually(t, func() bool { return loop.runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-gate.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not stop after cancel")
	}
	spoken, _ := voice.said()
	require.Empty(t, spoken)
	require.Equal(t, []bool{false}, prompt.calls())
}

func TestGate_CancelDuringSettleSkipsLoop(t *testing.T) {
	loop := &countingLoop{}
	gate := NewGate(&fakePrompt{}, nil, loop.run, nil)
	gate.settle = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	require.True(t, gate.Open(ctx))
	cancel()

	require.ErrorIs(t, gate.Wait(), context.Canceled)
	require.Zero(t, loop.runs.Load())
}

func TestGate_WaitWithoutStartReturnsImmediately(t *testing.T) {
	gate := NewGate(&fakePrompt{}, nil, func(context.Context) error { return nil }, nil)
	require.NoError(t, gate.Wait())
}
