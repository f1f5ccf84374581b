package speech

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeEngine finishes an utterance when finish is called, or immediately
// when auto is set.
type fakeEngine struct {
	mu       sync.Mutex
	spoken   []Utterance
	cancels  int
	pending  chan error
	auto     error
	autoDone bool
}

func (f *fakeEngine) Speak(u Utterance) <-chan error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spoken = append(f.spoken, u)
	ch := make(chan error, 1)
	if f.autoDone {
		ch <- f.auto
		return ch
	}
	f.pending = ch
	return ch
}

func (f *fakeEngine) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels++
	if f.pending != nil {
		f.pending <- ErrInterrupted
		f.pending = nil
	}
}

func (f *fakeEngine) Speaking() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending != nil
}

func TestNarrator_NilEngineResolvesImmediately(t *testing.T) {
	n := NewNarrator(nil, nil)
	require.False(t, n.Available())

	start := time.Now()
	n.Speak(context.Background(), "hello")
	require.Less(t, time.Since(start), 10*time.Millisecond)
	require.False(t, n.Speaking())
	n.Cancel()
}

func TestNarrator_CancelsBeforeSpeakingAndUsesVoice(t *testing.T) {
	engine := &fakeEngine{autoDone: true}
	n := NewNarrator(engine, nil)

	n.Speak(context.Background(), "first")
	n.Speak(context.Background(), "second")

	require.Equal(t, 2, engine.cancels, "each Speak must clear the engine first")
	require.Len(t, engine.spoken, 2)
	require.Equal(t, "second", engine.spoken[1].Text)
	require.Equal(t, DefaultRate, engine.spoken[0].Rate)
	require.Equal(t, DefaultPitch, engine.spoken[0].Pitch)
}

func TestNarrator_EngineErrorIsLoggedNotReturned(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	engine := &fakeEngine{autoDone: true, auto: errors.New("not-allowed")}

	NewNarrator(engine, logger).Speak(context.Background(), "text")
	require.Contains(t, buf.String(), "narration failed")
	require.Contains(t, buf.String(), "not-allowed")
}

func TestNarrator_ContextCancelStopsUtterance(t *testing.T) {
	engine := &fakeEngine{}
	n := NewNarrator(engine, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	returned := make(chan struct{})
	go func() {
		n.Speak(ctx, "a very long explanation")
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Speak did not return after ctx cancellation")
	}
	require.False(t, n.Speaking())
	require.Equal(t, 2, engine.cancels)
}

func TestNarrator_ResolvesOnCompletion(t *testing.T) {
	engine := &fakeEngine{}
	n := NewNarrator(engine, nil)

	returned := make(chan struct{})
	go func() {
		n.Speak(context.Background(), "text")
		close(returned)
	}()

	require.Eventually(t, n.Speaking, time.Second, time.Millisecond)
	engine.mu.Lock()
	engine.pending <- nil
	engine.pending = nil
	engine.mu.Unlock()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Speak did not return after completion")
	}
}

func TestProfiles_VoiceMapping(t *testing.T) {
	u := Utterance{Text: "hi", Rate: DefaultRate, Pitch: DefaultPitch}

	espeak, ok := ProfileByName("espeak-ng")
	require.True(t, ok)
	require.Equal(t, []string{"-s", "140", "-p", "25", "--stdin"}, espeak.Args(u))

	spd, ok := ProfileByName("spd-say")
	require.True(t, ok)
	require.Equal(t, []string{"--wait", "-r", "-20", "-p", "-50", "--", "hi"}, spd.Args(u))

	say, ok := ProfileByName("say")
	require.True(t, ok)
	require.Equal(t, []string{"-r", "140", "-f", "-"}, say.Args(u))

	_, ok = ProfileByName("hal9000")
	require.False(t, ok)
}

func TestDetectEngine_NoneAndUnknown(t *testing.T) {
	engine, err := DetectEngine("none")
	require.NoError(t, err)
	require.Nil(t, engine)

	_, err = DetectEngine("hal9000")
	require.Error(t, err)
}

func shellEngine(t *testing.T, script string) *ExecEngine {
	t.Helper()
	path, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return NewExecEngine(path, Profile{
		Name: "sh",
		Args: func(Utterance) []string { return []string{"-c", script} },
	})
}

func TestExecEngine_CompletionAndFailure(t *testing.T) {
	ok := shellEngine(t, "exit 0")
	require.NoError(t, <-ok.Speak(Utterance{Text: "x"}))
	require.False(t, ok.Speaking())

	bad := shellEngine(t, "exit 3")
	err := <-bad.Speak(Utterance{Text: "x"})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInterrupted)
}

func TestExecEngine_CancelInterrupts(t *testing.T) {
	engine := shellEngine(t, "sleep 30")
	done := engine.Speak(Utterance{Text: "x"})
	require.True(t, engine.Speaking())

	engine.Cancel()
	require.False(t, engine.Speaking())

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrInterrupted)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled utterance never reported")
	}

	// Cancel when idle is a no-op.
	engine.Cancel()
}
