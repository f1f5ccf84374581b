package app

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/five82/stargazer/internal/logging"
	"github.com/five82/stargazer/internal/timing"
)

const (
	// UnlockPhrase is spoken once when the viewer starts the show.
	UnlockPhrase = "System activated. Processing astronomical data."
	// UnlockSettle is the pause between the unlock phrase and the first cycle.
	UnlockSettle = 600 * time.Millisecond
)

// Prompt is the start screen the gate hides. *state.Store implements it.
type Prompt interface {
	SetPromptVisible(visible bool)
}

// Voice speaks the unlock phrase. *speech.Narrator implements it.
type Voice interface {
	Speak(ctx context.Context, text string)
	Available() bool
}

// Gate starts the screensaver loop exactly once, either from the first key
// press on the start screen or directly when there is no screen to press.
type Gate struct {
	prompt Prompt
	voice  Voice
	loop   func(context.Context) error
	settle time.Duration
	log    *slog.Logger

	once    sync.Once
	started atomic.Bool
	done    chan struct{}
	err     error
}

// NewGate returns a closed gate. loop runs once the gate opens.
func NewGate(prompt Prompt, voice Voice, loop func(context.Context) error, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Gate{
		prompt: prompt,
		voice:  voice,
		loop:   loop,
		settle: UnlockSettle,
		log:    logger,
		done:   make(chan struct{}),
	}
}

// Open handles the viewer's gesture. Only the first call does anything; it
// hides the prompt, then speaks the unlock phrase, pauses and runs the loop
// in the background. Open returns true for the call that fired.
func (g *Gate) Open(ctx context.Context) bool {
	fired := false
	g.once.Do(func() {
		fired = true
		g.started.Store(true)
		g.prompt.SetPromptVisible(false)
		g.log.Info("start gesture received")
		go g.run(ctx, true)
	})
	return fired
}

// StartWithoutPrompt starts the loop immediately, skipping the unlock
// phrase. It shares Open's single-fire guard.
func (g *Gate) StartWithoutPrompt(ctx context.Context) bool {
	fired := false
	g.once.Do(func() {
		fired = true
		g.started.Store(true)
		g.prompt.SetPromptVisible(false)
		if g.voice == nil || !g.voice.Available() {
			g.log.Warn("no start prompt and no speech engine, narration is disabled")
		} else {
			g.log.Warn("no start prompt, starting without the unlock phrase")
		}
		go g.run(ctx, false)
	})
	return fired
}

func (g *Gate) run(ctx context.Context, unlock bool) {
	defer close(g.done)
	if unlock {
		if g.voice != nil {
			g.voice.Speak(ctx, UnlockPhrase)
		}
		if err := timing.Wait(ctx, g.settle); err != nil {
			g.err = err
			return
		}
	}
	g.err = g.loop(ctx)
}

// Started reports whether the gate has fired.
func (g *Gate) Started() bool {
	return g.started.Load()
}

// Done is closed when the loop returns. It never closes if the gate never
// fired.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}

// Wait blocks until the loop returns and reports its error. It returns nil
// at once if the gate never fired.
func (g *Gate) Wait() error {
	if !g.Started() {
		return nil
	}
	<-g.done
	return g.err
}
