package speech

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// Narration voice: slow and low.
const (
	DefaultRate  = 0.8
	DefaultPitch = 0.5
)

// Narrator reads text through the shared engine. Speak never fails: a
// narration problem is logged and the caller carries on.
type Narrator struct {
	engine Engine
	log    *slog.Logger
}

// NewNarrator wraps engine. A nil engine is allowed and makes every Speak
// return immediately.
func NewNarrator(engine Engine, logger *slog.Logger) *Narrator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Narrator{engine: engine, log: logger}
}

// Available reports whether an engine is attached.
func (n *Narrator) Available() bool {
	return n != nil && n.engine != nil
}

// Speak cancels whatever is playing, reads text and blocks until the
// utterance ends or ctx is done. On ctx cancellation the utterance is
// stopped before Speak returns.
func (n *Narrator) Speak(ctx context.Context, text string) {
	if !n.Available() {
		if n != nil {
			n.log.Debug("speech engine unavailable, skipping narration")
		}
		return
	}

	n.engine.Cancel()
	done := n.engine.Speak(Utterance{Text: text, Rate: DefaultRate, Pitch: DefaultPitch})

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, ErrInterrupted) {
			n.log.Error("narration failed", "error", err)
		}
	case <-ctx.Done():
		n.engine.Cancel()
	}
}

// Cancel stops the current utterance. Safe to call when idle.
func (n *Narrator) Cancel() {
	if n.Available() {
		n.engine.Cancel()
	}
}

// Speaking reports whether the engine is still reading.
func (n *Narrator) Speaking() bool {
	return n.Available() && n.engine.Speaking()
}
