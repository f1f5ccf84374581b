package cycle

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/five82/stargazer/internal/apod"
	"github.com/five82/stargazer/internal/state"
	"github.com/five82/stargazer/internal/timing"
)

// Error card text.
const (
	ErrorTitle   = "Connection error: HAL's judgement"
	ErrorDate    = "Attempting to reconnect..."
	errorDetails = "Error details: %s"
)

// Surface is the display the cycle drives. *state.Store implements it.
type Surface interface {
	BeginCycle(id string)
	SetPhase(p state.Phase)
	SetImageVisible(visible bool)
	SetCardVisible(visible bool)
	SetCaption(c state.Caption)
	ClearCaption()
	SetImage(img image.Image)
	RecordFailure(err error)
	RecordSuccess()
}

// Ensure state.Store implements Surface at compile time.
var _ Surface = (*state.Store)(nil)

// Speaker reads narration. *speech.Narrator implements it.
type Speaker interface {
	Speak(ctx context.Context, text string)
	Cancel()
	Speaking() bool
}

// Options wire an Orchestrator.
type Options struct {
	Records  apod.RecordFetcher
	Images   apod.ImageFetcher
	Narrator Speaker
	Surface  Surface
	Timings  Timings
	Logger   *slog.Logger
	Dates    func() string    // nil samples with apod.RandomDate
	Now      func() time.Time // nil uses time.Now
}

// Orchestrator runs display cycles one after another. Only one cycle is
// ever in flight: Run does not start the next until the previous returned.
type Orchestrator struct {
	records  apod.RecordFetcher
	images   apod.ImageFetcher
	narrator Speaker
	surface  Surface
	timings  Timings
	log      *slog.Logger
	dates    func() string
	now      func() time.Time
}

// New validates opts and returns an Orchestrator.
func New(opts Options) (*Orchestrator, error) {
	if opts.Records == nil {
		return nil, fmt.Errorf("cycle requires a record fetcher")
	}
	if opts.Images == nil {
		return nil, fmt.Errorf("cycle requires an image fetcher")
	}
	if opts.Narrator == nil {
		return nil, fmt.Errorf("cycle requires a narrator")
	}
	if opts.Surface == nil {
		return nil, fmt.Errorf("cycle requires a display surface")
	}
	o := &Orchestrator{
		records:  opts.Records,
		images:   opts.Images,
		narrator: opts.Narrator,
		surface:  opts.Surface,
		timings:  opts.Timings.withDefaults(),
		log:      opts.Logger,
		dates:    opts.Dates,
		now:      opts.Now,
	}
	if o.log == nil {
		o.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.dates == nil {
		o.dates = apod.RandomDate
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o, nil
}

// Run loops cycles until ctx is done and returns ctx.Err(). Each cycle picks
// the pause before the next one; failures never stop the loop.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.log.Info("screensaver loop started")
	defer func() {
		o.narrator.Cancel()
		o.surface.SetPhase(state.PhaseIdle)
		o.log.Info("screensaver loop stopped")
	}()

	for {
		delay := o.RunCycle(ctx)
		if err := timing.Wait(ctx, delay); err != nil {
			return err
		}
	}
}

// RunCycle runs RESET through FADE_OUT once and returns how long to wait
// before the next cycle: zero after a normal cycle, the short retry delay
// after a non-image record, the long retry delay after a failure.
func (o *Orchestrator) RunCycle(ctx context.Context) time.Duration {
	id := uuid.NewString()
	log := o.log.With("cycle", id[:8])
	o.surface.BeginCycle(id)

	clock := Timing{
		Start:      o.Reset(),
		cardDelay:  o.timings.CardDelay,
		cardFadeIn: o.timings.CardFadeIn,
	}

	o.enter(log, state.PhaseFetching)
	date := o.dates()
	rec, err := o.records.FetchRecord(ctx, date)
	if err != nil {
		if ctx.Err() != nil {
			return 0
		}
		return o.fail(log, date, err)
	}
	if !rec.IsImage() {
		log.Info("skipping non-image record", "date", rec.Date, "media_type", rec.MediaType)
		return o.timings.NonImageRetryDelay
	}
	o.surface.RecordSuccess()

	o.enter(log, state.PhaseLoadingImage)
	o.surface.SetCaption(state.Caption{
		Title:       rec.Title,
		Date:        rec.Date,
		Explanation: rec.Explanation,
		Credit:      rec.Credit(),
	})
	img, err := o.images.FetchImage(ctx, rec.URL)
	if err != nil {
		if ctx.Err() != nil {
			return 0
		}
		log.Warn("image load failed, showing caption only", "url", rec.URL, "error", err)
		img = nil
	}
	o.surface.SetImage(img)

	o.enter(log, state.PhaseFadeIn)
	o.surface.SetImageVisible(true)

	o.enter(log, state.PhaseCardIn)
	if timing.Wait(ctx, o.timings.CardDelay) != nil {
		return 0
	}
	o.surface.SetCardVisible(true)
	if timing.Wait(ctx, o.timings.CardFadeIn) != nil {
		return 0
	}
	clock.CardShownAt = o.now()

	o.enter(log, state.PhaseNarrating)
	o.narrate(ctx, log, rec.Narration())
	if ctx.Err() != nil {
		return 0
	}

	o.enter(log, state.PhaseHoldMin)
	if timing.Wait(ctx, clock.HoldRemaining(o.now(), o.timings.MinCardHold)) != nil {
		return 0
	}

	o.enter(log, state.PhaseCardOut)
	o.surface.SetCardVisible(false)

	o.enter(log, state.PhaseFadeOutDelay)
	if timing.Wait(ctx, o.timings.ImageFadeOutDelay) != nil {
		return 0
	}

	o.enter(log, state.PhaseFadeOut)
	o.surface.SetImageVisible(false)
	if timing.Wait(ctx, o.timings.ImageFade) != nil {
		return 0
	}

	log.Info("cycle complete", "date", rec.Date, "title", rec.Title, "elapsed", o.now().Sub(clock.Start).Round(time.Millisecond))
	return 0
}

// Reset hides the image and card, stops narration and clears the caption.
// It is safe to call at any point and returns the reset time.
func (o *Orchestrator) Reset() time.Time {
	started := o.now()
	o.surface.SetPhase(state.PhaseReset)
	o.surface.SetImageVisible(false)
	o.surface.SetCardVisible(false)
	o.narrator.Cancel()
	o.surface.ClearCaption()
	return started
}

// narrate races the narration against MaxNarration, then makes sure nothing
// is left speaking.
func (o *Orchestrator) narrate(ctx context.Context, log *slog.Logger, text string) {
	winner := timing.Race(ctx,
		func(c context.Context) { o.narrator.Speak(c, text) },
		timing.Sleep(o.timings.MaxNarration),
	)
	if winner == 1 {
		log.Warn("narration exceeded max duration, stopping", "max", o.timings.MaxNarration)
	}
	if o.narrator.Speaking() {
		o.narrator.Cancel()
	}
}

func (o *Orchestrator) fail(log *slog.Logger, date string, err error) time.Duration {
	o.enter(log, state.PhaseError)

	var httpErr *apod.HTTPError
	if errors.As(err, &httpErr) {
		log.Error("apod request failed", "date", date, "status", httpErr.Status, "error", err)
	} else {
		log.Error("apod request failed", "date", date, "error", err)
	}

	o.surface.SetCaption(state.Caption{
		Title:       ErrorTitle,
		Date:        ErrorDate,
		Explanation: fmt.Sprintf(errorDetails, err.Error()),
	})
	o.surface.SetCardVisible(true)
	o.surface.RecordFailure(err)
	return o.timings.ErrorRetryDelay
}

func (o *Orchestrator) enter(log *slog.Logger, p state.Phase) {
	o.surface.SetPhase(p)
	log.Debug("phase", "phase", p.String())
}
