package cycle

import "time"

// Fixed display timings.
const (
	ImageFade          = 2000 * time.Millisecond // image fade in and out
	CardFadeIn         = 500 * time.Millisecond
	CardDelay          = 500 * time.Millisecond // image visible → card visible
	MaxNarration       = 120 * time.Second
	MinCardHold        = 3000 * time.Millisecond
	ImageFadeOutDelay  = 1000 * time.Millisecond // card hidden → image fade out
	NonImageRetryDelay = 500 * time.Millisecond
	ErrorRetryDelay    = 5000 * time.Millisecond
)

// Timings groups the durations one cycle runs with. A zero field takes the
// package default, so the zero value is the production configuration.
type Timings struct {
	ImageFade          time.Duration
	CardFadeIn         time.Duration
	CardDelay          time.Duration
	MaxNarration       time.Duration
	MinCardHold        time.Duration
	ImageFadeOutDelay  time.Duration
	NonImageRetryDelay time.Duration
	ErrorRetryDelay    time.Duration
}

// DefaultTimings returns the production timings.
func DefaultTimings() Timings {
	return Timings{
		ImageFade:          ImageFade,
		CardFadeIn:         CardFadeIn,
		CardDelay:          CardDelay,
		MaxNarration:       MaxNarration,
		MinCardHold:        MinCardHold,
		ImageFadeOutDelay:  ImageFadeOutDelay,
		NonImageRetryDelay: NonImageRetryDelay,
		ErrorRetryDelay:    ErrorRetryDelay,
	}
}

func (t Timings) withDefaults() Timings {
	d := DefaultTimings()
	fill := func(v *time.Duration, def time.Duration) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&t.ImageFade, d.ImageFade)
	fill(&t.CardFadeIn, d.CardFadeIn)
	fill(&t.CardDelay, d.CardDelay)
	fill(&t.MaxNarration, d.MaxNarration)
	fill(&t.MinCardHold, d.MinCardHold)
	fill(&t.ImageFadeOutDelay, d.ImageFadeOutDelay)
	fill(&t.NonImageRetryDelay, d.NonImageRetryDelay)
	fill(&t.ErrorRetryDelay, d.ErrorRetryDelay)
	return t
}

// Timing is the per-cycle clock used for the minimum hold.
type Timing struct {
	Start       time.Time // cycle start (RESET)
	CardShownAt time.Time // card finished fading in
	cardDelay   time.Duration
	cardFadeIn  time.Duration
}

// DisplayStart is when the card became fully visible. Nominally that is
// Start + CardDelay + CardFadeIn; fetch and image latency push it later, and
// the later instant wins so slow loads never shorten the hold.
func (t Timing) DisplayStart() time.Time {
	nominal := t.Start.Add(t.cardDelay + t.cardFadeIn)
	if t.CardShownAt.After(nominal) {
		return t.CardShownAt
	}
	return nominal
}

// HoldRemaining returns how much longer the card must stay up at now.
func (t Timing) HoldRemaining(now time.Time, minHold time.Duration) time.Duration {
	held := now.Sub(t.DisplayStart())
	return max(0, minHold-held)
}
