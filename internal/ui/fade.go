package ui

import (
	"time"

	"github.com/five82/stargazer/internal/cycle"
	"github.com/five82/stargazer/internal/state"
)

// opacity returns how visible a faded element is at now, given the flag and
// the moment it last flipped. The fade is linear over d.
func opacity(visible bool, changed, now time.Time, d time.Duration) float64 {
	target := 0.0
	if visible {
		target = 1
	}
	if changed.IsZero() || d <= 0 {
		return target
	}
	progress := clamp01(float64(now.Sub(changed)) / float64(d))
	if visible {
		return progress
	}
	return 1 - progress
}

// imageOpacity fades the picture over cycle.ImageFade.
func imageOpacity(snap state.Snapshot, now time.Time) float64 {
	return opacity(snap.ImageVisible, snap.ImageChanged, now, cycle.ImageFade)
}

// cardOpacity fades the card over cycle.CardFadeIn, in both directions.
func cardOpacity(snap state.Snapshot, now time.Time) float64 {
	return opacity(snap.CardVisible, snap.CardChanged, now, cycle.CardFadeIn)
}

// animating reports whether a fade is still in progress.
func animating(snap state.Snapshot, now time.Time) bool {
	return now.Sub(snap.ImageChanged) < cycle.ImageFade || now.Sub(snap.CardChanged) < cycle.CardFadeIn
}

// quantize snaps alpha to steps so cached frames can be reused.
func quantize(alpha float64, steps int) float64 {
	if steps <= 0 {
		return alpha
	}
	return float64(int(clamp01(alpha)*float64(steps)+0.5)) / float64(steps)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
