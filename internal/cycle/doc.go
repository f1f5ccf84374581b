// Package cycle drives the screensaver, running one display cycle after
// another.
//
// # Overview
//
// Orchestrator.Run loops forever (until its context ends). Each iteration is
// a RunCycle call that walks a fixed sequence of phases and returns the pause
// before the next cycle.
//
//	RESET → FETCHING → LOADING_IMAGE → FADE_IN → CARD_IN → NARRATING
//	      → HOLD_MIN → CARD_OUT → FADE_OUT_DELAY → FADE_OUT → (next cycle)
//
//	FETCHING ──(non-image record)──→ next cycle after 500ms, nothing rendered
//	FETCHING ──(request failed)────→ ERROR card, next cycle after 5s
//
// # Phases
//
//  1. RESET: hide image and card, cancel narration, clear the caption. This
//     happens before anything is fetched so a previous cycle never bleeds
//     into the next one.
//  2. FETCHING: sample a date and request the record.
//  3. LOADING_IMAGE: write the caption, download the picture. A broken image
//     is logged and the cycle carries on with an empty frame.
//  4. FADE_IN: mark the image visible. The view owns the fade itself.
//  5. CARD_IN: wait CardDelay, show the card, wait CardFadeIn.
//  6. NARRATING: race "title. explanation" against MaxNarration. Whatever
//     is still speaking afterwards is cancelled.
//  7. HOLD_MIN: keep the card up until MinCardHold has passed since it
//     became fully visible.
//  8. CARD_OUT: hide the card.
//  9. FADE_OUT_DELAY / FADE_OUT: wait, hide the image, wait for the fade.
//
// # Error Handling
//
// Nothing in a cycle is fatal. Fetch failures (*apod.HTTPError,
// *apod.NetworkError, decode errors) show a diagnostic card and schedule the
// next cycle after ErrorRetryDelay. Narration failures are absorbed by the
// speech package. Only context cancellation ends Run.
//
// # Timings
//
// The durations are constants. Timings exists so tests can run the same
// sequence in milliseconds; its zero value is the production configuration.
package cycle
