// Package ui draws the screensaver in the terminal with Bubble Tea.
//
// # Screens
//
//   - Start screen: shown until the first key press or click, which fires
//     the start gate and begins the show.
//   - Main screen: the picture fills the top of the terminal, the caption
//     card sits below it and a one-line footer shows the cycle phase.
//   - Log overlay: "l" opens the tail of the log file; "esc" or "l" closes it.
//
// # Rendering
//
// The UI never drives the cycle. It reads state.Store snapshots on a tick
// (50ms while a fade is running, 250ms otherwise) and derives everything
// from them:
//
//   - Pictures are scaled with nearest-neighbour sampling and drawn with the
//     upper half block, two pixels per cell, in 24-bit colour.
//   - Fades are computed from the time a visibility flag last flipped. The
//     picture fades over cycle.ImageFade, the card over cycle.CardFadeIn.
//     Colours are blended toward the theme background with go-colorful.
//   - Scaled pixels are cached per image and terminal size, and frames per
//     quantized opacity, so a still picture costs nothing to redraw.
//
// # Keys
//
//	any key   start (start screen only)
//	l         toggle log overlay
//	T         cycle theme (Nightfox, Kanagawa, Slate) for this session
//	q, esc    quit (esc closes the overlay first)
//	ctrl+c    quit
package ui
