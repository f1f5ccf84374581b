// Package state provides the thread-safe display state shared by the cycle
// and the UI.
//
// # Overview
//
// Store is the rendering surface. The display cycle flips visibility flags
// and writes caption text into it; the Bubble Tea program reads a Snapshot
// on every animation frame and draws whatever it finds.
//
//	Producer (cycle):               Consumer (UI):
//	┌──────────────────────┐        ┌──────────────────┐
//	│ SetImageVisible()    │        │                  │
//	│ SetCardVisible()     │        │                  │
//	│ SetCaption()         │───────→│ store.Snapshot() │
//	│ SetPhase()           │ (mutex)│       ↓          │
//	│   repeat...          │        │ render frame     │
//	└──────────────────────┘        └──────────────────┘
//
// # Fades
//
// The store does not animate anything. It records when each visibility flag
// last flipped (ImageChanged, CardChanged) and the UI derives the fade
// progress from the elapsed time. This mirrors a style class toggle whose
// transition timing is owned by the presentation layer.
//
// # Failure Tracking
//
// RecordFailure and RecordSuccess keep a consecutive failure count. Two or
// more failed cycles in a row make Snapshot.IsOffline report true, which the
// footer shows as OFFLINE.
//
// # Concurrency Model
//
// Every setter takes the write lock for the duration of a field update;
// Snapshot takes the read lock and returns a copy. The decoded image is
// shared by reference and must not be mutated after SetImage.
package state
