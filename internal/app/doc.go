// Package app is Stargazer's composition root.
//
// Run loads the config, sets up logging, picks a speech engine, and builds
// the APOD client, the display store and the cycle orchestrator. The
// orchestrator does not start by itself: it sits behind a Gate.
//
// # Start Gate
//
// In the TUI the viewer sees a start screen. The first key press or click
// opens the gate exactly once: the prompt is hidden, the unlock phrase is
// spoken, and after a short pause the orchestrator loop starts on its own
// goroutine. Later presses do nothing.
//
// Without a terminal (--headless, --once, or stdout redirected) there is no
// prompt to press, so StartWithoutPrompt starts the loop immediately and
// logs a warning.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()
//	       ├─────> logging.Setup()       file in TUI mode, stderr headless
//	       ├─────> speech.DetectEngine()
//	       ├─────> apod.NewClient()
//	       ├─────> state.NewStore()      the rendering surface
//	       ├─────> cycle.New()
//	       ├─────> NewGate()
//	       └─────> ui.Run() or runHeadless()
//
//	Cycle goroutine (after the gate opens):
//	┌─────────────────────────────────────────┐
//	│ Orchestrator.Run()                      │
//	│  ├─> FetchRecord / FetchImage           │
//	│  ├─> Narrator.Speak (raced)             │
//	│  └─> store.Set*()                       │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Only startup problems are returned: an unreadable config, a log file that
// cannot be opened, an unknown speech engine, an invalid --date. Everything
// that goes wrong inside a cycle is handled by the orchestrator and never
// stops the loop. With --once the single cycle's fetch error is returned so
// scripts can tell a failed smoke run apart.
package app
