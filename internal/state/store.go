package state

import (
	"fmt"
	"image"
	"sync"
	"time"
)

// Phase names the step the display cycle is in.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseReset
	PhaseFetching
	PhaseLoadingImage
	PhaseFadeIn
	PhaseCardIn
	PhaseNarrating
	PhaseHoldMin
	PhaseCardOut
	PhaseFadeOutDelay
	PhaseFadeOut
	PhaseError
)

var phaseNames = [...]string{
	PhaseIdle:         "idle",
	PhaseReset:        "reset",
	PhaseFetching:     "fetching",
	PhaseLoadingImage: "loading image",
	PhaseFadeIn:       "fade in",
	PhaseCardIn:       "card in",
	PhaseNarrating:    "narrating",
	PhaseHoldMin:      "holding",
	PhaseCardOut:      "card out",
	PhaseFadeOutDelay: "fade out delay",
	PhaseFadeOut:      "fade out",
	PhaseError:        "error",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Caption is the text written into the card.
type Caption struct {
	Title       string
	Date        string
	Explanation string
	Credit      string
}

// IsZero reports whether every slot is empty.
func (c Caption) IsZero() bool {
	return c == Caption{}
}

// Snapshot represents the latest display state available to the UI.
type Snapshot struct {
	Phase   Phase
	Cycle   int
	CycleID string

	PromptVisible bool

	ImageVisible bool
	ImageChanged time.Time // when ImageVisible last flipped
	CardVisible  bool
	CardChanged  time.Time // when CardVisible last flipped

	Caption  Caption
	Image    image.Image
	ImageSeq int // bumped on every SetImage

	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // cycles in a row that ended on the error card
}

// IsOffline returns true when the provider has failed several cycles in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store is the rendering surface. The cycle writes to it and the UI reads
// snapshots at its own frame rate.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	now      func() time.Time
}

// NewStore returns a store with the start prompt showing.
func NewStore() *Store {
	return &Store{snapshot: Snapshot{PromptVisible: true}}
}

func (s *Store) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *Store) mutate(fn func(snap *Snapshot, now time.Time)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	fn(&s.snapshot, now)
	s.snapshot.LastUpdated = now
}

// BeginCycle records the start of a new cycle.
func (s *Store) BeginCycle(id string) {
	s.mutate(func(snap *Snapshot, _ time.Time) {
		snap.Cycle++
		snap.CycleID = id
	})
}

// SetPhase publishes the current cycle step.
func (s *Store) SetPhase(p Phase) {
	s.mutate(func(snap *Snapshot, _ time.Time) {
		snap.Phase = p
	})
}

// SetPromptVisible shows or hides the start screen.
func (s *Store) SetPromptVisible(visible bool) {
	s.mutate(func(snap *Snapshot, _ time.Time) {
		snap.PromptVisible = visible
	})
}

// SetImageVisible toggles the image fade. The change time only moves when
// the flag actually flips, so repeated calls do not restart the animation.
func (s *Store) SetImageVisible(visible bool) {
	s.mutate(func(snap *Snapshot, now time.Time) {
		if snap.ImageVisible != visible {
			snap.ImageVisible = visible
			snap.ImageChanged = now
		}
	})
}

// SetCardVisible toggles the caption card.
func (s *Store) SetCardVisible(visible bool) {
	s.mutate(func(snap *Snapshot, now time.Time) {
		if snap.CardVisible != visible {
			snap.CardVisible = visible
			snap.CardChanged = now
		}
	})
}

// SetCaption writes the card text.
func (s *Store) SetCaption(c Caption) {
	s.mutate(func(snap *Snapshot, _ time.Time) {
		snap.Caption = c
	})
}

// ClearCaption empties every text slot.
func (s *Store) ClearCaption() {
	s.SetCaption(Caption{})
}

// SetImage replaces the picture. nil leaves an empty frame.
func (s *Store) SetImage(img image.Image) {
	s.mutate(func(snap *Snapshot, _ time.Time) {
		snap.Image = img
		snap.ImageSeq++
	})
}

// RecordFailure notes a cycle that ended on the error card.
func (s *Store) RecordFailure(err error) {
	s.mutate(func(snap *Snapshot, _ time.Time) {
		snap.LastError = err
		snap.ConsecutiveFailures++
	})
}

// RecordSuccess clears the failure streak.
func (s *Store) RecordSuccess() {
	s.mutate(func(snap *Snapshot, _ time.Time) {
		snap.LastError = nil
		snap.ConsecutiveFailures = 0
	})
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
