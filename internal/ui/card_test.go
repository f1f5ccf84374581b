package ui

import (
	"strings"
	"testing"

	"github.com/five82/stargazer/internal/cycle"
	"github.com/five82/stargazer/internal/state"
)

func TestRenderCard_TruncatesExplanation(t *testing.T) {
	m := New(Options{})
	caption := state.Caption{
		Title:       "The Horsehead Nebula",
		Date:        "2001-02-03",
		Explanation: strings.Repeat("dust and gas ", 80),
		Credit:      "© Someone",
	}

	out := m.renderCard(caption, 60, 6, 1)
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("card has %d lines, want 6:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "2001-02-03") || !strings.Contains(lines[1], "© Someone") {
		t.Fatalf("meta line = %q, want date and credit", lines[1])
	}
	if !strings.HasSuffix(strings.TrimRight(lines[5], " "), "…") {
		t.Fatalf("last line = %q, want an ellipsis", lines[5])
	}
}

func TestRenderCard_HiddenOrEmpty(t *testing.T) {
	m := New(Options{})
	c := state.Caption{Title: "x"}
	if m.renderCard(c, 80, 10, 0) != "" {
		t.Fatalf("card at alpha 0 should be empty")
	}
	if m.renderCard(state.Caption{}, 80, 10, 1) != "" {
		t.Fatalf("empty caption should render nothing")
	}
}

func TestRenderCard_ErrorCard(t *testing.T) {
	m := New(Options{})
	out := m.renderCard(state.Caption{
		Title:       cycle.ErrorTitle,
		Date:        cycle.ErrorDate,
		Explanation: "Error details: HTTP Error: 403.",
	}, 80, 10, 1)
	for _, want := range []string{cycle.ErrorTitle, cycle.ErrorDate, "HTTP Error: 403."} {
		if !strings.Contains(out, want) {
			t.Fatalf("error card missing %q:\n%s", want, out)
		}
	}
}
