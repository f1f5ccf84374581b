package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/stargazer/internal/state"
)

// renderFooter draws the one-line status bar: logo, phase badge and spinner
// on the left; cycle, offline marker and key help on the right.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	snap := m.snapshot
	sep := styles.FaintText.Render("  ")

	left := []string{
		styles.Logo.Render("stargazer"),
		styles.PhaseStyle(snap.Phase.String()).Render(snap.Phase.String()),
	}
	if busy(snap.Phase) {
		left = append(left, styles.InfoText.Render(m.spinner.View()))
	}

	var right []string
	if snap.IsOffline() {
		right = append(right, styles.DangerText.Render("OFFLINE"))
	}
	if snap.Cycle > 0 {
		right = append(right, styles.MutedText.Render(fmt.Sprintf("cycle %d", snap.Cycle)))
		if id := shortID(snap.CycleID); id != "" {
			right = append(right, styles.FaintText.Render(id))
		}
	}
	right = append(right, styles.FaintText.Render(m.theme.Name))
	for _, b := range m.keys.footerHelp() {
		h := b.Help()
		right = append(right, styles.AccentText.Render(h.Key)+styles.MutedText.Render(" "+h.Desc))
	}

	l := strings.Join(left, sep)
	r := strings.Join(right, sep)
	gap := m.width - 2 - lipgloss.Width(l) - lipgloss.Width(r)
	if gap < 1 {
		r = ""
		gap = max(m.width-2-lipgloss.Width(l), 0)
	}
	content := l + styles.Footer.UnsetPadding().Render(strings.Repeat(" ", gap)) + r

	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(content)
}

func busy(p state.Phase) bool {
	return p == state.PhaseFetching || p == state.PhaseLoadingImage
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
