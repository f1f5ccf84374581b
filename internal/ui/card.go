package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/stargazer/internal/cycle"
	"github.com/five82/stargazer/internal/state"
)

const maxCardWidth = 96

// renderCard lays out the caption in at most width×height cells, faded by
// alpha. The explanation is truncated with an ellipsis when it does not fit.
func (m Model) renderCard(c state.Caption, width, height int, alpha float64) string {
	if alpha <= 0 || c.IsZero() || width <= 0 || height <= 0 {
		return ""
	}
	w := min(width-4, maxCardWidth)
	if w < 10 {
		w = width
	}

	titleColor := m.theme.Accent
	if c.Title == cycle.ErrorTitle {
		titleColor = m.theme.Danger
	}
	bg := lipgloss.Color(m.theme.Background)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Fade(titleColor, alpha)).Background(bg)
	metaStyle := lipgloss.NewStyle().Italic(true).Foreground(m.theme.Fade(m.theme.Muted, alpha)).Background(bg)
	bodyStyle := lipgloss.NewStyle().Foreground(m.theme.Fade(m.theme.Text, alpha)).Background(bg)

	meta := c.Date
	if c.Credit != "" {
		meta += "  " + c.Credit
	}

	var lines []string
	for _, l := range wrap(c.Title, w) {
		lines = append(lines, titleStyle.Render(l))
	}
	for _, l := range wrap(meta, w) {
		lines = append(lines, metaStyle.Render(l))
	}
	if room := height - len(lines) - 1; room > 0 && c.Explanation != "" {
		lines = append(lines, "")
		for _, l := range truncateLines(wrap(c.Explanation, w), room) {
			lines = append(lines, bodyStyle.Render(l))
		}
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// wrap word-wraps plain text to width and trims the padding lipgloss adds.
func wrap(text string, width int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lines := strings.Split(lipgloss.NewStyle().Width(width).Render(text), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

// truncateLines keeps at most n lines, marking the cut with an ellipsis.
func truncateLines(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(lines) <= n {
		return lines
	}
	out := append([]string(nil), lines[:n]...)
	out[n-1] += "…"
	return out
}
