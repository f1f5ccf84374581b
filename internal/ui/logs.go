package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/stargazer/internal/logtail"
)

const (
	logRefreshInterval = 2 * time.Second
	logTailLines       = 200
)

type logLinesMsg []string

type logErrorMsg struct{ err error }

// logState holds the overlay's state.
type logState struct {
	open        bool
	lines       []string
	err         error
	lastRefresh time.Time
	viewport    viewport.Model
}

func readLogsCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, logTailLines)
		if err != nil {
			return logErrorMsg{err: err}
		}
		return logLinesMsg(lines)
	}
}

func (m *Model) openLogs() tea.Cmd {
	m.logs.open = true
	m.resizeLogViewport()
	return m.refreshLogs()
}

func (m *Model) refreshLogs() tea.Cmd {
	m.logs.lastRefresh = m.now()
	return readLogsCmd(m.logPath)
}

func (m *Model) resizeLogViewport() {
	w, h := m.logViewportSize()
	m.logs.viewport.Width = w
	m.logs.viewport.Height = h
	m.updateLogViewport()
}

func (m Model) logViewportSize() (int, int) {
	// overlay border and padding take 4 columns and 2 rows, the title 1 row
	w := max(m.width*4/5-4, 10)
	h := max(m.height*3/4-3, 3)
	return w, h
}

func (m *Model) handleLogLines(lines []string) {
	atBottom := m.logs.viewport.AtBottom() || len(m.logs.lines) == 0
	m.logs.lines = lines
	m.logs.err = nil
	m.updateLogViewport()
	if atBottom {
		m.logs.viewport.GotoBottom()
	}
}

func (m *Model) updateLogViewport() {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	if m.logs.err != nil {
		m.logs.viewport.SetContent(styles.DangerText.Render("log read failed: " + m.logs.err.Error()))
		return
	}
	if len(m.logs.lines) == 0 {
		m.logs.viewport.SetContent(styles.FaintText.Render("no log entries yet"))
		return
	}
	out := make([]string, 0, len(m.logs.lines))
	for _, raw := range m.logs.lines {
		entry := logtail.ParseLine(raw)
		line := truncateWidth(entry.Format(), m.logs.viewport.Width)
		out = append(out, levelStyle(styles, entry.Level).Render(line))
	}
	m.logs.viewport.SetContent(strings.Join(out, "\n"))
}

func levelStyle(s Styles, level string) lipgloss.Style {
	switch level {
	case "ERROR":
		return s.DangerText
	case "WARN":
		return s.WarningText
	case "DEBUG":
		return s.FaintText
	case "INFO":
		return s.Text
	default:
		return s.MutedText
	}
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	title := styles.AccentText.Bold(true).Render("Log") +
		styles.FaintText.Render("  "+m.logPath)
	body := lipgloss.JoinVertical(lipgloss.Left,
		truncateWidth(title, m.logs.viewport.Width),
		m.logs.viewport.View(),
	)
	box := styles.Overlay.Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}

// truncateWidth cuts s to at most w display cells.
func truncateWidth(s string, w int) string {
	if w <= 0 || lipgloss.Width(s) <= w {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(w).Render(s)
}
