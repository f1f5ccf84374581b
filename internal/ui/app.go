package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/stargazer/internal/state"
)

const (
	// frameTick drives fades. idleTick is used when nothing is moving.
	frameTick = 50 * time.Millisecond
	idleTick  = 250 * time.Millisecond

	footerHeight = 1
)

// SnapshotSource is what the UI reads. *state.Store implements it.
type SnapshotSource interface {
	Snapshot() state.Snapshot
}

// Starter fires the start gesture. *app.Gate implements it.
type Starter interface {
	Open(ctx context.Context) bool
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     SnapshotSource
	Gate      Starter
	ThemeName string
	LogPath   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx     context.Context
	store   SnapshotSource
	gate    Starter
	logPath string
	now     func() time.Time

	theme   Theme
	keys    keyMap
	spinner spinner.Model
	width   int
	height  int
	ready   bool

	snapshot state.Snapshot
	picture  *pictureCache
	logs     logState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := Model{
		ctx:     ctx,
		store:   opts.Store,
		gate:    opts.Gate,
		logPath: opts.LogPath,
		now:     time.Now,
		theme:   GetTheme(themeName),
		keys:    DefaultKeyMap(),
		spinner: sp,
		picture: &pictureCache{},
		logs:    logState{viewport: viewport.New(0, 0)},
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(frameTick),
		m.spinner.Tick,
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && m.snapshot.PromptVisible {
			m.start()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil

	case logErrorMsg:
		m.logs.err = msg.err
		m.updateLogViewport()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.logs.open {
		return m.renderLogs()
	}
	if m.snapshot.PromptVisible {
		return m.renderStart()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.logs.open {
		switch {
		case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Logs):
			m.logs.open = false
			return m, nil
		}
		var cmd tea.Cmd
		m.logs.viewport, cmd = m.logs.viewport.Update(msg)
		return m, cmd
	}

	if m.snapshot.PromptVisible {
		m.start()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.updateLogViewport()
		return m, nil
	case key.Matches(msg, m.keys.Logs):
		return m, m.openLogs()
	case key.Matches(msg, m.keys.Close):
		return m, tea.Quit
	}
	return m, nil
}

// start fires the gate and hides the prompt locally so the next frame does
// not wait for the store round trip.
func (m *Model) start() {
	if m.gate != nil {
		m.gate.Open(m.ctx)
	}
	m.snapshot.PromptVisible = false
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.logs.open && m.now().Sub(m.logs.lastRefresh) >= logRefreshInterval {
		if cmd := m.refreshLogs(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	next := idleTick
	if animating(m.snapshot, m.now()) {
		next = frameTick
	}
	cmds = append(cmds, tickCmd(next))
	return m, tea.Batch(cmds...)
}

// renderMain draws the picture over the card with the footer at the bottom.
func (m Model) renderMain() string {
	now := m.now()
	bodyHeight := max(m.height-footerHeight, 0)
	cardHeight := cardArea(bodyHeight)
	pictureHeight := bodyHeight - cardHeight

	bg := lipgloss.Color(m.theme.Background)
	place := func(h int, content string, v lipgloss.Position) string {
		return lipgloss.Place(m.width, h, lipgloss.Center, v, content,
			lipgloss.WithWhitespaceBackground(bg))
	}

	frame := ""
	if m.snapshot.Image != nil {
		frame = m.picture.frameFor(m.snapshot.Image, m.snapshot.ImageSeq,
			m.width, pictureHeight, m.theme.Background, imageOpacity(m.snapshot, now))
	}
	card := m.renderCard(m.snapshot.Caption, m.width, cardHeight, cardOpacity(m.snapshot, now))

	parts := []string{}
	if pictureHeight > 0 {
		parts = append(parts, place(pictureHeight, frame, lipgloss.Center))
	}
	if cardHeight > 0 {
		parts = append(parts, place(cardHeight, card, lipgloss.Top))
	}
	parts = append(parts, m.renderFooter())
	return strings.Join(parts, "\n")
}

// cardArea reserves roughly a third of the body for the caption.
func cardArea(body int) int {
	if body < 6 {
		return body
	}
	return min(max(body/3, 5), 14)
}

func (m Model) renderStart() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	lines := []string{
		styles.Logo.Render("S T A R G A Z E R"),
		"",
		styles.MutedText.Render("Astronomy Picture of the Day"),
		"",
		styles.AccentText.Render("press any key to begin"),
		styles.FaintText.Render("q to quit"),
	}
	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store SnapshotSource) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until the viewer quits or
// opts.Context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(m.ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
