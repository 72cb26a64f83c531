package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/portholedev/porthole/internal/logring"
	"github.com/portholedev/porthole/internal/prefs"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Buffer    *logring.Buffer
	Level     logring.Level
	ThemeName string
	Follow    bool
	PrefsPath string
	Title     string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	buffer    *logring.Buffer
	filter    *logring.FilterView
	prefsPath string
	title     string

	// UI state
	keys      keyMap
	theme     Theme
	table     table.Model
	width     int
	height    int
	ready     bool
	showHelp  bool
	statusMsg string

	// Viewer state
	follow  bool
	paused  bool
	lastLen int   // buffer length at the last table rebuild
	visible []int // source indices backing the current table rows

	// Save prompt
	saving    bool
	saveInput textinput.Model
}

// New creates a new Bubble Tea model over buffer.
func New(opts Options) Model {
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = ThemeNames()[0]
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Porthole"
	}

	ti := textinput.New()
	ti.Placeholder = "path to save visible rows (.gz compresses)"
	ti.CharLimit = 256

	m := Model{
		buffer:    opts.Buffer,
		filter:    logring.NewFilterView(opts.Buffer, opts.Level),
		prefsPath: opts.PrefsPath,
		title:     title,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		follow:    opts.Follow,
		saveInput: ti,
	}
	m.table = m.newTable()
	m.rebuildRows()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) newTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(m.theme.Accent))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(m.theme.SelectionText)).
		Background(lipgloss.Color(m.theme.SelectionBg)).
		Bold(false)
	s.Cell = s.Cell.Foreground(lipgloss.Color(m.theme.Text))
	t.SetStyles(s)
	return t
}

func (m Model) columns() []table.Column {
	msgWidth := m.width - timeColWidth - levelColWidth - 8
	if msgWidth < minMessageWidth {
		msgWidth = minMessageWidth
	}
	return []table.Column{
		{Title: "Time", Width: timeColWidth},
		{Title: "Level", Width: levelColWidth},
		{Title: "Message", Width: msgWidth},
	}
}

const (
	timeColWidth    = len(logring.TimeLayout)
	levelColWidth   = 5
	minMessageWidth = 20
)

// Run starts the UI over the given buffer and blocks until it exits. Buffer
// change notifications are forwarded into the program as messages.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	n := newNotifier()
	unsubscribe := opts.Buffer.Subscribe(n)
	defer unsubscribe()

	forwardCtx, stopForward := context.WithCancel(ctx)
	defer stopForward()
	go n.forward(forwardCtx, p)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		// Cancelled from the outside (signal); not a failure.
		return nil
	}
	return err
}

// savePrefs persists the current viewer preferences. Failures are silent;
// preferences are a convenience, not state the viewer depends on.
func (m *Model) savePrefs() {
	_ = prefs.Save(m.prefsPath, prefs.Prefs{
		Theme:  m.theme.Name,
		Level:  strings.ToLower(m.filter.Threshold().String()),
		Follow: m.follow,
	})
}

// flashStatus sets a transient status message and schedules its expiry.
func (m *Model) flashStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{msg}
	})
}
