package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/portholedev/porthole/internal/export"
	"github.com/portholedev/porthole/internal/logring"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.table.SetColumns(m.columns())
		m.table.SetWidth(m.width)
		m.table.SetHeight(m.tableHeight())
		m.rebuildRows()
		return m, nil

	case bufferChangedMsg:
		if !m.paused {
			m.rebuildRows()
		}
		return m, nil

	case clearStatusMsg:
		if m.statusMsg == msg.msg {
			m.statusMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m.handleSaveInput(msg)
	}

	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Escape),
			key.Matches(msg, m.keys.Help),
			key.Matches(msg, m.keys.Quit):
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.savePrefs()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyThemeToTable()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.table.MoveUp(1)
		m.follow = false
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.table.MoveDown(1)
		m.follow = false
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.table.GotoTop()
		m.follow = false
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.table.GotoBottom()
		m.follow = true
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.table.MoveUp(m.tableHeight())
		m.follow = false
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.table.MoveDown(m.tableHeight())
		m.follow = false
		return m, nil

	case key.Matches(msg, m.keys.TogglePause):
		m.paused = !m.paused
		if !m.paused {
			// Catch up on everything appended while paused.
			m.rebuildRows()
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleFollow):
		m.follow = !m.follow
		if m.follow {
			m.table.GotoBottom()
		}
		return m, nil

	case key.Matches(msg, m.keys.LevelUp):
		return m.shiftThreshold(1)

	case key.Matches(msg, m.keys.LevelDown):
		return m.shiftThreshold(-1)

	case key.Matches(msg, m.keys.Copy):
		rec, ok := m.selectedRecord()
		if !ok {
			return m, m.flashStatus("nothing to copy")
		}
		if err := clipboard.WriteAll(rec.Formatted); err != nil {
			return m, m.flashStatus(fmt.Sprintf("copy failed: %v", err))
		}
		return m, m.flashStatus("copied row")

	case key.Matches(msg, m.keys.CopyAll):
		records := m.visibleRecords()
		if len(records) == 0 {
			return m, m.flashStatus("nothing to copy")
		}
		var b strings.Builder
		for _, rec := range records {
			b.WriteString(rec.Formatted)
			b.WriteString("\n")
		}
		if err := clipboard.WriteAll(b.String()); err != nil {
			return m, m.flashStatus(fmt.Sprintf("copy failed: %v", err))
		}
		return m, m.flashStatus(fmt.Sprintf("copied %d rows", len(records)))

	case key.Matches(msg, m.keys.Save):
		m.saving = true
		m.saveInput.SetValue(defaultSaveName(time.Now()))
		m.saveInput.CursorEnd()
		m.saveInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.buffer.Clear()
		m.rebuildRows()
		return m, m.flashStatus("buffer cleared")
	}

	return m, nil
}

func (m Model) handleSaveInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		path := strings.TrimSpace(m.saveInput.Value())
		m.saving = false
		m.saveInput.Blur()
		if path == "" {
			return m, m.flashStatus("save cancelled")
		}
		records := m.visibleRecords()
		if err := export.Save(path, records); err != nil {
			return m, m.flashStatus(fmt.Sprintf("save failed: %v", err))
		}
		return m, m.flashStatus(fmt.Sprintf("saved %d rows to %s", len(records), path))

	case key.Matches(msg, m.keys.Escape):
		m.saving = false
		m.saveInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.saveInput, cmd = m.saveInput.Update(msg)
	return m, cmd
}

// shiftThreshold moves the level filter by delta steps within the selectable
// range and rebuilds the table.
func (m Model) shiftThreshold(delta int) (tea.Model, tea.Cmd) {
	levels := logring.Levels()
	current := m.filter.Threshold()
	idx := 0
	for i, l := range levels {
		if l == current {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx > len(levels)-1 {
		idx = len(levels) - 1
	}
	if levels[idx] == current {
		return m, nil
	}
	m.filter.SetThreshold(levels[idx])
	m.rebuildRows()
	return m, m.flashStatus(fmt.Sprintf("showing %s and above", levels[idx]))
}

func (m *Model) applyThemeToTable() {
	styled := m.newTable()
	styled.SetColumns(m.columns())
	styled.SetWidth(m.width)
	styled.SetHeight(m.tableHeight())
	styled.SetRows(m.table.Rows())
	styled.SetCursor(m.table.Cursor())
	m.table = styled
}

func defaultSaveName(now time.Time) string {
	return fmt.Sprintf("porthole-%s.log", now.Format("20060102-150405"))
}
