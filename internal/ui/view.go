package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	if m.saving {
		b.WriteString(m.renderSavePrompt())
	} else {
		b.WriteString(m.renderStatus())
	}
	return b.String()
}

func (m Model) tableHeight() int {
	// Header line, table header row, status line.
	h := m.height - 4
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	left := styles.AccentText.Bold(true).Render(m.title)
	level := m.filter.Threshold()
	mode := fmt.Sprintf("level %s", styles.LevelStyle(level).Render(level.String()))

	var flags []string
	if m.paused {
		flags = append(flags, "PAUSED")
	}
	if m.follow {
		flags = append(flags, "follow")
	}
	right := mode
	if len(flags) > 0 {
		right += "  " + styles.MutedText.Render(strings.Join(flags, " · "))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderStatus() string {
	styles := m.theme.Styles()

	if m.statusMsg != "" {
		return styles.Footer.Width(m.width).Render(styles.AccentText.Render(m.statusMsg))
	}

	visible := len(m.visible)
	total := m.buffer.Len()
	parts := []string{fmt.Sprintf("%d/%d rows", visible, total)}
	if capacity := m.buffer.Capacity(); capacity > 0 {
		parts = append(parts, fmt.Sprintf("cap %d", capacity))
	}
	if m.paused {
		if behind := total - m.lastLen; behind > 0 {
			parts = append(parts, fmt.Sprintf("paused · %d new", behind))
		} else {
			parts = append(parts, "paused")
		}
	}
	parts = append(parts, "h for help")
	return styles.Footer.Width(m.width).Render(strings.Join(parts, " · "))
}

func (m Model) renderSavePrompt() string {
	styles := m.theme.Styles()
	prompt := styles.AccentText.Render("save: ") + m.saveInput.View() +
		styles.FaintText.Render("  enter to save · esc to cancel")
	return styles.Footer.Width(m.width).Render(prompt)
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	bindings := []struct{ key, desc string }{
		{"j/k, arrows", "move selection"},
		{"g / G", "jump to top / bottom (G re-enables follow)"},
		{"pgup / pgdn", "page up / down"},
		{"f", "toggle follow (auto-scroll on new rows)"},
		{"p", "pause/resume table updates"},
		{"+ / -", "raise / lower the level filter"},
		{"c", "copy selected row to clipboard"},
		{"C", "copy all visible rows to clipboard"},
		{"s", "save visible rows to a file (.gz compresses)"},
		{"x", "clear the buffer"},
		{"T", "cycle theme"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Porthole keys"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			styles.AccentText.Render(fmt.Sprintf("%-12s", bind.key)),
			styles.Text.Render(bind.desc)))
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("esc to close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
