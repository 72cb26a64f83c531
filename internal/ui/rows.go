package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/table"

	"github.com/portholedev/porthole/internal/logring"
)

// rebuildRows refreshes the table from the filtered view. The cursor follows
// the bottom when follow mode is on, otherwise it stays on the same source
// record where possible.
func (m *Model) rebuildRows() {
	prevSource := -1
	if !m.follow && m.table.Cursor() >= 0 && m.table.Cursor() < len(m.visible) {
		prevSource = m.visible[m.table.Cursor()]
	}

	m.visible = m.filter.VisibleIndices()
	rows := make([]table.Row, 0, len(m.visible))
	for _, src := range m.visible {
		rec, err := m.buffer.At(src)
		if err != nil {
			// The buffer shrank mid-build; rebuild against the new state.
			if errors.Is(err, logring.ErrIndexOutOfRange) {
				break
			}
			continue
		}
		rows = append(rows, recordRow(rec))
	}
	m.table.SetRows(rows)
	m.lastLen = m.buffer.Len()

	switch {
	case m.follow:
		m.table.GotoBottom()
	case prevSource >= 0:
		m.table.SetCursor(nearestVisible(m.visible, prevSource))
	}
}

// recordRow formats one record as table cells.
func recordRow(rec logring.Record) table.Row {
	return table.Row{
		rec.Time.Format(logring.TimeLayout),
		rec.Level.String(),
		rec.Message,
	}
}

// nearestVisible returns the position in indices whose value is closest to
// src without going past it, keeping the cursor stable across evictions.
func nearestVisible(indices []int, src int) int {
	if len(indices) == 0 {
		return 0
	}
	for i := len(indices) - 1; i >= 0; i-- {
		if indices[i] <= src {
			return i
		}
	}
	return 0
}

// selectedRecord returns the record under the cursor.
func (m *Model) selectedRecord() (logring.Record, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.visible) {
		return logring.Record{}, false
	}
	src, err := m.filter.MapVisibleToSource(cursor)
	if err != nil {
		return logring.Record{}, false
	}
	rec, err := m.buffer.At(src)
	if err != nil {
		return logring.Record{}, false
	}
	return rec, true
}

// visibleRecords returns the records currently shown, in display order.
func (m *Model) visibleRecords() []logring.Record {
	indices := m.filter.VisibleIndices()
	records := make([]logring.Record, 0, len(indices))
	for _, src := range indices {
		rec, err := m.buffer.At(src)
		if err != nil {
			break
		}
		records = append(records, rec)
	}
	return records
}
