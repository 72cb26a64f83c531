// Package ui implements the Porthole terminal interface: a Bubble Tea model
// that renders the record buffer as a scrollable table with level filtering,
// pause, follow, clipboard copy, save-to-file, and clear. The buffer is the
// source of truth; the table is rebuilt from the filtered view whenever the
// buffer reports a change.
package ui
