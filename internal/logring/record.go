package logring

import (
	"fmt"
	"time"
)

// TimeLayout is the display layout for record timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// Record is a single log entry. Records are immutable once created; the
// buffer stores and returns them by value.
type Record struct {
	Time      time.Time
	Level     Level
	Message   string
	Formatted string
}

// NewRecord builds a record with the canonical formatted representation.
func NewRecord(t time.Time, level Level, message string) Record {
	return Record{
		Time:      t,
		Level:     level,
		Message:   message,
		Formatted: fmt.Sprintf("%s %s %s", t.Format(TimeLayout), level, message),
	}
}
