package logring

import (
	"errors"
	"testing"
)

func filledBuffer() *Buffer {
	b := NewBuffer(16)
	b.Append(rec(LevelInfo, "info"))
	b.Append(rec(LevelWarn, "warn"))
	b.Append(rec(LevelError, "error"))
	b.Append(rec(LevelDebug, "debug"))
	return b
}

func TestFilterView_ThresholdWarn(t *testing.T) {
	v := NewFilterView(filledBuffer(), LevelWarn)

	if got := v.VisibleCount(); got != 2 {
		t.Fatalf("VisibleCount() = %d, want 2", got)
	}

	idx, err := v.MapVisibleToSource(1)
	if err != nil {
		t.Fatalf("MapVisibleToSource(1) error = %v", err)
	}
	if idx != 2 {
		t.Fatalf("MapVisibleToSource(1) = %d, want 2 (the error record)", idx)
	}
}

func TestFilterView_VisibleCountPerThreshold(t *testing.T) {
	b := filledBuffer()
	tests := []struct {
		threshold Level
		want      int
	}{
		{LevelTrace, 4},
		{LevelDebug, 4},
		{LevelInfo, 3},
		{LevelWarn, 2},
		{LevelError, 1},
		{LevelFatal, 0},
		{LevelOff, 0},
	}
	v := NewFilterView(b, LevelTrace)
	for _, tt := range tests {
		v.SetThreshold(tt.threshold)
		if got := v.VisibleCount(); got != tt.want {
			t.Fatalf("VisibleCount() at %s = %d, want %d", tt.threshold, got, tt.want)
		}
	}
}

func TestFilterView_MappingIsMonotonic(t *testing.T) {
	b := NewBuffer(64)
	levels := []Level{LevelDebug, LevelError, LevelInfo, LevelWarn, LevelTrace, LevelFatal, LevelWarn}
	for _, l := range levels {
		b.Append(rec(l, "m"))
	}

	v := NewFilterView(b, LevelInfo)
	prev := -1
	for i := 0; i < v.VisibleCount(); i++ {
		idx, err := v.MapVisibleToSource(i)
		if err != nil {
			t.Fatalf("MapVisibleToSource(%d) error = %v", i, err)
		}
		if idx <= prev {
			t.Fatalf("mapping not monotonic: index %d -> %d after %d", i, idx, prev)
		}
		rec, err := b.At(idx)
		if err != nil {
			t.Fatalf("At(%d) error = %v", idx, err)
		}
		if rec.Level < LevelInfo {
			t.Fatalf("visible record %d has level %s below threshold", i, rec.Level)
		}
		prev = idx
	}
}

func TestFilterView_MapOutOfRange(t *testing.T) {
	v := NewFilterView(filledBuffer(), LevelWarn)

	if _, err := v.MapVisibleToSource(2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("MapVisibleToSource(2) error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := v.MapVisibleToSource(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("MapVisibleToSource(-1) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestFilterView_TracksBufferChanges(t *testing.T) {
	b := NewBuffer(16)
	v := NewFilterView(b, LevelWarn)

	if got := v.VisibleCount(); got != 0 {
		t.Fatalf("VisibleCount() on empty buffer = %d, want 0", got)
	}

	b.Append(rec(LevelError, "boom"))
	if got := v.VisibleCount(); got != 1 {
		t.Fatalf("VisibleCount() = %d, want 1", got)
	}

	b.Clear()
	if got := v.VisibleCount(); got != 0 {
		t.Fatalf("VisibleCount() after Clear = %d, want 0", got)
	}
	if _, err := v.MapVisibleToSource(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("MapVisibleToSource(0) after Clear error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestFilterView_EvictionKeepsViewConsistent(t *testing.T) {
	b := NewBuffer(3)
	v := NewFilterView(b, LevelWarn)

	b.Append(rec(LevelInfo, "info"))
	b.Append(rec(LevelWarn, "warn"))
	b.Append(rec(LevelError, "error"))
	b.Append(rec(LevelDebug, "debug")) // evicts info

	if got := v.VisibleCount(); got != 2 {
		t.Fatalf("VisibleCount() = %d, want 2", got)
	}
	idx, err := v.MapVisibleToSource(0)
	if err != nil {
		t.Fatalf("MapVisibleToSource(0) error = %v", err)
	}
	if idx != 0 {
		t.Fatalf("MapVisibleToSource(0) = %d, want 0 (warn shifted to front)", idx)
	}
}
