package logring

import (
	"fmt"
	"sync"
)

// Source is an indexable, lengthed sequence of leveled records. *Buffer
// satisfies it; the filter deliberately does not depend on the concrete
// buffer type.
type Source interface {
	Len() int
	At(index int) (Record, error)
}

// FilterView projects a Source down to the records whose level meets or
// exceeds a threshold. The view holds no data of its own; every query is a
// linear scan over the source, which is cheap at the buffer sizes the viewer
// uses (~1024 records).
type FilterView struct {
	mu        sync.Mutex
	src       Source
	threshold Level
}

// NewFilterView creates a view over src showing records at or above threshold.
func NewFilterView(src Source, threshold Level) *FilterView {
	return &FilterView{src: src, threshold: threshold}
}

// Threshold returns the current severity threshold.
func (v *FilterView) Threshold() Level {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.threshold
}

// SetThreshold updates the severity threshold. Subsequent queries reflect
// the new value.
func (v *FilterView) SetThreshold(level Level) {
	v.mu.Lock()
	v.threshold = level
	v.mu.Unlock()
}

// VisibleCount returns the number of source records at or above the threshold.
func (v *FilterView) VisibleCount() int {
	return len(v.VisibleIndices())
}

// VisibleIndices returns the source indices of visible records in ascending
// order. Records that vanish mid-scan (a concurrent Clear) are skipped.
func (v *FilterView) VisibleIndices() []int {
	threshold := v.Threshold()
	n := v.src.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		rec, err := v.src.At(i)
		if err != nil {
			break
		}
		if rec.Level >= threshold {
			indices = append(indices, i)
		}
	}
	return indices
}

// MapVisibleToSource translates a 0-based position within the filtered view
// to the corresponding index in the source.
func (v *FilterView) MapVisibleToSource(visibleIndex int) (int, error) {
	indices := v.VisibleIndices()
	if visibleIndex < 0 || visibleIndex >= len(indices) {
		return 0, fmt.Errorf("visible index %d of %d: %w", visibleIndex, len(indices), ErrIndexOutOfRange)
	}
	return indices[visibleIndex], nil
}
