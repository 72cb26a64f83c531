package logring

import (
	"errors"
	"fmt"
	"sync"
)

// ErrIndexOutOfRange is returned by At and MapVisibleToSource when the
// requested position does not exist at query time. The buffer may shrink
// between a Len call and an At call (a concurrent Clear), so callers treat
// this as a normal, recoverable condition.
var ErrIndexOutOfRange = errors.New("index out of range")

// Observer receives buffer change notifications. Callbacks run outside the
// buffer lock, so implementations may read back into the buffer, and must be
// safe for invocation from the producer goroutine.
type Observer interface {
	// RecordAppended reports the index of a newly appended record. The index
	// already accounts for any eviction performed by the same append.
	RecordAppended(index int)
	// RangeChanged reports that an eviction shifted the remaining records.
	RangeChanged()
	// BufferReset reports that the buffer was cleared.
	BufferReset()
}

// Buffer is a bounded FIFO of log records. One or more producers append
// while the UI reads concurrently; all mutation is serialized by a single
// write lock and reads take the shared lock.
type Buffer struct {
	mu       sync.RWMutex
	records  []Record
	capacity int // <= 0 means unbounded

	obsMu     sync.Mutex
	observers map[int]Observer
	nextObsID int
	obsOrder  []int
}

// NewBuffer creates a buffer holding at most capacity records. A capacity of
// zero or less means the buffer is unbounded.
func NewBuffer(capacity int) *Buffer {
	b := &Buffer{capacity: capacity}
	if capacity > 0 {
		b.records = make([]Record, 0, capacity)
	}
	return b
}

// Capacity returns the configured maximum record count, or 0 when unbounded.
func (b *Buffer) Capacity() int {
	if b.capacity <= 0 {
		return 0
	}
	return b.capacity
}

// Append adds a record to the end of the buffer, evicting the oldest record
// when the capacity would be exceeded. It always succeeds.
func (b *Buffer) Append(rec Record) {
	b.mu.Lock()
	b.records = append(b.records, rec)
	evicted := false
	if b.capacity > 0 && len(b.records) > b.capacity {
		// Shift in place so the backing array keeps its capacity.
		copy(b.records, b.records[1:])
		b.records = b.records[:len(b.records)-1]
		evicted = true
	}
	index := len(b.records) - 1
	b.mu.Unlock()

	// Notify outside the lock so observers can read back into the buffer.
	for _, obs := range b.snapshotObservers() {
		obs.RecordAppended(index)
		if evicted {
			obs.RangeChanged()
		}
	}
}

// At returns a copy of the record at index.
func (b *Buffer) At(index int) (Record, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if index < 0 || index >= len(b.records) {
		return Record{}, fmt.Errorf("at %d of %d: %w", index, len(b.records), ErrIndexOutOfRange)
	}
	return b.records[index], nil
}

// Len returns the current record count.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.records)
}

// Clear removes all records. The capacity is unchanged and subsequent
// appends start a fresh FIFO.
func (b *Buffer) Clear() {
	b.mu.Lock()
	b.records = b.records[:0]
	b.mu.Unlock()

	for _, obs := range b.snapshotObservers() {
		obs.BufferReset()
	}
}

// Snapshot returns a copy of all records in append order.
func (b *Buffer) Snapshot() []Record {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.records) == 0 {
		return nil
	}
	out := make([]Record, len(b.records))
	copy(out, b.records)
	return out
}

// Subscribe registers an observer and returns a function that removes it.
// Observers are notified in subscription order.
func (b *Buffer) Subscribe(obs Observer) (unsubscribe func()) {
	b.obsMu.Lock()
	defer b.obsMu.Unlock()
	if b.observers == nil {
		b.observers = make(map[int]Observer)
	}
	id := b.nextObsID
	b.nextObsID++
	b.observers[id] = obs
	b.obsOrder = append(b.obsOrder, id)

	return func() {
		b.obsMu.Lock()
		defer b.obsMu.Unlock()
		delete(b.observers, id)
		for i, v := range b.obsOrder {
			if v == id {
				b.obsOrder = append(b.obsOrder[:i], b.obsOrder[i+1:]...)
				break
			}
		}
	}
}

func (b *Buffer) snapshotObservers() []Observer {
	b.obsMu.Lock()
	defer b.obsMu.Unlock()
	if len(b.obsOrder) == 0 {
		return nil
	}
	out := make([]Observer, 0, len(b.obsOrder))
	for _, id := range b.obsOrder {
		if obs, ok := b.observers[id]; ok {
			out = append(out, obs)
		}
	}
	return out
}
