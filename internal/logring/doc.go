// Package logring provides the bounded, thread-safe log record buffer that
// backs the viewer, together with a level-filtered read-only view over it.
// The buffer is a fixed-capacity FIFO written by a producer goroutine and
// read concurrently by the UI; observers are notified of appends, evictions,
// and resets without the buffer lock held.
package logring
