package parse

import (
	"strings"
	"sync"

	"github.com/portholedev/porthole/internal/logring"
)

// Writer is an io.Writer that feeds a log buffer. Input is split into lines,
// a trailing partial line is kept across writes, and each complete line is
// parsed and appended. It lets an in-process logger (or a piped stdin) act
// as the producer side of the viewer.
type Writer struct {
	mu      sync.Mutex
	buffer  *logring.Buffer
	partial string
}

// NewWriter creates a Writer appending to buffer.
func NewWriter(buffer *logring.Buffer) *Writer {
	return &Writer{buffer: buffer}
}

// Write implements io.Writer. It never fails.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()

	data := w.partial + string(p)
	w.partial = ""

	var lines []string
	for {
		idx := strings.IndexByte(data, '\n')
		if idx < 0 {
			w.partial = data
			break
		}
		lines = append(lines, data[:idx])
		data = data[idx+1:]
	}
	w.mu.Unlock()

	// Append outside the writer lock; the buffer has its own.
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		w.buffer.Append(Line(line))
	}

	return len(p), nil
}

// Flush appends any buffered partial line as a record. Call it when the
// input stream ends without a final newline.
func (w *Writer) Flush() {
	w.mu.Lock()
	line := w.partial
	w.partial = ""
	w.mu.Unlock()

	if strings.TrimSpace(line) != "" {
		w.buffer.Append(Line(line))
	}
}
