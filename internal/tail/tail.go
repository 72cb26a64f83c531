package tail

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/portholedev/porthole/internal/logring"
	"github.com/portholedev/porthole/internal/parse"
)

const defaultPollEvery = 500 * time.Millisecond

// Tailer appends the lines of a log file to a buffer as they are written.
type Tailer struct {
	path      string
	backlog   int
	buffer    *logring.Buffer
	pollEvery time.Duration

	offset  int64
	partial string
}

// New creates a tailer for path. At most backlog existing lines are loaded
// before live tailing begins; backlog <= 0 skips the existing content.
func New(path string, backlog int, buffer *logring.Buffer) *Tailer {
	return &Tailer{
		path:      path,
		backlog:   backlog,
		buffer:    buffer,
		pollEvery: defaultPollEvery,
	}
}

// Run tails the file until ctx is cancelled. A missing file is not an error;
// the tailer waits for it to appear.
func (t *Tailer) Run(ctx context.Context) error {
	if err := t.loadBacklog(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file so rotation and recreation
	// still produce events.
	dir := filepath.Dir(t.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	ticker := time.NewTicker(t.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != t.path {
				continue
			}
			if err := t.catchUp(); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				return fmt.Errorf("watch: %w", err)
			}
		case <-ticker.C:
			// Fallback for filesystems where write events are unreliable.
			if err := t.catchUp(); err != nil {
				return err
			}
		}
	}
}

// loadBacklog appends the last backlog lines of the file and positions the
// read offset at its end.
func (t *Tailer) loadBacklog() error {
	file, err := os.Open(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	lines, size, err := readTail(file, t.backlog)
	if err != nil {
		return err
	}
	for _, line := range lines {
		t.buffer.Append(parse.Line(line))
	}
	t.offset = size
	return nil
}

// catchUp reads everything written since the last offset. A shrunken file is
// treated as truncated and re-read from the start.
func (t *Tailer) catchUp() error {
	info, err := os.Stat(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			t.offset = 0
			t.partial = ""
			return nil
		}
		return fmt.Errorf("stat log: %w", err)
	}

	if info.Size() < t.offset {
		t.offset = 0
		t.partial = ""
	}
	if info.Size() == t.offset {
		return nil
	}

	file, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(t.offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek log: %w", err)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	t.offset += int64(len(data))

	text := t.partial + string(data)
	t.partial = ""
	for {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			t.partial = text
			break
		}
		line := text[:idx]
		text = text[idx+1:]
		if strings.TrimSpace(line) == "" {
			continue
		}
		t.buffer.Append(parse.Line(line))
	}
	return nil
}

// readTail returns at most maxLines from the end of the file along with the
// file size at read time.
func readTail(file *os.File, maxLines int) ([]string, int64, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("stat log: %w", err)
	}
	size := info.Size()

	if maxLines <= 0 {
		return nil, size, nil
	}

	scanner := bufio.NewScanner(io.LimitReader(file, size))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, size, nil
}
