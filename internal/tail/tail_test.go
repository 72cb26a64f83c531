package tail

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/portholedev/porthole/internal/logring"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func appendFile(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("append %s: %v", path, err)
	}
}

func waitForLen(t *testing.T, b *logring.Buffer, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if b.Len() >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("buffer length = %d, want %d", b.Len(), want)
}

func TestLoadBacklog_LimitsLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	writeFile(t, path, "INFO one\nINFO two\nINFO three\nINFO four\n")

	b := logring.NewBuffer(0)
	tailer := New(path, 2, b)
	if err := tailer.loadBacklog(); err != nil {
		t.Fatalf("loadBacklog error = %v", err)
	}

	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	first, err := b.At(0)
	if err != nil {
		t.Fatalf("At(0) error = %v", err)
	}
	if first.Message != "three" {
		t.Fatalf("first backlog message = %q, want %q", first.Message, "three")
	}
}

func TestLoadBacklog_MissingFileIsNotAnError(t *testing.T) {
	b := logring.NewBuffer(0)
	tailer := New(filepath.Join(t.TempDir(), "absent.log"), 10, b)
	if err := tailer.loadBacklog(); err != nil {
		t.Fatalf("loadBacklog error = %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", b.Len())
	}
}

func TestLoadBacklog_ZeroBacklogSkipsContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	writeFile(t, path, "INFO old\n")

	b := logring.NewBuffer(0)
	tailer := New(path, 0, b)
	if err := tailer.loadBacklog(); err != nil {
		t.Fatalf("loadBacklog error = %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", b.Len())
	}

	appendFile(t, path, "WARN fresh\n")
	if err := tailer.catchUp(); err != nil {
		t.Fatalf("catchUp error = %v", err)
	}
	if b.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", b.Len())
	}
}

func TestCatchUp_ReadsAppendedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	writeFile(t, path, "INFO start\n")

	b := logring.NewBuffer(0)
	tailer := New(path, 100, b)
	if err := tailer.loadBacklog(); err != nil {
		t.Fatalf("loadBacklog error = %v", err)
	}

	appendFile(t, path, "ERROR first\nWARN seco")
	if err := tailer.catchUp(); err != nil {
		t.Fatalf("catchUp error = %v", err)
	}
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (partial line held back)", b.Len())
	}

	appendFile(t, path, "nd\n")
	if err := tailer.catchUp(); err != nil {
		t.Fatalf("catchUp error = %v", err)
	}
	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", b.Len())
	}
	last, err := b.At(2)
	if err != nil {
		t.Fatalf("At(2) error = %v", err)
	}
	if last.Message != "second" {
		t.Fatalf("last message = %q, want %q", last.Message, "second")
	}
}

func TestCatchUp_TruncationRestartsFromTop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	writeFile(t, path, "INFO a\nINFO b\nINFO c\n")

	b := logring.NewBuffer(0)
	tailer := New(path, 100, b)
	if err := tailer.loadBacklog(); err != nil {
		t.Fatalf("loadBacklog error = %v", err)
	}
	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", b.Len())
	}

	writeFile(t, path, "WARN rotated\n")
	if err := tailer.catchUp(); err != nil {
		t.Fatalf("catchUp error = %v", err)
	}
	if b.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", b.Len())
	}
	last, err := b.At(3)
	if err != nil {
		t.Fatalf("At(3) error = %v", err)
	}
	if last.Message != "rotated" {
		t.Fatalf("last message = %q, want %q", last.Message, "rotated")
	}
}

func TestRun_TailsLiveWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	writeFile(t, path, "INFO backlog\n")

	b := logring.NewBuffer(0)
	tailer := New(path, 100, b)
	tailer.pollEvery = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- tailer.Run(ctx) }()

	waitForLen(t, b, 1)
	appendFile(t, path, "ERROR live\n")
	waitForLen(t, b, 2)

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
}
