package export

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/portholedev/porthole/internal/logring"
)

func sampleRecords() []logring.Record {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	return []logring.Record{
		logring.NewRecord(ts, logring.LevelWarn, "low disk"),
		logring.NewRecord(ts.Add(time.Second), logring.LevelError, "disk full"),
	}
}

const wantText = "2025-03-14 09:26:53 WARN low disk\n2025-03-14 09:26:54 ERROR disk full\n"

func TestWrite_JoinsFormattedLines(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleRecords()); err != nil {
		t.Fatalf("Write error = %v", err)
	}
	if buf.String() != wantText {
		t.Fatalf("Write output = %q, want %q", buf.String(), wantText)
	}
}

func TestWrite_EmptyInput(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatalf("Write error = %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("Write output = %q, want empty", buf.String())
	}
}

func TestSave_PlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "view.log")
	if err := Save(path, sampleRecords()); err != nil {
		t.Fatalf("Save error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(data) != wantText {
		t.Fatalf("export = %q, want %q", data, wantText)
	}
}

func TestSave_GzipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.log.gz")
	if err := Save(path, sampleRecords()); err != nil {
		t.Fatalf("Save error = %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer gz.Close()

	data, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if string(data) != wantText {
		t.Fatalf("export = %q, want %q", data, wantText)
	}
}

func TestSave_EmptyPath(t *testing.T) {
	if err := Save("   ", sampleRecords()); err == nil {
		t.Fatal("Save with empty path: error = nil, want error")
	}
}
