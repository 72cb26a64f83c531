// Package export writes log records to files in display order. Output is the
// newline-joined pre-formatted text of each record; paths ending in .gz are
// gzip-compressed.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/portholedev/porthole/internal/logring"
)

// Write streams the formatted text of records to w, one per line.
func Write(w io.Writer, records []logring.Record) error {
	for _, rec := range records {
		if _, err := io.WriteString(w, rec.Formatted); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	return nil
}

// Save writes records to the file at path, creating parent directories as
// needed. A .gz suffix selects gzip compression.
func Save(path string, records []logring.Record) error {
	resolved := strings.TrimSpace(path)
	if resolved == "" {
		return fmt.Errorf("save log: path is empty")
	}

	if dir := filepath.Dir(resolved); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}

	file, err := os.Create(resolved)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	var w io.Writer = file
	var gz *gzip.Writer
	if strings.HasSuffix(resolved, ".gz") {
		gz = gzip.NewWriter(file)
		w = gz
	}

	if err := Write(w, records); err != nil {
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("close gzip: %w", err)
		}
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	return nil
}
