package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/portholedev/porthole/internal/logring"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Capacity != defaultCapacity {
		t.Fatalf("Capacity = %d, want %d", cfg.Capacity, defaultCapacity)
	}
	if cfg.Level != logring.LevelInfo {
		t.Fatalf("Level = %s, want INFO", cfg.Level)
	}
	if cfg.Backlog != defaultBacklog {
		t.Fatalf("Backlog = %d, want %d", cfg.Backlog, defaultBacklog)
	}
	if cfg.LogPath != "" {
		t.Fatalf("LogPath = %q, want empty", cfg.LogPath)
	}
}

func TestLoad_ParsesAndExpandsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
log_path = "  ~/logs/app.log  "
capacity = 4096
level = "warn"
backlog = 50
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !strings.HasPrefix(cfg.LogPath, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", cfg.LogPath, home)
	}
	if cfg.Capacity != 4096 {
		t.Fatalf("Capacity = %d, want 4096", cfg.Capacity)
	}
	if cfg.Level != logring.LevelWarn {
		t.Fatalf("Level = %s, want WARN", cfg.Level)
	}
	if cfg.Backlog != 50 {
		t.Fatalf("Backlog = %d, want 50", cfg.Backlog)
	}
}

func TestLoad_IgnoresNonPositiveNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
capacity = -5
backlog = 0
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Capacity != defaultCapacity {
		t.Fatalf("Capacity = %d, want default %d", cfg.Capacity, defaultCapacity)
	}
	if cfg.Backlog != defaultBacklog {
		t.Fatalf("Backlog = %d, want default %d", cfg.Backlog, defaultBacklog)
	}
}

func TestLoad_RejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`capacity = [broken`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load with malformed TOML: error = nil, want error")
	}
}
