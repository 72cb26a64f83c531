package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/portholedev/porthole/internal/logring"
)

// Config captures the fields Porthole reads from its config file.
type Config struct {
	LogPath  string
	Capacity int
	Level    logring.Level
	Backlog  int
}

const (
	defaultConfigPath = "~/.config/porthole/config.toml"
	defaultCapacity   = 1024
	defaultBacklog    = 200
)

// Load locates and parses the porthole config, falling back to defaults when
// the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Capacity: defaultCapacity,
		Level:    logring.LevelInfo,
		Backlog:  defaultBacklog,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		LogPath  string `toml:"log_path"`
		Capacity int    `toml:"capacity"`
		Level    string `toml:"level"`
		Backlog  int    `toml:"backlog"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if logPath := strings.TrimSpace(raw.LogPath); logPath != "" {
		cfg.LogPath = mustExpand(logPath)
	}
	if raw.Capacity > 0 {
		cfg.Capacity = raw.Capacity
	}
	if level := strings.TrimSpace(raw.Level); level != "" {
		cfg.Level = logring.ParseLevel(level)
	}
	if raw.Backlog > 0 {
		cfg.Backlog = raw.Backlog
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
