package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/portholedev/porthole/internal/config"
	"github.com/portholedev/porthole/internal/logring"
	"github.com/portholedev/porthole/internal/prefs"
	"github.com/portholedev/porthole/internal/tail"
	"github.com/portholedev/porthole/internal/ui"
)

// Options configure the Porthole application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/porthole/prefs.toml
	LogPath    string // overrides the configured log file
	Capacity   int    // overrides the configured buffer capacity
	Level      string // overrides the saved level filter
}

// Run boots the Porthole viewer until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	capacity := cfg.Capacity
	if opts.Capacity > 0 {
		capacity = opts.Capacity
	}
	buffer := logring.NewBuffer(capacity)

	level := cfg.Level
	if saved := strings.TrimSpace(userPrefs.Level); saved != "" {
		level = logring.ParseLevel(saved)
	}
	if flag := strings.TrimSpace(opts.Level); flag != "" {
		level = logring.ParseLevel(flag)
	}

	logPath := cfg.LogPath
	if strings.TrimSpace(opts.LogPath) != "" {
		logPath = opts.LogPath
	}

	title := "Porthole"
	switch {
	case logPath != "":
		title = fmt.Sprintf("Porthole: %s", logPath)
		startTailer(ctx, logPath, cfg.Backlog, buffer)
	case stdinIsPipe():
		title = "Porthole: stdin"
		startStdinFeed(ctx, buffer)
	default:
		return fmt.Errorf("no log source: set log_path, pass -file, or pipe input")
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Buffer:    buffer,
		Level:     level,
		ThemeName: userPrefs.Theme,
		Follow:    userPrefs.Follow,
		PrefsPath: opts.PrefsPath,
		Title:     title,
	})
}

// startTailer follows the log file in the background. A tailer failure is
// reported into the buffer itself so the viewer surfaces it as a record.
func startTailer(ctx context.Context, path string, backlog int, buffer *logring.Buffer) {
	tailer := tail.New(path, backlog, buffer)
	go func() {
		if err := tailer.Run(ctx); err != nil && ctx.Err() == nil {
			buffer.Append(logring.NewRecord(
				nowFunc(), logring.LevelError, fmt.Sprintf("porthole: tail %s: %v", path, err)))
		}
	}()
}

func stdinIsPipe() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}
