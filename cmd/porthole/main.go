package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/portholedev/porthole/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override porthole config path (optional)")
	logPath := flag.String("file", "", "log file to follow (optional, defaults to config or stdin)")
	capacity := flag.Int("capacity", 0, "max buffered records (optional, 0 uses config)")
	level := flag.String("level", "", "initial level filter: trace..fatal (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		LogPath:    *logPath,
		Level:      *level,
	}
	if *capacity > 0 {
		opts.Capacity = *capacity
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "porthole: %v\n", err)
		return 1
	}
	return 0
}
