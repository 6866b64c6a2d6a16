package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"LocalSketch/internal/config"
	"LocalSketch/internal/state"
	"LocalSketch/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	if *debug {
		level = slog.LevelDebug
	}
	logger := newLogger(level)
	slog.SetDefault(logger)
	gg.SetLogger(logger)

	logger.Info("starting", "session", state.SessionID(), "canvas_width", cfg.CanvasWidth, "canvas_height", cfg.CanvasHeight)
	if err := ui.RunApp(cfg, logger); err != nil {
		logger.Error("application failed", "err", err)
		os.Exit(1)
	}
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
