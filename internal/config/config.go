// Package config holds the application settings and loads them from an
// optional TOML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"LocalSketch/internal/state"
)

// Config is the complete application configuration.
type Config struct {
	Title        string `toml:"title"`
	CanvasWidth  int    `toml:"canvas_width"`
	CanvasHeight int    `toml:"canvas_height"`
	Background   string `toml:"background"`
	Color        string `toml:"color"`
	StrokeWidth  int    `toml:"stroke_width"`
	JPEGQuality  int    `toml:"jpeg_quality"`
	ExportName   string `toml:"export_name"`
	DownloadDir  string `toml:"download_dir"`
	LogLevel     string `toml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Title:        "Local Sketch",
		CanvasWidth:  1920,
		CanvasHeight: 1080,
		Background:   "#ffffff",
		Color:        "#000000",
		StrokeWidth:  5,
		JPEGQuality:  92,
		ExportName:   "image.jpeg",
		LogLevel:     "info",
	}
}

// Load returns Default overlaid with the TOML file at path.
// An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must be positive", c.CanvasWidth, c.CanvasHeight))
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg_quality %d outside 1..100", c.JPEGQuality))
	}
	if !isStrokeOption(state.StrokeWidth(c.StrokeWidth)) {
		errs = append(errs, fmt.Errorf("stroke_width %d is not one of %v", c.StrokeWidth, state.StrokeOptionLabels()))
	}
	for name, v := range map[string]string{"background": c.Background, "color": c.Color} {
		if _, err := state.ParseHexColor(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if c.ExportName == "" || strings.ContainsAny(c.ExportName, `/\`) {
		errs = append(errs, fmt.Errorf("export_name %q must be a plain file name", c.ExportName))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func isStrokeOption(w state.StrokeWidth) bool {
	for _, o := range state.StrokeOptions {
		if o == w {
			return true
		}
	}
	return false
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// Downloads returns the directory the save action writes into: DownloadDir
// when set, else ~/Downloads when it exists, else the working directory.
func (c Config) Downloads() string {
	if c.DownloadDir != "" {
		return c.DownloadDir
	}
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, "Downloads")
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return dir
		}
	}
	return "."
}

// SurfaceOptions returns the initial tool selection for a drawing surface.
func (c Config) SurfaceOptions(logger *slog.Logger) state.Options {
	return state.Options{
		Background: c.Background,
		Color:      c.Color,
		Width:      state.StrokeWidth(c.StrokeWidth),
		Logger:     logger,
	}
}
