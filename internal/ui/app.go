package ui

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"

	"LocalSketch/internal/config"
	"LocalSketch/internal/export"
	"LocalSketch/internal/raster"
	"LocalSketch/internal/state"
)

// Studio wires a drawing surface, its canvas and the toolbar into a window.
type Studio struct {
	cfg    config.Config
	log    *slog.Logger
	window fyne.Window

	Surface *state.Surface
	Canvas  *raster.Canvas
	Widget  *SurfaceWidget
	Toolbar *Toolbar
}

// NewStudio creates the drawing surface for cfg, shown in win.
func NewStudio(cfg config.Config, logger *slog.Logger, win fyne.Window) (*Studio, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c, err := raster.New(cfg.CanvasWidth, cfg.CanvasHeight, cfg.Background, cfg.JPEGQuality, logger)
	if err != nil {
		return nil, fmt.Errorf("create canvas: %w", err)
	}
	st := &Studio{
		cfg:     cfg,
		log:     logger,
		window:  win,
		Surface: state.NewSurface(cfg.SurfaceOptions(logger)),
		Canvas:  c,
	}
	st.Widget = NewSurfaceWidget(st.Surface, c)
	st.Toolbar = NewToolbar(st.Surface, Actions{
		PickColor: st.PickColor,
		Save:      st.Save,
		ExportPDF: st.ExportPDF,
	})
	st.Surface.OnToolsChanged = st.Toolbar.Sync
	return st, nil
}

// Content is the toolbar above the scrollable canvas.
func (st *Studio) Content() fyne.CanvasObject {
	return container.NewBorder(st.Toolbar.Content(), nil, nil, nil, newBoard(st.Widget))
}

// PickColor opens the color picker for the stroke color.
func (st *Studio) PickColor() {
	picker := dialog.NewColorPicker("Stroke color", "Pick a stroke color", func(c color.Color) {
		st.Surface.SetColor(state.HexColor(c))
	}, st.window)
	picker.Advanced = true
	if c, err := state.ParseHexColor(st.Surface.Tools().StrokeColor); err == nil {
		picker.SetColor(c)
	}
	picker.Show()
}

// Save downloads the canvas as a JPEG into the download directory.
func (st *Studio) Save() {
	dir := st.cfg.Downloads()
	u, err := export.Download(dir, st.cfg.ExportName, st.Surface)
	switch {
	case errors.Is(err, state.ErrNotMounted):
		st.log.Debug("save skipped, surface not mounted")
	case err != nil:
		st.log.Error("save failed", "dir", dir, "err", err)
		st.Toolbar.SetStatus("Error saving image")
	default:
		st.log.Info("saved image", "path", u.Path())
		st.Toolbar.SetStatus("Saved " + u.Name())
	}
}

// ExportPDF asks for a destination and writes the canvas as a PDF page.
func (st *Studio) ExportPDF() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			st.log.Error("pdf dialog failed", "err", err)
			st.Toolbar.SetStatus("Error exporting PDF")
			return
		}
		if w == nil {
			return
		}
		st.writePDF(w)
	}, st.window)
	d.SetFileName("image.pdf")
	d.Show()
}

func (st *Studio) writePDF(w fyne.URIWriteCloser) {
	defer func() {
		if err := w.Close(); err != nil {
			st.log.Error("closing pdf", "err", err)
		}
	}()
	err := export.PDF(w, st.Surface, st.Canvas.Width(), st.Canvas.Height())
	switch {
	case errors.Is(err, state.ErrNotMounted):
		st.log.Debug("pdf export skipped, surface not mounted")
	case err != nil:
		st.log.Error("pdf export failed", "uri", w.URI().String(), "err", err)
		st.Toolbar.SetStatus("Error exporting PDF")
	default:
		st.log.Info("exported pdf", "uri", w.URI().String())
		st.Toolbar.SetStatus("Exported " + w.URI().Name())
	}
}

// Close releases the canvas.
func (st *Studio) Close() {
	if err := st.Canvas.Close(); err != nil {
		st.log.Warn("closing canvas", "err", err)
	}
}

// RunApp opens the main window and blocks until it is closed.
func RunApp(cfg config.Config, logger *slog.Logger) error {
	myApp := app.New()
	myWindow := myApp.NewWindow(cfg.Title)
	myWindow.Resize(fyne.NewSize(1280, 800))

	st, err := NewStudio(cfg, logger, myWindow)
	if err != nil {
		return err
	}
	defer st.Close()

	myWindow.SetContent(st.Content())
	myWindow.ShowAndRun()
	return nil
}
