// Package raster implements the drawing surface's bitmap on top of the
// gg software rasterizer.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"log/slog"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"LocalSketch/internal/state"
)

// Canvas is a fixed-size raster. It is not safe for concurrent use.
type Canvas struct {
	dc         *gg.Context
	background color.NRGBA
	quality    int
	log        *slog.Logger
}

var _ state.Canvas = (*Canvas)(nil)

// New creates a blank width x height canvas. background is the color blank
// pixels take on export; quality is the JPEG quality (1-100).
func New(width, height int, background string, quality int, logger *slog.Logger) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	bg, err := state.ParseHexColor(background)
	if err != nil {
		return nil, fmt.Errorf("canvas background: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Canvas{
		dc:         gg.NewContext(width, height),
		background: bg,
		quality:    quality,
		log:        logger,
	}, nil
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.dc.Width() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.dc.Height() }

// Background returns the color blank pixels take on export.
func (c *Canvas) Background() color.NRGBA { return c.background }

// DrawSegment strokes one straight line.
func (c *Canvas) DrawSegment(seg state.Segment) {
	c.dc.SetHexColor(seg.Color)
	c.dc.SetLineWidth(float64(seg.Width))
	c.dc.SetLineCap(gg.LineCapButt)
	c.dc.SetLineJoin(lineJoin(seg.Join))

	c.dc.MoveTo(seg.From.X, seg.From.Y)
	c.dc.LineTo(seg.To.X, seg.To.Y)
	c.dc.ClosePath()
	if err := c.dc.Stroke(); err != nil {
		c.log.Warn("stroke failed", "err", err)
	}
}

func lineJoin(j state.LineJoin) gg.LineJoin {
	switch j {
	case state.JoinRound:
		return gg.LineJoinRound
	case state.JoinBevel:
		return gg.LineJoinBevel
	}
	return gg.LineJoinMiter
}

// Clear makes every pixel transparent.
func (c *Canvas) Clear() {
	c.dc.ClearPath()
	c.dc.Clear()
}

// Image returns a snapshot of the raster, transparent where nothing is drawn.
func (c *Canvas) Image() image.Image {
	_ = c.dc.FlushGPU()
	return c.dc.Image()
}

// Flatten returns the raster composited over the background color.
func (c *Canvas) Flatten() *image.RGBA {
	src := c.Image()
	dst := image.NewRGBA(src.Bounds())
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(c.background), image.Point{}, xdraw.Src)
	xdraw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, xdraw.Over)
	return dst
}

// EncodeJPEG writes the flattened raster as JPEG.
func (c *Canvas) EncodeJPEG(w io.Writer) error {
	if err := jpeg.Encode(w, c.Flatten(), &jpeg.Options{Quality: c.quality}); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return nil
}

// Close releases the rasterizer.
func (c *Canvas) Close() error {
	return c.dc.Close()
}
