package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"LocalSketch/internal/raster"
	"LocalSketch/internal/state"
)

// SurfaceWidget hosts a drawing surface in a Fyne window. The surface is
// mounted while the widget has a renderer and unmounted when it is destroyed.
type SurfaceWidget struct {
	widget.BaseWidget
	Surface *state.Surface
	canvas  *raster.Canvas
}

var _ fyne.Widget = (*SurfaceWidget)(nil)
var _ desktop.Mouseable = (*SurfaceWidget)(nil)
var _ desktop.Hoverable = (*SurfaceWidget)(nil)

// NewSurfaceWidget creates the widget for s drawing on c.
func NewSurfaceWidget(s *state.Surface, c *raster.Canvas) *SurfaceWidget {
	w := &SurfaceWidget{Surface: s, canvas: c}
	w.ExtendBaseWidget(w)
	return w
}

func (w *SurfaceWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &surfaceRenderer{
		widget:     w,
		background: canvas.NewRectangle(w.canvas.Background()),
	}
	r.raster = canvas.NewRaster(func(int, int) image.Image {
		return w.canvas.Image()
	})
	r.raster.ScaleMode = canvas.ImageScalePixels

	w.Surface.OnRedraw = r.raster.Refresh
	r.release = w.Surface.Mount(w.canvas, w.offset)
	return r
}

// offset is the page position of the canvas' top-left corner.
func (w *SurfaceWidget) offset() (state.Point, bool) {
	a := fyne.CurrentApp()
	if a == nil {
		return state.Point{}, false
	}
	pos := a.Driver().AbsolutePositionForObject(w)
	return toPoint(pos), true
}

func toPoint(p fyne.Position) state.Point {
	return state.Point{X: float64(p.X), Y: float64(p.Y)}
}

func (w *SurfaceWidget) dispatch(kind state.EventKind, e *desktop.MouseEvent) {
	ev := state.PointerEvent{Kind: kind}
	if e != nil {
		ev.Page = toPoint(e.AbsolutePosition)
	}
	w.Surface.Dispatch(ev)
}

func (w *SurfaceWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.dispatch(state.PointerDown, e)
	}
}

func (w *SurfaceWidget) MouseUp(e *desktop.MouseEvent) {
	w.dispatch(state.PointerUp, e)
}

func (w *SurfaceWidget) MouseMoved(e *desktop.MouseEvent) {
	w.dispatch(state.PointerMove, e)
}

func (w *SurfaceWidget) MouseOut() {
	w.dispatch(state.PointerLeave, nil)
}

func (w *SurfaceWidget) MouseIn(*desktop.MouseEvent) {}

type surfaceRenderer struct {
	widget     *SurfaceWidget
	background *canvas.Rectangle
	raster     *canvas.Raster
	release    func()
}

func (r *surfaceRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.raster}
}

func (r *surfaceRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.raster.Move(fyne.NewPos(0, 0))
	r.raster.Resize(r.MinSize())
}

// MinSize keeps the canvas at one logical pixel per raster pixel.
func (r *surfaceRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(r.widget.canvas.Width()), float32(r.widget.canvas.Height()))
}

func (r *surfaceRenderer) Refresh() {
	r.background.Refresh()
	r.raster.Refresh()
}

func (r *surfaceRenderer) Destroy() {
	r.widget.Surface.OnRedraw = nil
	r.release()
}
