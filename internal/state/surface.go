package state

import (
	"errors"
	"io"
	"log/slog"
)

// ErrNotMounted is returned when an operation needs the canvas before it is mounted.
var ErrNotMounted = errors.New("drawing surface not mounted")

// Canvas is the raster target a Surface draws on.
type Canvas interface {
	DrawSegment(seg Segment)
	Clear()
	EncodeJPEG(w io.Writer) error
}

// OffsetFunc reports the page position of the canvas' top-left corner.
// It returns false while the canvas has no position yet.
type OffsetFunc func() (Point, bool)

// Options configure a new Surface.
type Options struct {
	Background string      // eraser color, "#rrggbb"
	Color      string      // initial stroke color
	Width      StrokeWidth // initial stroke width
	Logger     *slog.Logger
}

// Surface is the drawing surface: tool selection, the pointer state
// machine and the draw/clear/export operations over a mounted Canvas.
// All methods are expected to run on the UI event goroutine.
type Surface struct {
	tools      ToolState
	pointer    PointerState
	background string

	canvas    Canvas
	offset    OffsetFunc
	listeners *Listeners
	regs      []*Registration
	gesture   Gesture
	log       *slog.Logger

	// OnRedraw is called after the canvas pixels change.
	OnRedraw func()
	// OnToolsChanged is called after any ToolState mutation.
	OnToolsChanged func(ToolState)
}

// NewSurface returns an unmounted surface in the Idle phase.
func NewSurface(opts Options) *Surface {
	if opts.Background == "" {
		opts.Background = "#ffffff"
	}
	if opts.Color == "" {
		opts.Color = "#000000"
	}
	if opts.Width == 0 {
		opts.Width = 5
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Surface{
		tools: ToolState{
			StrokeColor: opts.Color,
			StrokeWidth: opts.Width,
		},
		background: opts.Background,
		listeners:  NewListeners(),
		log:        opts.Logger,
	}
}

// Listeners returns the registry pointer events are dispatched through.
func (s *Surface) Listeners() *Listeners { return s.listeners }

// Tools returns the current tool selection.
func (s *Surface) Tools() ToolState { return s.tools }

// Pointer returns the current pointer state.
func (s *Surface) Pointer() PointerState { return s.pointer }

// Phase reports whether a paint gesture is in progress.
func (s *Surface) Phase() Phase {
	if s.pointer.Painting {
		return Painting
	}
	return Idle
}

// Mounted reports whether a canvas is attached.
func (s *Surface) Mounted() bool { return s.canvas != nil }

// Mount attaches c and registers the pointer handlers. The returned func
// detaches them and unmounts c; calling it again, or after a newer Mount,
// does nothing.
// Mounting an already mounted surface releases the previous mount first.
func (s *Surface) Mount(c Canvas, offset OffsetFunc) (release func()) {
	s.unmount()

	s.canvas = c
	s.offset = offset
	s.pointer = PointerState{}
	s.regs = []*Registration{
		s.listeners.Attach(PointerDown, s.startPaint),
		s.listeners.Attach(PointerMove, s.paint),
		s.listeners.Attach(PointerUp, s.exitPaint),
		s.listeners.Attach(PointerLeave, s.exitPaint),
	}
	s.log.Debug("surface mounted", "session", SessionID())

	first := s.regs[0]
	return func() {
		// A later Mount replaced this one and already released its handlers.
		if len(s.regs) > 0 && s.regs[0] == first {
			s.unmount()
		}
	}
}

func (s *Surface) unmount() {
	if s.regs == nil {
		return
	}
	for _, r := range s.regs {
		r.Release()
	}
	s.regs = nil
	s.canvas = nil
	s.offset = nil
	s.pointer = PointerState{}
	s.log.Debug("surface unmounted", "session", SessionID())
}

// Dispatch routes a pointer event to the attached handlers.
func (s *Surface) Dispatch(ev PointerEvent) {
	s.listeners.Dispatch(ev)
}

// locate converts page coordinates to canvas-local ones.
func (s *Surface) locate(page Point) (Point, bool) {
	if s.canvas == nil || s.offset == nil {
		return Point{}, false
	}
	origin, ok := s.offset()
	if !ok {
		return Point{}, false
	}
	return page.Sub(origin), true
}

func (s *Surface) startPaint(ev PointerEvent) {
	p, ok := s.locate(ev.Page)
	if !ok {
		return
	}
	s.pointer = PointerState{Painting: true, Last: p}
	s.gesture = nextGesture()
	s.log.Debug("gesture started", "gesture", s.gesture.ID, "seq", s.gesture.Seq, "x", p.X, "y", p.Y)
}

func (s *Surface) paint(ev PointerEvent) {
	if !s.pointer.Painting {
		return
	}
	p, ok := s.locate(ev.Page)
	if !ok {
		return
	}
	s.drawLine(s.pointer.Last, p)
	s.pointer.Last = p
}

func (s *Surface) exitPaint(PointerEvent) {
	if s.pointer.Painting {
		s.log.Debug("gesture ended", "gesture", s.gesture.ID, "seq", s.gesture.Seq)
	}
	s.pointer.Painting = false
}

func (s *Surface) drawLine(from, to Point) {
	if s.canvas == nil {
		return
	}
	s.canvas.DrawSegment(Segment{
		From:  from,
		To:    to,
		Color: s.tools.StrokeColor,
		Width: s.tools.StrokeWidth,
		Join:  JoinRound,
	})
	s.redraw()
}

// SetColor selects a stroke color and leaves eraser mode.
func (s *Surface) SetColor(hex string) {
	if s.tools.EraserActive {
		s.tools.EraserActive = false
	}
	s.tools.StrokeColor = hex
	s.toolsChanged()
}

// SetStrokeWidth selects the width from a stroke selector option.
func (s *Surface) SetStrokeWidth(option string) error {
	w, err := ParseStrokeWidth(option)
	if err != nil {
		return err
	}
	s.tools.StrokeWidth = w
	s.toolsChanged()
	return nil
}

// ActivateEraser paints with the background color from now on.
// Existing pixels are painted over, never made transparent.
func (s *Surface) ActivateEraser() {
	s.tools.StrokeColor = s.background
	s.tools.EraserActive = true
	s.toolsChanged()
}

// Clear blanks the whole canvas. The tool selection is kept.
func (s *Surface) Clear() {
	if s.canvas == nil {
		return
	}
	s.canvas.Clear()
	s.log.Debug("canvas cleared")
	s.redraw()
}

// Export writes the canvas as JPEG to w.
func (s *Surface) Export(w io.Writer) error {
	if s.canvas == nil {
		return ErrNotMounted
	}
	return s.canvas.EncodeJPEG(w)
}

func (s *Surface) redraw() {
	if s.OnRedraw != nil {
		s.OnRedraw()
	}
}

func (s *Surface) toolsChanged() {
	if s.OnToolsChanged != nil {
		s.OnToolsChanged(s.tools)
	}
}
