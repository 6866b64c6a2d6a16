package state

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCanvas struct {
	segments []Segment
	clears   int
	encodes  int
}

func (c *recordingCanvas) DrawSegment(seg Segment) { c.segments = append(c.segments, seg) }
func (c *recordingCanvas) Clear()                  { c.clears++ }
func (c *recordingCanvas) EncodeJPEG(w io.Writer) error {
	c.encodes++
	_, err := w.Write([]byte{0xff, 0xd8})
	return err
}

func fixedOffset(x, y float64) OffsetFunc {
	return func() (Point, bool) { return Point{X: x, Y: y}, true }
}

func mounted(t *testing.T) (*Surface, *recordingCanvas) {
	t.Helper()
	s := NewSurface(Options{})
	c := &recordingCanvas{}
	release := s.Mount(c, fixedOffset(0, 0))
	t.Cleanup(release)
	return s, c
}

func down(s *Surface, x, y float64) { s.Dispatch(PointerEvent{Kind: PointerDown, Page: Point{X: x, Y: y}}) }
func move(s *Surface, x, y float64) { s.Dispatch(PointerEvent{Kind: PointerMove, Page: Point{X: x, Y: y}}) }
func up(s *Surface)                 { s.Dispatch(PointerEvent{Kind: PointerUp}) }
func leave(s *Surface)              { s.Dispatch(PointerEvent{Kind: PointerLeave}) }

func TestNewSurfaceDefaults(t *testing.T) {
	s := NewSurface(Options{})
	assert.Equal(t, ToolState{StrokeColor: "#000000", StrokeWidth: 5}, s.Tools())
	assert.Equal(t, Idle, s.Phase())
	assert.False(t, s.Mounted())
}

func TestPointerDownStartsPainting(t *testing.T) {
	s, c := mounted(t)
	down(s, 10, 10)

	assert.Equal(t, Painting, s.Phase())
	assert.Equal(t, Point{X: 10, Y: 10}, s.Pointer().Last)
	assert.Empty(t, c.segments, "no drawing on pointer-down")
}

func TestPointerDownSubtractsOffset(t *testing.T) {
	s := NewSurface(Options{})
	c := &recordingCanvas{}
	defer s.Mount(c, fixedOffset(100, 40))()

	down(s, 110, 50)
	move(s, 150, 50)

	require.Len(t, c.segments, 1)
	assert.Equal(t, Point{X: 10, Y: 10}, c.segments[0].From)
	assert.Equal(t, Point{X: 50, Y: 10}, c.segments[0].To)
}

func TestPaintScenario(t *testing.T) {
	s, c := mounted(t)
	s.SetColor("#ff0000")
	require.NoError(t, s.SetStrokeWidth("5"))

	down(s, 10, 10)
	move(s, 50, 10)

	require.Len(t, c.segments, 1)
	assert.Equal(t, Segment{
		From:  Point{X: 10, Y: 10},
		To:    Point{X: 50, Y: 10},
		Color: "#ff0000",
		Width: 5,
		Join:  JoinRound,
	}, c.segments[0])

	up(s)
	assert.Equal(t, Idle, s.Phase())

	s.Clear()
	assert.Equal(t, 1, c.clears)

	var buf bytes.Buffer
	require.NoError(t, s.Export(&buf))
	assert.Equal(t, 1, c.encodes)
	assert.NotZero(t, buf.Len())
}

func TestMoveWhileIdleIsNoop(t *testing.T) {
	s, c := mounted(t)
	move(s, 5, 5)
	move(s, 6, 6)

	assert.Empty(t, c.segments)
	assert.Equal(t, Idle, s.Phase())
}

func TestEachMoveDrawsOneSegmentWithToolsInEffect(t *testing.T) {
	s, c := mounted(t)
	down(s, 0, 0)
	move(s, 1, 0)
	s.SetColor("#00ff00")
	move(s, 2, 0)
	require.NoError(t, s.SetStrokeWidth("20"))
	move(s, 3, 0)

	require.Len(t, c.segments, 3)
	assert.Equal(t, "#000000", c.segments[0].Color)
	assert.Equal(t, StrokeWidth(5), c.segments[0].Width)
	assert.Equal(t, "#00ff00", c.segments[1].Color)
	assert.Equal(t, StrokeWidth(5), c.segments[1].Width)
	assert.Equal(t, StrokeWidth(20), c.segments[2].Width)

	for i, seg := range c.segments {
		assert.Equal(t, float64(i), seg.From.X)
		assert.Equal(t, float64(i+1), seg.To.X)
	}
}

func TestDegenerateSegmentIsDrawn(t *testing.T) {
	s, c := mounted(t)
	down(s, 7, 7)
	move(s, 7, 7)

	require.Len(t, c.segments, 1)
	assert.Equal(t, c.segments[0].From, c.segments[0].To)
}

func TestPointerUpIsIdempotent(t *testing.T) {
	s, c := mounted(t)
	down(s, 1, 1)
	up(s)
	assert.False(t, s.Pointer().Painting)
	up(s)
	assert.False(t, s.Pointer().Painting)
	assert.Empty(t, c.segments)
}

func TestPointerLeaveEndsGesture(t *testing.T) {
	s, c := mounted(t)
	down(s, 1, 1)
	leave(s)
	move(s, 4, 4)

	assert.Equal(t, Idle, s.Phase())
	assert.Empty(t, c.segments)
}

func TestEraserThenColor(t *testing.T) {
	s := NewSurface(Options{Background: "#fafafa"})
	var seen []ToolState
	s.OnToolsChanged = func(ts ToolState) { seen = append(seen, ts) }

	s.ActivateEraser()
	assert.Equal(t, ToolState{StrokeColor: "#fafafa", StrokeWidth: 5, EraserActive: true}, s.Tools())

	s.SetColor("#123456")
	assert.False(t, s.Tools().EraserActive)
	assert.Equal(t, "#123456", s.Tools().StrokeColor)
	require.Len(t, seen, 2)
	assert.Equal(t, ToolState{StrokeColor: "#123456", StrokeWidth: 5}, seen[1])
}

func TestEraserPaintsBackground(t *testing.T) {
	s, c := mounted(t)
	s.ActivateEraser()
	down(s, 0, 0)
	move(s, 3, 3)

	require.Len(t, c.segments, 1)
	assert.Equal(t, "#ffffff", c.segments[0].Color)
}

func TestStrokeOptionsApplied(t *testing.T) {
	s, c := mounted(t)
	down(s, 0, 0)
	for i, label := range StrokeOptionLabels() {
		require.NoError(t, s.SetStrokeWidth(label))
		move(s, float64(i+1), 0)
	}

	require.Len(t, c.segments, len(StrokeOptions))
	for i, w := range StrokeOptions {
		assert.Equal(t, w, c.segments[i].Width)
	}
}

func TestSetStrokeWidthRejectsNonInteger(t *testing.T) {
	s := NewSurface(Options{})
	err := s.SetStrokeWidth("thick")
	require.Error(t, err)
	assert.Equal(t, StrokeWidth(5), s.Tools().StrokeWidth)
}

func TestClearKeepsTools(t *testing.T) {
	s, c := mounted(t)
	s.ActivateEraser()
	before := s.Tools()
	s.Clear()

	assert.Equal(t, 1, c.clears)
	assert.Equal(t, before, s.Tools())
}

func TestRedrawTrigger(t *testing.T) {
	s, _ := mounted(t)
	redraws := 0
	s.OnRedraw = func() { redraws++ }

	down(s, 0, 0)
	assert.Equal(t, 0, redraws)
	move(s, 1, 1)
	move(s, 2, 2)
	assert.Equal(t, 2, redraws)
	s.Clear()
	assert.Equal(t, 3, redraws)
}

func TestUnmountedSurfaceIsSilent(t *testing.T) {
	s := NewSurface(Options{})
	down(s, 1, 1)
	move(s, 2, 2)
	s.Clear()

	assert.Equal(t, Idle, s.Phase())
	assert.True(t, errors.Is(s.Export(io.Discard), ErrNotMounted))
}

func TestOffsetUnavailableIsNoop(t *testing.T) {
	s := NewSurface(Options{})
	c := &recordingCanvas{}
	defer s.Mount(c, func() (Point, bool) { return Point{}, false })()

	down(s, 1, 1)
	assert.Equal(t, Idle, s.Phase())
}

func TestUnmountDetachesHandlers(t *testing.T) {
	s := NewSurface(Options{})
	c := &recordingCanvas{}
	release := s.Mount(c, fixedOffset(0, 0))

	for _, k := range []EventKind{PointerDown, PointerMove, PointerUp, PointerLeave} {
		assert.Equal(t, 1, s.Listeners().Count(k), k.String())
	}

	down(s, 0, 0)
	release()
	release()

	assert.False(t, s.Mounted())
	assert.Equal(t, Idle, s.Phase())
	for _, k := range []EventKind{PointerDown, PointerMove, PointerUp, PointerLeave} {
		assert.Zero(t, s.Listeners().Count(k), k.String())
	}
	move(s, 5, 5)
	assert.Empty(t, c.segments)
}

func TestRemountDoesNotDuplicateHandlers(t *testing.T) {
	s := NewSurface(Options{})
	first := &recordingCanvas{}
	second := &recordingCanvas{}

	releaseFirst := s.Mount(first, fixedOffset(0, 0))
	releaseSecond := s.Mount(second, fixedOffset(0, 0))
	assert.Equal(t, 1, s.Listeners().Count(PointerMove))

	// A stale release must not unmount the newer mount.
	releaseFirst()
	assert.True(t, s.Mounted())

	down(s, 0, 0)
	move(s, 1, 1)
	assert.Empty(t, first.segments)
	assert.Len(t, second.segments, 1)

	releaseSecond()
	assert.Zero(t, s.Listeners().Count(PointerMove))
}
