package state

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Point is a position in canvas-local pixels.
type Point struct{ X, Y float64 }

// Sub returns p minus q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// StrokeWidth is the width of a drawn segment in pixels.
type StrokeWidth int

// StrokeOptions are the widths offered by the stroke selector, in display order.
var StrokeOptions = []StrokeWidth{1, 5, 10, 20}

// String returns the option label used by the stroke selector.
func (w StrokeWidth) String() string {
	return strconv.Itoa(int(w))
}

// StrokeOptionLabels returns the selector labels for StrokeOptions.
func StrokeOptionLabels() []string {
	labels := make([]string, 0, len(StrokeOptions))
	for _, w := range StrokeOptions {
		labels = append(labels, w.String())
	}
	return labels
}

// ParseStrokeWidth parses a stroke selector option as a base-10 integer.
// The selector only ever offers StrokeOptions, so no range check happens here.
func ParseStrokeWidth(option string) (StrokeWidth, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(option), 10, 0)
	if err != nil {
		return 0, fmt.Errorf("parse stroke width %q: %w", option, err)
	}
	return StrokeWidth(n), nil
}

// LineJoin is the join style of a drawn segment.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// Segment is one straight line handed to the canvas.
type Segment struct {
	From  Point
	To    Point
	Color string // "#rrggbb"
	Width StrokeWidth
	Join  LineJoin
}

// ToolState holds the toolbar selection. It is changed only through Surface.
type ToolState struct {
	StrokeColor  string
	StrokeWidth  StrokeWidth
	EraserActive bool
}

// PointerState tracks the current paint gesture.
type PointerState struct {
	Painting bool
	Last     Point
}

// Phase is the pointer lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Painting
)

func (p Phase) String() string {
	if p == Painting {
		return "painting"
	}
	return "idle"
}

// HexColor formats c as "#rrggbb", dropping alpha.
func HexColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// ParseHexColor parses "#rgb" or "#rrggbb" into an opaque color.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
