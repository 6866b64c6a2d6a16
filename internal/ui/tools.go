package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"LocalSketch/internal/state"
)

// --- Custom Widget for the current color ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func()

	rect *canvas.Rectangle
}

func newColorSwatch(c color.Color, tapped func()) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	s.rect = canvas.NewRectangle(s.Color)
	s.rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(s.rect, border))
}

// SetColor changes the displayed color.
func (s *colorSwatch) SetColor(c color.Color) {
	s.Color = c
	if s.rect != nil {
		s.rect.FillColor = c
		s.rect.Refresh()
	}
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped()
	}
}

// Actions are the toolbar buttons that need more than the surface.
type Actions struct {
	PickColor func()
	Save      func()
	ExportPDF func()
}

// Toolbar shows and edits the tool selection of a surface.
type Toolbar struct {
	surface *state.Surface

	swatch  *colorSwatch
	strokes *widget.Select
	mode    *widget.Label
	status  *widget.Label
	content fyne.CanvasObject
}

// NewToolbar builds the controls for s.
func NewToolbar(s *state.Surface, actions Actions) *Toolbar {
	t := &Toolbar{
		surface: s,
		mode:    widget.NewLabel(""),
		status:  widget.NewLabel("Ready"),
	}
	t.swatch = newColorSwatch(color.Black, actions.PickColor)
	t.strokes = widget.NewSelect(state.StrokeOptionLabels(), t.onStrokeSelected)

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentClearIcon(), s.ActivateEraser), // Eraser
		widget.NewToolbarAction(theme.DeleteIcon(), s.Clear),                // Clear
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), actions.Save),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), actions.ExportPDF),
	)

	strokeBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(90, 35)), t.strokes)

	t.content = container.NewHBox(
		widget.NewLabel("Color:"),
		t.swatch,
		widget.NewSeparator(),
		widget.NewLabel("Stroke:"),
		strokeBox,
		widget.NewSeparator(),
		tb,
		t.mode,
		layout.NewSpacer(),
		t.status,
	)
	t.Sync(s.Tools())
	return t
}

func (t *Toolbar) onStrokeSelected(option string) {
	if option == t.surface.Tools().StrokeWidth.String() {
		return
	}
	if err := t.surface.SetStrokeWidth(option); err != nil {
		t.SetStatus(err.Error())
	}
}

// Sync updates the controls to ts.
func (t *Toolbar) Sync(ts state.ToolState) {
	if c, err := state.ParseHexColor(ts.StrokeColor); err == nil {
		t.swatch.SetColor(c)
	}
	if t.strokes.Selected != ts.StrokeWidth.String() {
		t.strokes.SetSelected(ts.StrokeWidth.String())
	}
	if ts.EraserActive {
		t.mode.SetText("Eraser")
	} else {
		t.mode.SetText("Pencil")
	}
}

// SetStatus shows text at the end of the toolbar.
func (t *Toolbar) SetStatus(text string) {
	t.status.SetText(text)
}

// Content returns the toolbar's canvas object.
func (t *Toolbar) Content() fyne.CanvasObject {
	return t.content
}
