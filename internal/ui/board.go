package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// newBoard places the fixed-size surface in a scroll container so a window
// smaller than the canvas still maps pointer positions 1:1 onto raster pixels.
func newBoard(s *SurfaceWidget) *container.Scroll {
	scroll := container.NewScroll(s)
	scroll.SetMinSize(fyne.NewSize(320, 240))
	return scroll
}
