// Package plotcanvas provides the interactive Fyne plot panes: a spectrum
// pane and a drift-time heatmap pane, both driven by the shared viewport
// controller.
package plotcanvas

import (
	"image"

	"ims-viewer/internal/export"
	"ims-viewer/internal/viewport"
)

// plotRect returns the pixel rectangle of the plot area inside a pane of
// the given size, using the fixed chart margins so pixel-to-data mapping
// needs no cooperation from the chart engine.
func plotRect(w, h int) image.Rectangle {
	r := image.Rect(export.MarginLeft, export.MarginTop, w-export.MarginRight, h-export.MarginBottom)
	if r.Dx() < 1 || r.Dy() < 1 {
		return image.Rect(0, 0, w, h)
	}
	return r
}

// pxToData converts a pixel position inside the pane to data coordinates
// under the given limits. The y axis is inverted: pixel y grows downward,
// data y grows upward.
func pxToData(limits viewport.Extents, w, h int, px, py float64) viewport.Point {
	r := plotRect(w, h)
	fx := (px - float64(r.Min.X)) / float64(r.Dx())
	fy := (py - float64(r.Min.Y)) / float64(r.Dy())
	return viewport.Point{
		X: limits.XMin + fx*limits.Width(),
		Y: limits.YMax - fy*limits.Height(),
	}
}

// dataToPx converts data coordinates to a pixel position inside the pane.
func dataToPx(limits viewport.Extents, w, h int, p viewport.Point) (px, py float64) {
	r := plotRect(w, h)
	fx := (p.X - limits.XMin) / limits.Width()
	fy := (limits.YMax - p.Y) / limits.Height()
	return float64(r.Min.X) + fx*float64(r.Dx()), float64(r.Min.Y) + fy*float64(r.Dy())
}
