// Package viewport provides the interactive viewport state and the box-zoom
// controller shared by all plot panes.
package viewport

import "math"

// Extents describes the displayed window of a plot pane as data-space
// bounds.
type Extents struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Valid reports whether the extents form a well-formed rectangle with
// strictly positive area and finite bounds.
func (e Extents) Valid() bool {
	for _, v := range []float64{e.XMin, e.XMax, e.YMin, e.YMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return e.XMin < e.XMax && e.YMin < e.YMax
}

// Width returns the x span.
func (e Extents) Width() float64 { return e.XMax - e.XMin }

// Height returns the y span.
func (e Extents) Height() float64 { return e.YMax - e.YMin }

// Contains reports whether the data point lies inside the extents.
func (e Extents) Contains(x, y float64) bool {
	return x >= e.XMin && x <= e.XMax && y >= e.YMin && y <= e.YMax
}

// Intersect returns the overlap of two extents. The result may be
// degenerate when the rectangles do not overlap; callers should check
// Valid.
func (e Extents) Intersect(o Extents) Extents {
	return Extents{
		XMin: math.Max(e.XMin, o.XMin),
		XMax: math.Min(e.XMax, o.XMax),
		YMin: math.Max(e.YMin, o.YMin),
		YMax: math.Min(e.YMax, o.YMax),
	}
}

// Normalized returns the extents with min/max swapped where inverted, so a
// drag in any direction yields a well-ordered rectangle.
func (e Extents) Normalized() Extents {
	if e.XMin > e.XMax {
		e.XMin, e.XMax = e.XMax, e.XMin
	}
	if e.YMin > e.YMax {
		e.YMin, e.YMax = e.YMax, e.YMin
	}
	return e
}
