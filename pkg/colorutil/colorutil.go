// Package colorutil provides shared colors and intensity colormaps for the
// viewer's plot panes.
package colorutil

import (
	"image/color"
	"math"
)

// Common overlay colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
)

// Colormap maps a normalized intensity in [0,1] to a color.
type Colormap func(t float64) color.RGBA

// viridis control points, sampled from the reference map.
var viridisStops = [][3]float64{
	{68, 1, 84},
	{71, 44, 122},
	{59, 81, 139},
	{44, 113, 142},
	{33, 144, 141},
	{39, 173, 129},
	{92, 200, 99},
	{170, 220, 50},
	{253, 231, 37},
}

// Viridis is the default heatmap colormap.
func Viridis(t float64) color.RGBA {
	return interpolate(viridisStops, t)
}

// hot control points: black through red and orange to white.
var hotStops = [][3]float64{
	{0, 0, 0},
	{128, 0, 0},
	{255, 64, 0},
	{255, 160, 0},
	{255, 255, 128},
	{255, 255, 255},
}

// Hot is the classic thermal colormap.
func Hot(t float64) color.RGBA {
	return interpolate(hotStops, t)
}

// ByName resolves a colormap preference value, defaulting to Viridis.
func ByName(name string) Colormap {
	switch name {
	case "hot":
		return Hot
	default:
		return Viridis
	}
}

func interpolate(stops [][3]float64, t float64) color.RGBA {
	if math.IsNaN(t) || t <= 0 {
		s := stops[0]
		return color.RGBA{R: uint8(s[0]), G: uint8(s[1]), B: uint8(s[2]), A: 255}
	}
	if t >= 1 {
		s := stops[len(stops)-1]
		return color.RGBA{R: uint8(s[0]), G: uint8(s[1]), B: uint8(s[2]), A: 255}
	}
	pos := t * float64(len(stops)-1)
	i := int(pos)
	f := pos - float64(i)
	a, b := stops[i], stops[i+1]
	return color.RGBA{
		R: uint8(a[0] + (b[0]-a[0])*f),
		G: uint8(a[1] + (b[1]-a[1])*f),
		B: uint8(a[2] + (b[2]-a[2])*f),
		A: 255,
	}
}
