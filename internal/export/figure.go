// Package export renders spectra to chart images for the plot panes and
// for PNG figure export.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"ims-viewer/internal/axis"
	"ims-viewer/internal/spectrum"
	"ims-viewer/internal/viewport"
)

// Plot margins are fixed so interactive panes can map pixels to data
// coordinates without asking the chart engine where it put the plot area.
const (
	MarginLeft   = 64
	MarginRight  = 16
	MarginTop    = 16
	MarginBottom = 40
)

// FigureOptions control rendered figure geometry.
type FigureOptions struct {
	Width  int
	Height int
}

// DefaultFigureOptions matches the default export size.
func DefaultFigureOptions() FigureOptions {
	return FigureOptions{Width: 1000, Height: 600}
}

// RenderSpectrumPNG renders the visible window of a spectrum into PNG
// bytes. The x axis is unit-normalized (Da or kDa) and y ticks are
// divided down to compact labels.
func RenderSpectrumPNG(s *spectrum.MassSpectrum, view viewport.Extents, opts FigureOptions) ([]byte, error) {
	if s == nil || s.Len() == 0 {
		return nil, fmt.Errorf("export: no spectrum to render")
	}
	if !view.Valid() {
		view = s.DataExtents()
	}
	visible := s.Slice(view.XMin, view.XMax)
	if visible.Len() == 0 {
		return nil, fmt.Errorf("export: view window contains no data")
	}

	scaledMZ, unit, kilo := axis.NormalizeMassAxis(visible.MZ)
	xMin, xMax := view.XMin, view.XMax
	if kilo {
		xMin /= 1000
		xMax /= 1000
	}

	yDivisor, yExp := axis.ComputeTickDivisor(visible.Intensity)
	yName := "Intensity"
	if suffix := axis.ExponentSuffix(yExp); suffix != "" {
		yName = "Intensity " + suffix
	}

	graph := chart.Chart{
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    MarginTop,
				Left:   MarginLeft,
				Right:  MarginRight,
				Bottom: MarginBottom,
			},
		},
		XAxis: chart.XAxis{
			Name:  "m/z (" + unit + ")",
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: chartTicks(xMin, xMax, 7, 1),
		},
		YAxis: chart.YAxis{
			Name:  yName,
			Range: &chart.ContinuousRange{Min: view.YMin, Max: view.YMax},
			Ticks: chartTicks(view.YMin, view.YMax, 6, yDivisor),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: scaledMZ,
				YValues: visible.Intensity,
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
					StrokeWidth: 1.0,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("export: render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderSpectrumImage renders the spectrum window to a decoded image for
// embedding in a Fyne raster.
func RenderSpectrumImage(s *spectrum.MassSpectrum, view viewport.Extents, w, h int) (image.Image, error) {
	data, err := RenderSpectrumPNG(s, view, FigureOptions{Width: w, Height: h})
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("export: decode: %w", err)
	}
	return img, nil
}

// SaveSpectrumPNG writes a figure of the current view to disk.
func SaveSpectrumPNG(path string, s *spectrum.MassSpectrum, view viewport.Extents, opts FigureOptions) error {
	data, err := RenderSpectrumPNG(s, view, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// chartTicks converts the shared tick generator output into go-chart
// ticks with divisor-compacted labels.
func chartTicks(min, max float64, n, divisor int) []chart.Tick {
	format := axis.DivisorFormatter(divisor)
	positions := axis.Ticks(min, max, n)
	ticks := make([]chart.Tick, 0, len(positions))
	for _, v := range positions {
		ticks = append(ticks, chart.Tick{Value: v, Label: format(v)})
	}
	return ticks
}
