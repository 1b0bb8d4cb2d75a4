package plotcanvas

import (
	"image"
	"image/draw"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"ims-viewer/internal/export"
	"ims-viewer/internal/logger"
	"ims-viewer/internal/spectrum"
	"ims-viewer/internal/viewport"
)

// SpectrumPane displays a mass spectrum trace and feeds pointer gestures to
// the shared viewport controller. It implements viewport.Pane so linked
// panes repaint together.
type SpectrumPane struct {
	widget.BaseWidget

	raster *fynecanvas.Raster
	ctrl   *viewport.Controller

	spec   *spectrum.MassSpectrum
	limits viewport.Extents

	dragging bool
	lastDrag viewport.Point
}

// NewSpectrumPane creates an empty spectrum pane. Attach it to a viewport
// state and set a controller before use.
func NewSpectrumPane() *SpectrumPane {
	p := &SpectrumPane{}
	p.raster = fynecanvas.NewRaster(p.draw)
	p.raster.ScaleMode = fynecanvas.ImageScalePixels
	p.ExtendBaseWidget(p)
	return p
}

// SetController wires the pane's pointer events to a controller.
func (p *SpectrumPane) SetController(c *viewport.Controller) { p.ctrl = c }

// SetSpectrum replaces the displayed spectrum. The caller is responsible
// for resetting the viewport to the new data extents.
func (p *SpectrumPane) SetSpectrum(s *spectrum.MassSpectrum) {
	p.spec = s
	p.raster.Refresh()
}

// Spectrum returns the displayed spectrum, or nil.
func (p *SpectrumPane) Spectrum() *spectrum.MassSpectrum { return p.spec }

// SetLimits implements viewport.Pane.
func (p *SpectrumPane) SetLimits(e viewport.Extents) { p.limits = e }

// Limits implements viewport.Pane.
func (p *SpectrumPane) Limits() viewport.Extents { return p.limits }

// Repaint implements viewport.Pane.
func (p *SpectrumPane) Repaint() { p.raster.Refresh() }

func (p *SpectrumPane) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.raster)
}

func (p *SpectrumPane) MinSize() fyne.Size {
	return fyne.NewSize(320, 200)
}

// draw renders the chart at the raster's pixel size and paints the drag
// overlay on top.
func (p *SpectrumPane) draw(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	if p.spec == nil || !p.limits.Valid() || w < 64 || h < 64 {
		return out
	}

	img, err := export.RenderSpectrumImage(p.spec, p.limits, w, h)
	if err != nil {
		logger.Warnf("spectrum render failed: %v", err)
		return out
	}
	draw.Draw(out, out.Bounds(), img, image.Point{}, draw.Src)

	p.drawOverlay(out, w, h)
	return out
}

func (p *SpectrumPane) drawOverlay(out *image.RGBA, w, h int) {
	if p.ctrl == nil {
		return
	}
	rect, ok := p.ctrl.DragRect()
	if !ok {
		return
	}
	x0, y0 := dataToPx(p.limits, w, h, viewport.Point{X: rect.XMin, Y: rect.YMax})
	x1, y1 := dataToPx(p.limits, w, h, viewport.Point{X: rect.XMax, Y: rect.YMin})
	col, width := p.ctrl.OverlayStyle()
	drawDashedRect(out, image.Rect(int(x0), int(y0), int(x1), int(y1)), col, width)
}

// eventPoint converts a pointer position to data coordinates using the
// widget's logical size. The raster draws at the same aspect, so overlay
// and events agree.
func (p *SpectrumPane) eventPoint(pos fyne.Position) viewport.Point {
	size := p.Size()
	return pxToData(p.limits, int(size.Width), int(size.Height), float64(pos.X), float64(pos.Y))
}

// Dragged starts or extends a rubber-band gesture.
func (p *SpectrumPane) Dragged(ev *fyne.DragEvent) {
	if p.ctrl == nil || p.spec == nil {
		return
	}
	if !p.dragging {
		p.dragging = true
		anchor := fyne.Position{X: ev.Position.X - ev.Dragged.DX, Y: ev.Position.Y - ev.Dragged.DY}
		p.ctrl.OnPointerDown(p.eventPoint(anchor))
	}
	p.lastDrag = p.eventPoint(ev.Position)
	p.ctrl.OnPointerMove(p.lastDrag)
	p.raster.Refresh()
}

// DragEnd commits the gesture at the last observed position.
func (p *SpectrumPane) DragEnd() {
	if p.ctrl == nil || !p.dragging {
		return
	}
	p.dragging = false
	p.ctrl.OnPointerUp(p.lastDrag)
	p.raster.Refresh()
}

// Scrolled zooms about the pointer position.
func (p *SpectrumPane) Scrolled(ev *fyne.ScrollEvent) {
	if p.ctrl == nil || p.spec == nil {
		return
	}
	p.ctrl.OnWheel(p.eventPoint(ev.Position), float64(ev.Scrolled.DY))
}

// DoubleTapped resets the view to the full data extents.
func (p *SpectrumPane) DoubleTapped(*fyne.PointEvent) {
	if p.ctrl != nil {
		p.ctrl.ResetToData()
	}
}

// Tapped is required for DoubleTapped delivery.
func (p *SpectrumPane) Tapped(*fyne.PointEvent) {}

var _ viewport.Pane = (*SpectrumPane)(nil)
var _ fyne.Draggable = (*SpectrumPane)(nil)
var _ fyne.Scrollable = (*SpectrumPane)(nil)
var _ fyne.DoubleTappable = (*SpectrumPane)(nil)
