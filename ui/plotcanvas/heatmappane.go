package plotcanvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"

	"ims-viewer/internal/axis"
	"ims-viewer/internal/spectrum"
	"ims-viewer/internal/viewport"
	"ims-viewer/pkg/colorutil"
)

var (
	heatmapBG   = color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xff}
	heatmapAxis = color.RGBA{R: 0xc8, G: 0xc8, B: 0xc8, A: 0xff}
)

// HeatmapPane displays a drift-time vs retention-time intensity map. It
// shares the viewport controller with the other panes, so zooming either
// pane keeps them in sync.
type HeatmapPane struct {
	widget.BaseWidget

	raster *fynecanvas.Raster
	ctrl   *viewport.Controller

	hm       *spectrum.Heatmap
	colormap colorutil.Colormap
	limits   viewport.Extents

	dragging bool
	lastDrag viewport.Point
}

// NewHeatmapPane creates an empty heatmap pane with the viridis colormap.
func NewHeatmapPane() *HeatmapPane {
	p := &HeatmapPane{colormap: colorutil.Viridis}
	p.raster = fynecanvas.NewRaster(p.draw)
	p.raster.ScaleMode = fynecanvas.ImageScalePixels
	p.ExtendBaseWidget(p)
	return p
}

// SetController wires the pane's pointer events to a controller.
func (p *HeatmapPane) SetController(c *viewport.Controller) { p.ctrl = c }

// SetHeatmap replaces the displayed map.
func (p *HeatmapPane) SetHeatmap(hm *spectrum.Heatmap) {
	p.hm = hm
	p.raster.Refresh()
}

// Heatmap returns the displayed map, or nil.
func (p *HeatmapPane) Heatmap() *spectrum.Heatmap { return p.hm }

// SetColormap switches the intensity colormap.
func (p *HeatmapPane) SetColormap(cm colorutil.Colormap) {
	if cm != nil {
		p.colormap = cm
		p.raster.Refresh()
	}
}

// SetLimits implements viewport.Pane.
func (p *HeatmapPane) SetLimits(e viewport.Extents) { p.limits = e }

// Limits implements viewport.Pane.
func (p *HeatmapPane) Limits() viewport.Extents { return p.limits }

// Repaint implements viewport.Pane.
func (p *HeatmapPane) Repaint() { p.raster.Refresh() }

func (p *HeatmapPane) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.raster)
}

func (p *HeatmapPane) MinSize() fyne.Size {
	return fyne.NewSize(320, 200)
}

func (p *HeatmapPane) draw(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), &image.Uniform{heatmapBG}, image.Point{}, draw.Src)
	if p.hm == nil || !p.limits.Valid() || w < 64 || h < 64 {
		return out
	}

	plot := plotRect(w, h)
	p.drawCells(out, plot)
	p.drawAxes(out, plot)
	p.drawPaneOverlay(out, w, h)
	return out
}

// drawCells renders the visible window of the intensity matrix at native
// resolution and scales it into the plot area.
func (p *HeatmapPane) drawCells(out *image.RGBA, plot image.Rectangle) {
	r0, r1, c0, c1 := p.hm.Window(p.limits)
	if r1 <= r0 || c1 <= c0 {
		return
	}
	maxZ := p.hm.MaxZ()
	if maxZ <= 0 {
		return
	}

	cells := image.NewRGBA(image.Rect(0, 0, c1-c0, r1-r0))
	for r := r0; r < r1; r++ {
		row := p.hm.Z.RawRowView(r)
		for c := c0; c < c1; c++ {
			t := row[c] / maxZ
			if t < 0 || math.IsNaN(t) {
				t = 0
			}
			// Drift time grows upward while image rows grow downward.
			cells.SetRGBA(c-c0, (r1-1)-r, p.colormap(t))
		}
	}

	xdraw.NearestNeighbor.Scale(out, plot, cells, cells.Bounds(), xdraw.Src, nil)
}

func (p *HeatmapPane) drawAxes(out *image.RGBA, plot image.Rectangle) {
	drawHLine(out, plot.Min.X, plot.Max.X, plot.Max.Y, heatmapAxis)
	drawVLine(out, plot.Min.X, plot.Min.Y, plot.Max.Y, heatmapAxis)

	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	for _, tv := range axis.Ticks(p.limits.XMin, p.limits.XMax, 6) {
		px, _ := dataToPx(p.limits, w, h, viewport.Point{X: tv, Y: p.limits.YMin})
		drawVLine(out, int(px), plot.Max.Y, plot.Max.Y+4, heatmapAxis)
		label := formatTick(tv)
		drawTinyLabel(out, label, int(px)-tinyLabelWidth(label)/2, plot.Max.Y+7, heatmapAxis)
	}
	for _, tv := range axis.Ticks(p.limits.YMin, p.limits.YMax, 6) {
		_, py := dataToPx(p.limits, w, h, viewport.Point{X: p.limits.XMin, Y: tv})
		drawHLine(out, plot.Min.X-4, plot.Min.X, int(py), heatmapAxis)
		label := formatTick(tv)
		drawTinyLabel(out, label, plot.Min.X-6-tinyLabelWidth(label), int(py)-2, heatmapAxis)
	}
}

func (p *HeatmapPane) drawPaneOverlay(out *image.RGBA, w, h int) {
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

func (p *HeatmapPane) eventPoint(pos fyne.Position) viewport.Point {
	size := p.Size()
	return pxToData(p.limits, int(size.Width), int(size.Height), float64(pos.X), float64(pos.Y))
}

func (p *HeatmapPane) Dragged(ev *fyne.DragEvent) {
	if p.ctrl == nil || p.hm == nil {
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

func (p *HeatmapPane) DragEnd() {
	if p.ctrl == nil || !p.dragging {
		return
	}
	p.dragging = false
	p.ctrl.OnPointerUp(p.lastDrag)
	p.raster.Refresh()
}

func (p *HeatmapPane) Scrolled(ev *fyne.ScrollEvent) {
	if p.ctrl == nil || p.hm == nil {
		return
	}
	p.ctrl.OnWheel(p.eventPoint(ev.Position), float64(ev.Scrolled.DY))
}

func (p *HeatmapPane) DoubleTapped(*fyne.PointEvent) {
	if p.ctrl != nil {
		p.ctrl.ResetToData()
	}
}

func (p *HeatmapPane) Tapped(*fyne.PointEvent) {}

var _ viewport.Pane = (*HeatmapPane)(nil)
var _ fyne.Draggable = (*HeatmapPane)(nil)
var _ fyne.Scrollable = (*HeatmapPane)(nil)
var _ fyne.DoubleTappable = (*HeatmapPane)(nil)
