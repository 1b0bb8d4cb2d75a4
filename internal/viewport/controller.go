package viewport

import (
	"image/color"

	"ims-viewer/internal/logger"
)

// Mode identifies the controller's interaction state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModeWheelZooming
)

// AxisRestriction selects which axes a gesture rescales.
type AxisRestriction int

const (
	AxisBoth AxisRestriction = iota
	AxisX
	AxisY
)

// Point is a pointer position in data coordinates. Panes convert pixel
// positions before feeding events to the controller.
type Point struct {
	X, Y float64
}

// Config holds the handful of settings the zoom controller actually needs,
// passed explicitly rather than pulled from a global configuration object.
type Config struct {
	// WheelEnabled gates wheel zoom entirely.
	WheelEnabled bool
	// WheelStep is the zoom factor applied per wheel notch.
	WheelStep float64
	// CrossoverFraction collapses an unrestricted drag to a single-axis
	// band when the box is thinner than this fraction of the view on one
	// axis.
	CrossoverFraction float64
	// OverlayColor and OverlayWidth style the transient selection box.
	OverlayColor color.RGBA
	OverlayWidth int
}

// DefaultConfig returns the stock zoom behavior.
func DefaultConfig() Config {
	return Config{
		WheelEnabled:      true,
		WheelStep:         1.1,
		CrossoverFraction: 0.03,
		OverlayColor:      color.RGBA{R: 255, G: 255, B: 0, A: 255},
		OverlayWidth:      1,
	}
}

// Controller turns pointer and wheel events into viewport changes. One
// controller serves a State and all panes linked to it; it is long-lived
// and has no terminal state.
type Controller struct {
	cfg   Config
	state *State

	mode      Mode
	anchor    Point
	hasAnchor bool
	axis      AxisRestriction
	guard     bool

	drag    Extents
	hasDrag bool

	onChanged func(Extents)
	onExtract func(Extents)
}

// NewController creates a controller bound to the given viewport state.
func NewController(state *State, cfg Config) *Controller {
	if cfg.WheelStep <= 1 {
		cfg.WheelStep = DefaultConfig().WheelStep
	}
	return &Controller{cfg: cfg, state: state}
}

// Mode returns the current interaction mode.
func (c *Controller) Mode() Mode { return c.mode }

// Extents returns the committed display window, readable at any time for
// status display or export sizing.
func (c *Controller) Extents() Extents { return c.state.Current() }

// State returns the viewport state the controller drives.
func (c *Controller) State() *State { return c.state }

// OnChanged registers a callback fired after every committed extents
// change, after all linked panes have been updated.
func (c *Controller) OnChanged(fn func(Extents)) { c.onChanged = fn }

// OnExtract registers the callback receiving guard-mode selections.
func (c *Controller) OnExtract(fn func(Extents)) { c.onExtract = fn }

// SetGuard toggles extraction mode: while active, drag gestures select a
// data region for extraction instead of zooming.
func (c *Controller) SetGuard(on bool) { c.guard = on }

// Guard reports whether extraction mode is active.
func (c *Controller) Guard() bool { return c.guard }

// SetAxisRestriction records the keyboard-modifier state selecting which
// axes the next commit rescales.
func (c *Controller) SetAxisRestriction(a AxisRestriction) { c.axis = a }

// AxisRestriction returns the current modifier-derived restriction.
func (c *Controller) AxisRestriction() AxisRestriction { return c.axis }

// OnPointerDown starts a drag gesture. Nothing is committed yet.
func (c *Controller) OnPointerDown(p Point) {
	if c.mode != ModeIdle {
		return
	}
	c.mode = ModeDragging
	c.anchor = p
	c.hasAnchor = true
	c.hasDrag = false
}

// OnPointerMove updates the transient selection box during a drag. The
// box is drawn by the hosting pane via DragRect; no viewport change is
// committed until pointer-up.
func (c *Controller) OnPointerMove(p Point) {
	if c.mode != ModeDragging {
		return
	}
	if !c.hasAnchor {
		// Anchor lost mid-drag (concurrent reset); abandon the gesture.
		logger.Debugf("viewport: drag without anchor, forcing idle")
		c.mode = ModeIdle
		c.hasDrag = false
		return
	}
	c.drag = c.gestureRect(p)
	c.hasDrag = true
}

// OnPointerUp ends a drag gesture. A valid box commits a zoom (or an
// extraction selection in guard mode); a degenerate box is a click and
// commits nothing.
func (c *Controller) OnPointerUp(p Point) {
	if c.mode != ModeDragging {
		return
	}
	hadAnchor := c.hasAnchor
	rect := c.gestureRect(p)
	c.mode = ModeIdle
	c.hasAnchor = false
	c.hasDrag = false

	if !hadAnchor {
		return
	}
	if !rect.Valid() {
		logger.Debugf("viewport: degenerate zoom box %+v ignored", rect)
		return
	}

	if c.guard {
		if c.onExtract != nil {
			c.onExtract(rect)
		}
		return
	}

	if c.state.SetExtents(rect) {
		c.commitRepaint()
	}
}

// OnWheel applies one wheel-zoom step centered on the pointer. The
// transition through WheelZooming is transient: the commit happens on the
// same event tick and the controller returns to idle.
func (c *Controller) OnWheel(p Point, delta float64) {
	if !c.cfg.WheelEnabled || c.mode != ModeIdle || delta == 0 {
		return
	}
	c.mode = ModeWheelZooming
	defer func() { c.mode = ModeIdle }()

	factor := c.cfg.WheelStep
	if delta > 0 {
		factor = 1 / factor
	}
	cur := c.state.Current()
	next := scaleAbout(cur, p, factor, c.axis)
	if !c.state.SetExtents(next) {
		return
	}
	c.state.ClampToData()
	c.commitRepaint()
}

// ZoomIn applies a wheel-style zoom step centered on the view.
func (c *Controller) ZoomIn() { c.zoomCentered(1 / c.cfg.WheelStep) }

// ZoomOut applies a wheel-style zoom step centered on the view.
func (c *Controller) ZoomOut() { c.zoomCentered(c.cfg.WheelStep) }

func (c *Controller) zoomCentered(factor float64) {
	cur := c.state.Current()
	center := Point{X: (cur.XMin + cur.XMax) / 2, Y: (cur.YMin + cur.YMax) / 2}
	if !c.state.SetExtents(scaleAbout(cur, center, factor, AxisBoth)) {
		return
	}
	c.state.ClampToData()
	c.commitRepaint()
}

// ResetToData restores the full-data view, e.g. on double-click.
func (c *Controller) ResetToData() {
	c.mode = ModeIdle
	c.hasAnchor = false
	c.hasDrag = false
	c.state.ResetToData()
	c.commitRepaint()
}

// ResetModifierState unconditionally clears the modifier flags and forces
// the controller back to idle, discarding any in-progress drag. Keyboard
// state can desynchronize from reality when a gesture crosses a window
// boundary; this is the recovery hatch and it cannot fail.
func (c *Controller) ResetModifierState() {
	c.axis = AxisBoth
	c.mode = ModeIdle
	c.hasAnchor = false
	c.hasDrag = false
}

// DragRect returns the transient selection box while a drag is in
// progress, for the hosting pane to draw as an overlay.
func (c *Controller) DragRect() (Extents, bool) {
	if c.mode != ModeDragging || !c.hasDrag {
		return Extents{}, false
	}
	return c.drag, true
}

// OverlayStyle returns the color and line width for the selection overlay.
func (c *Controller) OverlayStyle() (color.RGBA, int) {
	return c.cfg.OverlayColor, c.cfg.OverlayWidth
}

// gestureRect builds the rectangle between the anchor and the pointer,
// applying the modifier restriction and the crossover collapse: a box much
// thinner than the view on one axis is treated as a single-axis zoom.
func (c *Controller) gestureRect(p Point) Extents {
	rect := Extents{XMin: c.anchor.X, XMax: p.X, YMin: c.anchor.Y, YMax: p.Y}.Normalized()
	cur := c.state.Current()

	axis := c.axis
	if axis == AxisBoth && c.cfg.CrossoverFraction > 0 {
		thinX := rect.Width() < cur.Width()*c.cfg.CrossoverFraction
		thinY := rect.Height() < cur.Height()*c.cfg.CrossoverFraction
		switch {
		case thinY && !thinX:
			axis = AxisX
		case thinX && !thinY:
			axis = AxisY
		}
	}

	switch axis {
	case AxisX:
		rect.YMin, rect.YMax = cur.YMin, cur.YMax
	case AxisY:
		rect.XMin, rect.XMax = cur.XMin, cur.XMax
	}
	return rect
}

func (c *Controller) commitRepaint() {
	c.state.RepaintAll()
	if c.onChanged != nil {
		c.onChanged(c.state.Current())
	}
}

// scaleAbout resizes the extents by factor, keeping the given point at the
// same relative position inside the window.
func scaleAbout(e Extents, p Point, factor float64, axis AxisRestriction) Extents {
	out := e
	if axis == AxisBoth || axis == AxisX {
		out.XMin = p.X - (p.X-e.XMin)*factor
		out.XMax = p.X + (e.XMax-p.X)*factor
	}
	if axis == AxisBoth || axis == AxisY {
		out.YMin = p.Y - (p.Y-e.YMin)*factor
		out.YMax = p.Y + (e.YMax-p.Y)*factor
	}
	return out
}
