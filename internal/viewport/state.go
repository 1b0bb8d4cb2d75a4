package viewport

import "ims-viewer/internal/logger"

// Pane is the capability a plot-rendering backend exposes to the viewport:
// get/set of display limits and a repaint trigger. Concrete panes are Fyne
// widgets; the viewport core never depends on the UI toolkit.
type Pane interface {
	SetLimits(Extents)
	Limits() Extents
	Repaint()
}

// State holds the current display window for one or more linked plot panes
// together with the full-data extents used to reset the view.
//
// All mutation happens on the UI event-dispatch goroutine; State is not
// safe for concurrent writers and does not need to be.
type State struct {
	data    Extents
	current Extents
	panes   []Pane
}

// NewState creates viewport state for a dataset. Loading another dataset
// later goes through SetData, which keeps attached panes linked.
func NewState(data Extents) *State {
	data = widenDegenerate(data)
	return &State{data: data, current: data}
}

// widenDegenerate makes a usable window out of a flat spectrum or
// single-point dataset instead of failing.
func widenDegenerate(data Extents) Extents {
	if data.Valid() {
		return data
	}
	if data.XMin >= data.XMax {
		data.XMax = data.XMin + 1
	}
	if data.YMin >= data.YMax {
		data.YMax = data.YMin + 1
	}
	logger.Debugf("viewport: widened degenerate data extents to %+v", data)
	return data
}

// SetData replaces the dataset extents when new data is loaded and resets
// the view to the full range.
func (s *State) SetData(data Extents) {
	s.data = widenDegenerate(data)
	s.current = s.data
	s.propagate()
}

// AttachPane links a pane so that every committed zoom or reset updates it.
// Panes are updated in attachment order. A nil pane is tolerated and
// skipped during propagation.
func (s *State) AttachPane(p Pane) {
	s.panes = append(s.panes, p)
	if p != nil {
		p.SetLimits(s.current)
	}
}

// DetachPane removes a previously attached pane.
func (s *State) DetachPane(p Pane) {
	for i, q := range s.panes {
		if q == p {
			s.panes = append(s.panes[:i], s.panes[i+1:]...)
			return
		}
	}
}

// DataExtents returns the full range of the underlying dataset.
func (s *State) DataExtents() Extents { return s.data }

// Current returns the currently displayed window.
func (s *State) Current() Extents { return s.current }

// SetExtents commits a new display window and propagates it to every
// linked pane. A degenerate rectangle is a normal consequence of mouse
// jitter: the request is ignored, the previous extents are retained, and
// the rejection is only visible at debug level.
func (s *State) SetExtents(e Extents) bool {
	if !e.Valid() {
		logger.Debugf("viewport: ignoring degenerate extents %+v", e)
		return false
	}
	s.current = e
	s.propagate()
	return true
}

// ResetToData restores the full-data view. Always succeeds.
func (s *State) ResetToData() {
	s.current = s.data
	s.propagate()
}

// ClampToData intersects the current window with the data extents, used
// after wheel-zoom steps that may overshoot the dataset.
func (s *State) ClampToData() {
	clamped := s.current.Intersect(s.data)
	if !clamped.Valid() {
		s.current = s.data
	} else {
		s.current = clamped
	}
	s.propagate()
}

// propagate pushes the current extents to every linked pane, in order,
// before any repaint fires, so no pane draws with limits stale relative to
// its siblings.
func (s *State) propagate() {
	for _, p := range s.panes {
		if p == nil {
			continue
		}
		p.SetLimits(s.current)
	}
}

// RepaintAll signals every linked pane to redraw. Called once per
// committed change; coalescing is left to the UI framework.
func (s *State) RepaintAll() {
	for _, p := range s.panes {
		if p == nil {
			continue
		}
		p.Repaint()
	}
}
