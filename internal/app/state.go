// Package app provides application lifecycle management, session state,
// and events.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"ims-viewer/internal/ccs"
	"ims-viewer/internal/logger"
	"ims-viewer/internal/msdata"
	"ims-viewer/internal/spectrum"
)

// EventType identifies application events.
type EventType int

const (
	EventSpectrumLoaded EventType = iota
	EventHeatmapLoaded
	EventSessionLoaded
	EventSessionSaved
	EventCalibrationFit
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the loaded datasets, the active CCS calibration, and the
// session document they were loaded from.
type State struct {
	mu sync.RWMutex

	SessionPath string
	Modified    bool

	Spectrum     *spectrum.MassSpectrum
	SpectrumPath string

	Heatmap     *spectrum.Heatmap
	HeatmapPath string

	Calibration   *ccs.Calibration
	CalibrantPath string

	listeners map[EventType][]EventListener
}

// NewState creates an empty application state.
func NewState() *State {
	return &State{listeners: make(map[EventType][]EventListener)}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()
	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the session as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// LoadSpectrum loads a mass spectrum from a data file, replacing the
// current one.
func (s *State) LoadSpectrum(path string) error {
	spec, err := msdata.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Spectrum = spec
	s.SpectrumPath = path
	s.mu.Unlock()

	logger.Infof("loaded spectrum %s (%d points, TIC %.4g)", filepath.Base(path), spec.Len(), spec.TIC())
	s.SetModified(true)
	s.Emit(EventSpectrumLoaded, spec)
	return nil
}

// LoadHeatmap loads a drift-time heatmap from a matrix file.
func (s *State) LoadHeatmap(path string) error {
	h, err := msdata.LoadHeatmap(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Heatmap = h
	s.HeatmapPath = path
	s.mu.Unlock()

	rows, cols := h.Z.Dims()
	logger.Infof("loaded heatmap %s (%dx%d bins)", filepath.Base(path), rows, cols)
	s.SetModified(true)
	s.Emit(EventHeatmapLoaded, h)
	return nil
}

// FitCalibration fits a CCS calibration from a calibrant table file and
// stores it as the active calibration.
func (s *State) FitCalibration(calibrantPath string, edc float64) error {
	cals, err := ccs.LoadCalibrants(calibrantPath)
	if err != nil {
		return err
	}
	cal, err := ccs.Fit(cals, edc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Calibration = cal
	s.CalibrantPath = calibrantPath
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventCalibrationFit, cal)
	return nil
}

// SessionFile is the JSON layout of a saved .imsession document.
type SessionFile struct {
	Version       int     `json:"version"`
	SpectrumPath  string  `json:"spectrum,omitempty"`
	HeatmapPath   string  `json:"heatmap,omitempty"`
	CalibrantPath string  `json:"calibrants,omitempty"`
	CalibrationA  float64 `json:"calibration_a,omitempty"`
	CalibrationB  float64 `json:"calibration_b,omitempty"`
	EDC           float64 `json:"edc,omitempty"`
}

// LoadSession restores datasets and calibration from a session document.
// Dataset paths are stored relative to the session file.
func (s *State) LoadSession(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	var sess SessionFile
	if err := json.Unmarshal(data, &sess); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	dir := filepath.Dir(path)
	if sess.SpectrumPath != "" {
		if err := s.LoadSpectrum(filepath.Join(dir, sess.SpectrumPath)); err != nil {
			return err
		}
	}
	if sess.HeatmapPath != "" {
		if err := s.LoadHeatmap(filepath.Join(dir, sess.HeatmapPath)); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.SessionPath = path
	if sess.CalibrationA != 0 {
		s.Calibration = &ccs.Calibration{
			A:       sess.CalibrationA,
			B:       sess.CalibrationB,
			EDC:     sess.EDC,
			GasMass: ccs.Nitrogen,
		}
		s.CalibrantPath = sess.CalibrantPath
	}
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventSessionLoaded, &sess)
	return nil
}

// SaveSession writes the current session to a document.
func (s *State) SaveSession(path string) error {
	dir := filepath.Dir(path)

	s.mu.RLock()
	sess := SessionFile{Version: 1}
	if s.SpectrumPath != "" {
		sess.SpectrumPath = relOrAbs(dir, s.SpectrumPath)
	}
	if s.HeatmapPath != "" {
		sess.HeatmapPath = relOrAbs(dir, s.HeatmapPath)
	}
	if s.Calibration != nil {
		sess.CalibrantPath = s.CalibrantPath
		sess.CalibrationA = s.Calibration.A
		sess.CalibrationB = s.Calibration.B
		sess.EDC = s.Calibration.EDC
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	s.mu.Lock()
	s.SessionPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventSessionSaved, path)
	return nil
}

func relOrAbs(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return path
	}
	return rel
}
