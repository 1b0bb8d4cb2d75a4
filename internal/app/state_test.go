package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSpectrumFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("100 10\n200 50\n300 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeHeatmapFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("10 20 30\n1 1 2 3\n2 4 5 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSpectrumEmitsEvent(t *testing.T) {
	s := NewState()
	var events []EventType
	s.On(EventSpectrumLoaded, func(data interface{}) {
		events = append(events, EventSpectrumLoaded)
	})
	s.On(EventModified, func(data interface{}) {
		events = append(events, EventModified)
	})

	path := writeSpectrumFile(t, t.TempDir(), "run1.txt")
	if err := s.LoadSpectrum(path); err != nil {
		t.Fatalf("LoadSpectrum: %v", err)
	}

	if s.Spectrum == nil || s.Spectrum.Len() != 3 {
		t.Errorf("Spectrum = %+v", s.Spectrum)
	}
	if s.SpectrumPath != path {
		t.Errorf("SpectrumPath = %q", s.SpectrumPath)
	}
	if !s.Modified {
		t.Error("loading should mark the session modified")
	}
	sawLoad := false
	for _, e := range events {
		if e == EventSpectrumLoaded {
			sawLoad = true
		}
	}
	if !sawLoad {
		t.Errorf("events = %v, want EventSpectrumLoaded", events)
	}
}

func TestLoadSpectrumMissingFile(t *testing.T) {
	s := NewState()
	if err := s.LoadSpectrum("/nonexistent/run.txt"); err == nil {
		t.Error("missing file should fail")
	}
	if s.Spectrum != nil {
		t.Error("failed load must not set state")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	specPath := writeSpectrumFile(t, dir, "run1.txt")
	hmPath := writeHeatmapFile(t, dir, "map1.txt")

	s := NewState()
	if err := s.LoadSpectrum(specPath); err != nil {
		t.Fatal(err)
	}
	if err := s.LoadHeatmap(hmPath); err != nil {
		t.Fatal(err)
	}

	sessionPath := filepath.Join(dir, "work.imsession")
	if err := s.SaveSession(sessionPath); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if s.Modified {
		t.Error("saving should clear the modified flag")
	}

	// Restore into a fresh state.
	r := NewState()
	if err := r.LoadSession(sessionPath); err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if r.Spectrum == nil || r.Spectrum.Len() != 3 {
		t.Errorf("restored spectrum = %+v", r.Spectrum)
	}
	if r.Heatmap == nil {
		t.Error("restored heatmap is nil")
	}
	if r.Modified {
		t.Error("freshly loaded session should not be modified")
	}
	if r.SessionPath != sessionPath {
		t.Errorf("SessionPath = %q", r.SessionPath)
	}
}

func TestSessionStoresRelativePaths(t *testing.T) {
	dir := t.TempDir()
	writeSpectrumFile(t, dir, "run1.txt")

	s := NewState()
	if err := s.LoadSpectrum(filepath.Join(dir, "run1.txt")); err != nil {
		t.Fatal(err)
	}
	sessionPath := filepath.Join(dir, "work.imsession")
	if err := s.SaveSession(sessionPath); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(sessionPath)
	if err != nil {
		t.Fatal(err)
	}
	if want := `"spectrum": "run1.txt"`; !strings.Contains(string(data), want) {
		t.Errorf("session file does not store relative path:\n%s", data)
	}
}

func TestLoadSessionMissingDataset(t *testing.T) {
	dir := t.TempDir()
	sessionPath := filepath.Join(dir, "broken.imsession")
	doc := `{"version": 1, "spectrum": "gone.txt"}`
	if err := os.WriteFile(sessionPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewState()
	if err := s.LoadSession(sessionPath); err == nil {
		t.Error("session pointing at a missing dataset should fail")
	}
}

func TestSessionCarriesCalibration(t *testing.T) {
	dir := t.TempDir()
	s := NewState()
	calPath := filepath.Join(dir, "calibrants.yaml")
	doc := `calibrants:
  - {name: a, mass: 400, charge: 1, ccs: 180, drift_time: 2.4}
  - {name: b, mass: 800, charge: 1, ccs: 260, drift_time: 4.1}
  - {name: c, mass: 1200, charge: 1, ccs: 330, drift_time: 6.0}
  - {name: d, mass: 1600, charge: 1, ccs: 390, drift_time: 7.8}
`
	if err := os.WriteFile(calPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.FitCalibration(calPath, 1.35); err != nil {
		t.Fatalf("FitCalibration: %v", err)
	}
	if s.Calibration == nil {
		t.Fatal("no calibration stored")
	}

	sessionPath := filepath.Join(dir, "work.imsession")
	if err := s.SaveSession(sessionPath); err != nil {
		t.Fatal(err)
	}

	r := NewState()
	if err := r.LoadSession(sessionPath); err != nil {
		t.Fatal(err)
	}
	if r.Calibration == nil {
		t.Fatal("calibration not restored")
	}
	if r.Calibration.A != s.Calibration.A || r.Calibration.B != s.Calibration.B {
		t.Errorf("restored calibration %+v, want %+v", r.Calibration, s.Calibration)
	}
}
