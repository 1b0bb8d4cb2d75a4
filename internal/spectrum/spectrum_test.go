package spectrum

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testSpectrum(t *testing.T) *MassSpectrum {
	t.Helper()
	s, err := New(
		[]float64{100, 200, 300, 400, 500},
		[]float64{10, 50, 200, 30, 5},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name      string
		mz        []float64
		intensity []float64
	}{
		{"length mismatch", []float64{1, 2}, []float64{1}},
		{"empty", nil, nil},
		{"nan mz", []float64{math.NaN()}, []float64{1}},
		{"inf intensity", []float64{100}, []float64{math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.mz, tt.intensity); err == nil {
				t.Error("want error, got nil")
			}
		})
	}
}

func TestNewSortsUnsortedInput(t *testing.T) {
	s, err := New([]float64{300, 100, 200}, []float64{3, 1, 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if diff := cmp.Diff([]float64{100, 200, 300}, s.MZ); diff != "" {
		t.Errorf("MZ (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 2, 3}, s.Intensity); diff != "" {
		t.Errorf("Intensity (-want +got):\n%s", diff)
	}
}

func TestTICAndBasePeak(t *testing.T) {
	s := testSpectrum(t)
	if got := s.TIC(); got != 295 {
		t.Errorf("TIC = %v, want 295", got)
	}
	mz, intensity := s.BasePeak()
	if mz != 300 || intensity != 200 {
		t.Errorf("BasePeak = %v, %v, want 300, 200", mz, intensity)
	}
}

func TestNormalized(t *testing.T) {
	s := testSpectrum(t)
	n := s.Normalized()
	_, base := n.BasePeak()
	if base != 100 {
		t.Errorf("normalized base peak = %v, want 100", base)
	}
	if s.Intensity[2] != 200 {
		t.Error("Normalized must not modify the source")
	}
}

func TestSlice(t *testing.T) {
	s := testSpectrum(t)

	mid := s.Slice(150, 450)
	if diff := cmp.Diff([]float64{200, 300, 400}, mid.MZ); diff != "" {
		t.Errorf("Slice(150, 450) MZ (-want +got):\n%s", diff)
	}

	// Bounds are inclusive.
	exact := s.Slice(200, 400)
	if exact.Len() != 3 {
		t.Errorf("Slice(200, 400) len = %d, want 3", exact.Len())
	}

	empty := s.Slice(600, 700)
	if empty.Len() != 0 {
		t.Errorf("out-of-range slice len = %d, want 0", empty.Len())
	}
}

func TestDataExtents(t *testing.T) {
	s := testSpectrum(t)
	got := s.DataExtents()
	if got.XMin != 100 || got.XMax != 500 || got.YMin != 0 || got.YMax != 200 {
		t.Errorf("DataExtents = %+v", got)
	}
	if !got.Valid() {
		t.Error("data extents should be valid")
	}
}

func TestMobilogramDataExtents(t *testing.T) {
	m := &Mobilogram{
		DriftTime: []float64{1, 2, 3},
		Intensity: []float64{5, 20, 10},
	}
	got := m.DataExtents()
	if got.XMin != 1 || got.XMax != 3 || got.YMax != 20 {
		t.Errorf("DataExtents = %+v", got)
	}
}
