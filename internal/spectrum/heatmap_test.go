package spectrum

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/mat"

	"ims-viewer/internal/viewport"
)

func testHeatmap(t *testing.T) *Heatmap {
	t.Helper()
	// 3 drift-time rows x 4 retention-time columns.
	z := mat.NewDense(3, 4, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
	})
	h, err := NewHeatmap([]float64{10, 20, 30, 40}, []float64{1, 2, 3}, z)
	if err != nil {
		t.Fatalf("NewHeatmap: %v", err)
	}
	return h
}

func TestNewHeatmapValidation(t *testing.T) {
	z := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if _, err := NewHeatmap([]float64{1, 2}, []float64{1}, z); err == nil {
		t.Error("row mismatch accepted")
	}
	if _, err := NewHeatmap([]float64{1}, []float64{1, 2}, z); err == nil {
		t.Error("column mismatch accepted")
	}
}

func TestHeatmapMaxZ(t *testing.T) {
	h := testHeatmap(t)
	if got := h.MaxZ(); got != 12 {
		t.Errorf("MaxZ = %v, want 12", got)
	}
}

func TestHeatmapDataExtents(t *testing.T) {
	h := testHeatmap(t)
	want := viewport.Extents{XMin: 10, XMax: 40, YMin: 1, YMax: 3}
	if got := h.DataExtents(); got != want {
		t.Errorf("DataExtents = %+v, want %+v", got, want)
	}
}

func TestHeatmapMobilogram(t *testing.T) {
	h := testHeatmap(t)
	m := h.Mobilogram()
	if diff := cmp.Diff([]float64{10, 26, 42}, m.Intensity); diff != "" {
		t.Errorf("Mobilogram intensities (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(h.DriftTime, m.DriftTime); diff != "" {
		t.Errorf("Mobilogram axis (-want +got):\n%s", diff)
	}
}

func TestHeatmapChromatogram(t *testing.T) {
	h := testHeatmap(t)
	_, intensity := h.Chromatogram()
	if diff := cmp.Diff([]float64{15, 18, 21, 24}, intensity); diff != "" {
		t.Errorf("Chromatogram intensities (-want +got):\n%s", diff)
	}
}

func TestHeatmapWindow(t *testing.T) {
	h := testHeatmap(t)

	// Full extents cover the whole matrix.
	r0, r1, c0, c1 := h.Window(h.DataExtents())
	if r0 != 0 || r1 != 3 || c0 != 0 || c1 != 4 {
		t.Errorf("full window = %d,%d,%d,%d", r0, r1, c0, c1)
	}

	// A zoomed window selects the inner bins.
	r0, r1, c0, c1 = h.Window(viewport.Extents{XMin: 20, XMax: 30, YMin: 2, YMax: 3})
	if r0 != 1 || r1 != 3 || c0 != 1 || c1 != 3 {
		t.Errorf("inner window = %d,%d,%d,%d", r0, r1, c0, c1)
	}

	// A window entirely past the data still yields a non-empty range.
	r0, r1, c0, c1 = h.Window(viewport.Extents{XMin: 100, XMax: 200, YMin: 50, YMax: 60})
	if r1-r0 < 1 || c1-c0 < 1 {
		t.Errorf("out-of-range window = %d,%d,%d,%d", r0, r1, c0, c1)
	}
}
