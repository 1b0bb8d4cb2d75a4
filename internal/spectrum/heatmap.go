package spectrum

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"ims-viewer/internal/viewport"
)

// Heatmap is a drift-time versus retention-time intensity map. Rows of Z
// correspond to drift-time bins, columns to retention-time bins.
type Heatmap struct {
	Label         string
	RetentionTime []float64
	DriftTime     []float64
	Z             *mat.Dense
}

// NewHeatmap validates axis lengths against the matrix shape.
func NewHeatmap(rt, dt []float64, z *mat.Dense) (*Heatmap, error) {
	rows, cols := z.Dims()
	if rows != len(dt) {
		return nil, fmt.Errorf("heatmap: %d drift-time bins for %d matrix rows", len(dt), rows)
	}
	if cols != len(rt) {
		return nil, fmt.Errorf("heatmap: %d retention-time bins for %d matrix columns", len(rt), cols)
	}
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("heatmap: empty matrix")
	}
	return &Heatmap{RetentionTime: rt, DriftTime: dt, Z: z}, nil
}

// MaxZ returns the maximum intensity in the map.
func (h *Heatmap) MaxZ() float64 {
	return mat.Max(h.Z)
}

// DataExtents returns the full data range for the viewport: retention
// time on x, drift time on y.
func (h *Heatmap) DataExtents() viewport.Extents {
	return viewport.Extents{
		XMin: h.RetentionTime[0],
		XMax: h.RetentionTime[len(h.RetentionTime)-1],
		YMin: h.DriftTime[0],
		YMax: h.DriftTime[len(h.DriftTime)-1],
	}
}

// Mobilogram collapses the map over retention time into a drift-time
// profile.
func (h *Heatmap) Mobilogram() *Mobilogram {
	rows, _ := h.Z.Dims()
	out := &Mobilogram{
		DriftTime: append([]float64(nil), h.DriftTime...),
		Intensity: make([]float64, rows),
	}
	for r := 0; r < rows; r++ {
		out.Intensity[r] = floats.Sum(h.Z.RawRowView(r))
	}
	return out
}

// Chromatogram collapses the map over drift time into a retention-time
// profile.
func (h *Heatmap) Chromatogram() (rt, intensity []float64) {
	_, cols := h.Z.Dims()
	rt = append([]float64(nil), h.RetentionTime...)
	intensity = make([]float64, cols)
	for c := 0; c < cols; c++ {
		intensity[c] = floats.Sum(mat.Col(nil, c, h.Z))
	}
	return rt, intensity
}

// Window returns the submatrix index ranges covering the given extents,
// clamped to the map. Used by the heatmap pane to sample only the visible
// region.
func (h *Heatmap) Window(e viewport.Extents) (r0, r1, c0, c1 int) {
	r0 = searchAxis(h.DriftTime, e.YMin)
	r1 = searchAxis(h.DriftTime, e.YMax) + 1
	c0 = searchAxis(h.RetentionTime, e.XMin)
	c1 = searchAxis(h.RetentionTime, e.XMax) + 1
	rows, cols := h.Z.Dims()
	if r1 > rows {
		r1 = rows
	}
	if c1 > cols {
		c1 = cols
	}
	if r0 >= r1 {
		r0 = r1 - 1
	}
	if c0 >= c1 {
		c0 = c1 - 1
	}
	if r0 < 0 {
		r0 = 0
	}
	if c0 < 0 {
		c0 = 0
	}
	return r0, r1, c0, c1
}

func searchAxis(axis []float64, v float64) int {
	lo, hi := 0, len(axis)
	for lo < hi {
		mid := (lo + hi) / 2
		if axis[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == len(axis) {
		lo--
	}
	return lo
}
