// Package spectrum provides the typed data containers for ion-mobility
// mass-spectrometry datasets: mass spectra, mobilograms, and drift-time
// heatmaps.
package spectrum

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"ims-viewer/internal/viewport"
)

// MassSpectrum is a continuum or centroided mass spectrum.
type MassSpectrum struct {
	Label     string
	MZ        []float64
	Intensity []float64
}

// New validates and builds a spectrum. The m/z axis must be sorted
// ascending; unsorted input is sorted in place together with its
// intensities.
func New(mz, intensity []float64) (*MassSpectrum, error) {
	if len(mz) != len(intensity) {
		return nil, fmt.Errorf("spectrum: m/z and intensity length mismatch (%d vs %d)", len(mz), len(intensity))
	}
	if len(mz) == 0 {
		return nil, fmt.Errorf("spectrum: empty data")
	}
	for i := range mz {
		if math.IsNaN(mz[i]) || math.IsInf(mz[i], 0) {
			return nil, fmt.Errorf("spectrum: point %d has invalid m/z", i)
		}
		if math.IsNaN(intensity[i]) || math.IsInf(intensity[i], 0) {
			return nil, fmt.Errorf("spectrum: point %d has invalid intensity", i)
		}
	}
	s := &MassSpectrum{MZ: mz, Intensity: intensity}
	if !sort.Float64sAreSorted(mz) {
		s.sortByMZ()
	}
	return s, nil
}

func (s *MassSpectrum) sortByMZ() {
	idx := make([]int, len(s.MZ))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return s.MZ[idx[a]] < s.MZ[idx[b]] })
	mz := make([]float64, len(s.MZ))
	in := make([]float64, len(s.Intensity))
	for i, j := range idx {
		mz[i] = s.MZ[j]
		in[i] = s.Intensity[j]
	}
	s.MZ, s.Intensity = mz, in
}

// Len returns the number of data points.
func (s *MassSpectrum) Len() int { return len(s.MZ) }

// TIC returns the total ion current (sum of intensities).
func (s *MassSpectrum) TIC() float64 { return floats.Sum(s.Intensity) }

// BasePeak returns the m/z and intensity of the most intense point.
func (s *MassSpectrum) BasePeak() (mz, intensity float64) {
	i := floats.MaxIdx(s.Intensity)
	return s.MZ[i], s.Intensity[i]
}

// Normalized returns a copy scaled so the base peak intensity is 100.
func (s *MassSpectrum) Normalized() *MassSpectrum {
	_, base := s.BasePeak()
	out := &MassSpectrum{
		Label:     s.Label,
		MZ:        append([]float64(nil), s.MZ...),
		Intensity: make([]float64, len(s.Intensity)),
	}
	if base == 0 {
		copy(out.Intensity, s.Intensity)
		return out
	}
	for i, v := range s.Intensity {
		out.Intensity[i] = v / base * 100
	}
	return out
}

// Slice returns the points with m/z inside [lo,hi]. Used by the
// extraction selection; an empty window yields an empty spectrum, not an
// error.
func (s *MassSpectrum) Slice(lo, hi float64) *MassSpectrum {
	start := sort.SearchFloat64s(s.MZ, lo)
	end := sort.SearchFloat64s(s.MZ, hi)
	for end < len(s.MZ) && s.MZ[end] <= hi {
		end++
	}
	return &MassSpectrum{
		Label:     s.Label,
		MZ:        s.MZ[start:end],
		Intensity: s.Intensity[start:end],
	}
}

// DataExtents returns the full data range for the viewport: the m/z span
// on x and zero to the base-peak intensity on y.
func (s *MassSpectrum) DataExtents() viewport.Extents {
	_, base := s.BasePeak()
	return viewport.Extents{
		XMin: s.MZ[0],
		XMax: s.MZ[len(s.MZ)-1],
		YMin: 0,
		YMax: base,
	}
}

// Mobilogram is an intensity profile over drift time.
type Mobilogram struct {
	DriftTime []float64
	Intensity []float64
}

// DataExtents returns the full data range for the viewport.
func (m *Mobilogram) DataExtents() viewport.Extents {
	if len(m.DriftTime) == 0 {
		return viewport.Extents{}
	}
	return viewport.Extents{
		XMin: m.DriftTime[0],
		XMax: m.DriftTime[len(m.DriftTime)-1],
		YMin: 0,
		YMax: floats.Max(m.Intensity),
	}
}
