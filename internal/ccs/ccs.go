// Package ccs implements travelling-wave collision-cross-section
// calibration: a power-law fit of corrected drift time against literature
// CCS values of calibrant ions, applied to measured drift times.
package ccs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"ims-viewer/internal/logger"
)

// Nitrogen is the molecular mass of the N2 drift gas in Da.
const Nitrogen = 28.0134

// minCalibrants is the smallest set that still constrains the two-parameter
// power law.
const minCalibrants = 3

// ErrTooFewCalibrants is returned when the calibrant set cannot constrain
// the fit.
var ErrTooFewCalibrants = fmt.Errorf("ccs: need at least %d calibrants", minCalibrants)

// Calibration holds the fitted power-law coefficients Omega' = A * td'^B
// and the conditions they were fitted under.
type Calibration struct {
	A, B float64
	// EDC is the enhanced-duty-cycle delay coefficient used for the
	// drift-time correction.
	EDC float64
	// GasMass is the drift gas molecular mass in Da.
	GasMass float64
	// RMSD is the root-mean-square residual of the fit in corrected CCS
	// units.
	RMSD float64
}

// Fit derives the calibration from a calibrant set using a Nelder-Mead
// least-squares minimization, the same approach the recalibration
// literature uses for instrument-response fits.
func Fit(cals []Calibrant, edc float64) (*Calibration, error) {
	usable := cals[:0:0]
	for _, c := range cals {
		if err := c.Validate(); err != nil {
			logger.Debugf("ccs: skipping calibrant: %v", err)
			continue
		}
		usable = append(usable, c)
	}
	if len(usable) < minCalibrants {
		return nil, ErrTooFewCalibrants
	}

	type pt struct{ td, ccs float64 }
	pts := make([]pt, len(usable))
	for i, c := range usable {
		pts[i] = pt{
			td:  correctedDrift(c.DriftTime, c.MZ(), edc),
			ccs: correctedCCS(c.CCS, c.MZ(), c.Charge, Nitrogen),
		}
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			a, b := x[0], x[1]
			sum := 0.0
			for _, p := range pts {
				diff := a*math.Pow(p.td, b) - p.ccs
				sum += diff * diff
			}
			return math.Sqrt(sum)
		},
	}

	// Seed the fit from a log-log line through the first and last
	// calibrants; Nelder-Mead converges from there reliably.
	first, last := pts[0], pts[len(pts)-1]
	b0 := 0.5
	if first.td > 0 && last.td > 0 && first.td != last.td {
		b0 = math.Log(last.ccs/first.ccs) / math.Log(last.td/first.td)
	}
	a0 := first.ccs / math.Pow(first.td, b0)

	result, err := optimize.Minimize(problem, []float64{a0, b0}, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("ccs: fit failed: %w", err)
	}

	cal := &Calibration{
		A:       result.X[0],
		B:       result.X[1],
		EDC:     edc,
		GasMass: Nitrogen,
		RMSD:    result.F / math.Sqrt(float64(len(pts))),
	}
	logger.Debugf("ccs: fitted A=%.6g B=%.6g rmsd=%.4g from %d calibrants",
		cal.A, cal.B, cal.RMSD, len(pts))
	return cal, nil
}

// CCS converts a measured drift time into a collision cross section for
// an ion of the given m/z and charge.
func (c *Calibration) CCS(mz float64, charge int, driftTime float64) float64 {
	td := correctedDrift(driftTime, mz, c.EDC)
	if td <= 0 {
		return 0
	}
	omegaPrime := c.A * math.Pow(td, c.B)
	return uncorrectCCS(omegaPrime, mz, charge, c.GasMass)
}

// correctedDrift removes the mass-dependent transfer delay from a raw
// drift time: td' = td - EDC*sqrt(m/z)/1000.
func correctedDrift(td, mz, edc float64) float64 {
	return td - edc*math.Sqrt(mz)/1000.0
}

// correctedCCS removes the charge and reduced-mass dependence from a
// literature CCS: Omega' = Omega / (z * sqrt(1/mu)).
func correctedCCS(omega, mz float64, charge int, gas float64) float64 {
	z := float64(charge)
	mu := reducedMass(mz*z, gas)
	return omega / (z * math.Sqrt(1/mu))
}

func uncorrectCCS(omegaPrime, mz float64, charge int, gas float64) float64 {
	z := float64(charge)
	mu := reducedMass(mz*z, gas)
	return omegaPrime * z * math.Sqrt(1/mu)
}

func reducedMass(m, gas float64) float64 {
	return m * gas / (m + gas)
}
