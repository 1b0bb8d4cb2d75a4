// Package axis provides axis unit normalization and tick generation for
// mass-spectrum and mobility plots.
package axis

import (
	"fmt"
	"math"
)

// Unit labels for the mass axis.
const (
	UnitDa  = "Da"
	UnitKDa = "kDa"
)

// kiloThreshold values come from how mass axes are conventionally displayed:
// once the axis runs into the tens of thousands of Daltons the raw labels
// stop being readable.
const (
	kiloMidpointThreshold = 100_000.0
	kiloLastThreshold     = 1_000_000.0
	kiloMaxThreshold      = 10_000.0
)

// NormalizeMassAxis decides the display unit for a mass axis. When the axis
// midpoint exceeds 100,000, its last value exceeds 1,000,000, or its maximum
// exceeds 10,000, every value is divided by 1,000 and the unit becomes kDa.
// Non-numeric or empty input is returned unscaled with the Da label; this
// function never fails.
func NormalizeMassAxis(values []float64) (scaled []float64, unit string, kilo bool) {
	if len(values) == 0 {
		return values, UnitDa, false
	}

	maxVal := math.Inf(-1)
	finite := 0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		finite++
		if v > maxVal {
			maxVal = v
		}
	}
	if finite == 0 {
		return values, UnitDa, false
	}

	mid := values[len(values)/2]
	last := values[len(values)-1]
	if mid > kiloMidpointThreshold || last > kiloLastThreshold || maxVal > kiloMaxThreshold {
		scaled = make([]float64, len(values))
		for i, v := range values {
			scaled[i] = v / 1000.0
		}
		return scaled, UnitKDa, true
	}
	return values, UnitDa, false
}

// NormalizeMass applies the same unit decision to a single mass value.
func NormalizeMass(value float64) (scaled float64, unit string, kilo bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value, UnitDa, false
	}
	if value > kiloMaxThreshold {
		return value / 1000.0, UnitKDa, true
	}
	return value, UnitDa, false
}

// ComputeTickDivisor returns a power-of-ten divisor for compact tick labels
// and the matching exponent. The divisor starts at 10 and grows tenfold while
// max(values)/divisor is still 10 or more, so the leading tick digits stay in
// the single-digit range.
func ComputeTickDivisor(values []float64) (divisor int, exponent int) {
	maxVal := 0.0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		return 1, 0
	}

	d := 10.0
	for maxVal/d >= 10 {
		d *= 10
	}
	divisor = int(d)
	for n := divisor; n >= 10 && n%10 == 0; n /= 10 {
		exponent++
	}
	return divisor, exponent
}

// Ticks generates up to n tick positions spanning [min,max] using a
// 1/2/2.5/5 x 10^k step pattern. Falls back to {min,max} for degenerate
// inputs.
func Ticks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) || max <= min {
		return []float64{min, max}
	}
	span := max - min
	rawStep := span / float64(n-1)
	mag := pow10Floor(rawStep)
	norm := rawStep / mag
	step := mag
	switch {
	case norm <= 1:
		step = 1 * mag
	case norm <= 2:
		step = 2 * mag
	case norm <= 2.5:
		step = 2.5 * mag
	case norm <= 5:
		step = 5 * mag
	default:
		step = 10 * mag
	}

	start := math.Ceil(min/step) * step
	var out []float64
	for v := start; v <= max+step*0.25; v += step {
		if v > max {
			v = max
		}
		out = append(out, round6(v))
		if v == max {
			break
		}
	}
	if len(out) < 2 {
		out = []float64{min, max}
	}
	return out
}

// DivisorFormatter returns a tick label formatter dividing values by the
// given divisor. The exponent is exposed to callers that want to annotate
// the axis title (e.g. "x10^3").
func DivisorFormatter(divisor int) func(v interface{}) string {
	d := float64(divisor)
	if d <= 0 {
		d = 1
	}
	return func(v interface{}) string {
		f, ok := v.(float64)
		if !ok {
			return ""
		}
		return fmt.Sprintf("%.4g", f/d)
	}
}

// ExponentSuffix renders the axis annotation matching a tick exponent,
// e.g. exponent 3 becomes "x10^3". Exponent 0 yields an empty string.
func ExponentSuffix(exponent int) string {
	if exponent <= 0 {
		return ""
	}
	return fmt.Sprintf("x10^%d", exponent)
}

func pow10Floor(x float64) float64 {
	if x <= 0 {
		return 1
	}
	return math.Pow(10, math.Floor(math.Log10(x)))
}

func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }
