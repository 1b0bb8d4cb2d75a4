package axis

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeMassAxisStaysInDaltons(t *testing.T) {
	values := []float64{500, 1200, 3000, 5000}
	scaled, unit, kilo := NormalizeMassAxis(values)

	if kilo {
		t.Fatal("axis with max 5000 should stay in Da")
	}
	if unit != UnitDa {
		t.Errorf("unit = %q, want %q", unit, UnitDa)
	}
	if diff := cmp.Diff(values, scaled); diff != "" {
		t.Errorf("values changed without scaling (-want +got):\n%s", diff)
	}
}

func TestNormalizeMassAxisMidpointTriggersKilo(t *testing.T) {
	// Midpoint above 100,000 forces kDa even when the maximum check
	// would already have fired; the result must be the same either way.
	values := []float64{50_000, 150_000, 250_000}
	scaled, unit, kilo := NormalizeMassAxis(values)

	if !kilo {
		t.Fatal("axis with midpoint 150000 should switch to kDa")
	}
	if unit != UnitKDa {
		t.Errorf("unit = %q, want %q", unit, UnitKDa)
	}
	want := []float64{50, 150, 250}
	if diff := cmp.Diff(want, scaled); diff != "" {
		t.Errorf("scaled values (-want +got):\n%s", diff)
	}
}

func TestNormalizeMassAxisMaxTriggersKilo(t *testing.T) {
	_, unit, kilo := NormalizeMassAxis([]float64{100, 10_001})
	if !kilo || unit != UnitKDa {
		t.Errorf("max above 10000 should give kDa, got unit=%q kilo=%v", unit, kilo)
	}
}

func TestNormalizeMassAxisInputUnmodified(t *testing.T) {
	values := []float64{5000, 20_000}
	scaled, _, _ := NormalizeMassAxis(values)
	if &scaled[0] == &values[0] {
		t.Error("scaling must allocate a new slice, not modify the input")
	}
	if values[1] != 20_000 {
		t.Errorf("input mutated: values[1] = %v", values[1])
	}
}

func TestNormalizeMassAxisNonFiniteFailSafe(t *testing.T) {
	values := []float64{math.NaN(), math.Inf(1)}
	scaled, unit, kilo := NormalizeMassAxis(values)
	if kilo || unit != UnitDa {
		t.Errorf("non-finite input must fall back to Da unscaled, got unit=%q kilo=%v", unit, kilo)
	}
	if len(scaled) != len(values) {
		t.Errorf("len(scaled) = %d, want %d", len(scaled), len(values))
	}
}

func TestNormalizeMassAxisEmpty(t *testing.T) {
	scaled, unit, kilo := NormalizeMassAxis(nil)
	if kilo || unit != UnitDa || len(scaled) != 0 {
		t.Errorf("empty input: got %v %q %v", scaled, unit, kilo)
	}
}

func TestNormalizeMassScalar(t *testing.T) {
	tests := []struct {
		value     float64
		want      float64
		wantUnit  string
		wantKilo  bool
	}{
		{5000, 5000, UnitDa, false},
		{10_000, 10_000, UnitDa, false},
		{50_000, 50, UnitKDa, true},
		{math.NaN(), math.NaN(), UnitDa, false},
	}
	for _, tt := range tests {
		got, unit, kilo := NormalizeMass(tt.value)
		if unit != tt.wantUnit || kilo != tt.wantKilo {
			t.Errorf("NormalizeMass(%v) = unit %q kilo %v, want %q %v",
				tt.value, unit, kilo, tt.wantUnit, tt.wantKilo)
		}
		if !math.IsNaN(tt.want) && got != tt.want {
			t.Errorf("NormalizeMass(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestComputeTickDivisor(t *testing.T) {
	tests := []struct {
		name         string
		values       []float64
		wantDivisor  int
		wantExponent int
	}{
		{"thousands", []float64{100, 4500}, 1000, 3},
		{"tens", []float64{45}, 10, 1},
		{"millions", []float64{2_500_000}, 1_000_000, 6},
		{"small", []float64{3}, 10, 1},
		{"empty", nil, 1, 0},
		{"nonpositive", []float64{-5, 0}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			divisor, exponent := ComputeTickDivisor(tt.values)
			if divisor != tt.wantDivisor || exponent != tt.wantExponent {
				t.Errorf("ComputeTickDivisor(%v) = %d, %d, want %d, %d",
					tt.values, divisor, exponent, tt.wantDivisor, tt.wantExponent)
			}
		})
	}
}

func TestTicksSpanRange(t *testing.T) {
	ticks := Ticks(0, 100, 6)
	if len(ticks) < 2 {
		t.Fatalf("got %d ticks, want at least 2", len(ticks))
	}
	for i, v := range ticks {
		if v < 0 || v > 100 {
			t.Errorf("tick %d = %v outside [0, 100]", i, v)
		}
		if i > 0 && v <= ticks[i-1] {
			t.Errorf("ticks not strictly increasing at %d: %v", i, ticks)
		}
	}
}

func TestTicksDegenerate(t *testing.T) {
	ticks := Ticks(5, 5, 6)
	if diff := cmp.Diff([]float64{5, 5}, ticks); diff != "" {
		t.Errorf("degenerate range (-want +got):\n%s", diff)
	}
}

func TestDivisorFormatter(t *testing.T) {
	f := DivisorFormatter(1000)
	if got := f(4500.0); got != "4.5" {
		t.Errorf("f(4500) = %q, want %q", got, "4.5")
	}
	if got := f("not a float"); got != "" {
		t.Errorf("non-float input = %q, want empty", got)
	}
}

func TestExponentSuffix(t *testing.T) {
	if got := ExponentSuffix(3); got != "x10^3" {
		t.Errorf("ExponentSuffix(3) = %q", got)
	}
	if got := ExponentSuffix(0); got != "" {
		t.Errorf("ExponentSuffix(0) = %q, want empty", got)
	}
}
