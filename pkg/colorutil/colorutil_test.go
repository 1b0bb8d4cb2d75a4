package colorutil

import (
	"image/color"
	"math"
	"testing"
)

func TestColormapEndpoints(t *testing.T) {
	tests := []struct {
		name string
		cm   Colormap
		lo   color.RGBA
		hi   color.RGBA
	}{
		{"viridis", Viridis, color.RGBA{68, 1, 84, 255}, color.RGBA{253, 231, 37, 255}},
		{"hot", Hot, color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cm(0); got != tt.lo {
				t.Errorf("cm(0) = %v, want %v", got, tt.lo)
			}
			if got := tt.cm(1); got != tt.hi {
				t.Errorf("cm(1) = %v, want %v", got, tt.hi)
			}
		})
	}
}

func TestColormapClampsOutOfRange(t *testing.T) {
	if Viridis(-0.5) != Viridis(0) {
		t.Error("t < 0 should clamp to 0")
	}
	if Viridis(1.5) != Viridis(1) {
		t.Error("t > 1 should clamp to 1")
	}
	if Viridis(math.NaN()) != Viridis(0) {
		t.Error("NaN should map to the low end")
	}
}

func TestColormapFullyOpaque(t *testing.T) {
	for _, tv := range []float64{0, 0.1, 0.33, 0.5, 0.77, 0.99, 1} {
		if c := Viridis(tv); c.A != 255 {
			t.Errorf("Viridis(%v).A = %d, want 255", tv, c.A)
		}
	}
}

func TestByName(t *testing.T) {
	if ByName("hot")(1) != Hot(1) {
		t.Error("ByName(hot) should return Hot")
	}
	if ByName("unknown")(1) != Viridis(1) {
		t.Error("unknown name should default to Viridis")
	}
}
