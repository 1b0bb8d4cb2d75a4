package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"ims-viewer/internal/spectrum"
	"ims-viewer/internal/viewport"
)

func testSpectrum(t *testing.T) *spectrum.MassSpectrum {
	t.Helper()
	mz := make([]float64, 200)
	intensity := make([]float64, 200)
	for i := range mz {
		mz[i] = 100 + float64(i)*10
		intensity[i] = float64((i*37)%500) + 1
	}
	s, err := spectrum.New(mz, intensity)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRenderSpectrumPNGProducesDecodableImage(t *testing.T) {
	s := testSpectrum(t)
	opts := FigureOptions{Width: 640, Height: 400}

	data, err := RenderSpectrumPNG(s, s.DataExtents(), opts)
	if err != nil {
		t.Fatalf("RenderSpectrumPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != opts.Width || b.Dy() != opts.Height {
		t.Errorf("image size = %dx%d, want %dx%d", b.Dx(), b.Dy(), opts.Width, opts.Height)
	}
}

func TestRenderSpectrumPNGInvalidViewFallsBack(t *testing.T) {
	s := testSpectrum(t)
	// An invalid view must render the full data extents, not fail.
	if _, err := RenderSpectrumPNG(s, viewport.Extents{}, FigureOptions{Width: 320, Height: 240}); err != nil {
		t.Errorf("RenderSpectrumPNG with invalid view: %v", err)
	}
}

func TestRenderSpectrumPNGEmptyWindow(t *testing.T) {
	s := testSpectrum(t)
	view := viewport.Extents{XMin: 50_000, XMax: 60_000, YMin: 0, YMax: 10}
	if _, err := RenderSpectrumPNG(s, view, DefaultFigureOptions()); err == nil {
		t.Error("window without data should fail")
	}
}

func TestRenderSpectrumPNGNilSpectrum(t *testing.T) {
	if _, err := RenderSpectrumPNG(nil, viewport.Extents{}, DefaultFigureOptions()); err == nil {
		t.Error("nil spectrum should fail")
	}
}

func TestRenderSpectrumImage(t *testing.T) {
	s := testSpectrum(t)
	img, err := RenderSpectrumImage(s, s.DataExtents(), 320, 240)
	if err != nil {
		t.Fatalf("RenderSpectrumImage: %v", err)
	}
	if img.Bounds().Dx() != 320 {
		t.Errorf("width = %d, want 320", img.Bounds().Dx())
	}
}

func TestSaveSpectrumPNG(t *testing.T) {
	s := testSpectrum(t)
	path := filepath.Join(t.TempDir(), "figure.png")
	if err := SaveSpectrumPNG(path, s, s.DataExtents(), FigureOptions{Width: 320, Height: 240}); err != nil {
		t.Fatalf("SaveSpectrumPNG: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("saved file is not valid PNG: %v", err)
	}
}
