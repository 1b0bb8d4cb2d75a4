package msdata

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadTextPlain(t *testing.T) {
	in := `# exported spectrum
100.5 10
200.25 55.5
300.0 20
`
	s, err := ReadText(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if diff := cmp.Diff([]float64{100.5, 200.25, 300.0}, s.MZ); diff != "" {
		t.Errorf("MZ (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{10, 55.5, 20}, s.Intensity); diff != "" {
		t.Errorf("Intensity (-want +got):\n%s", diff)
	}
}

func TestReadTextSeparators(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"comma", "100,10\n200,20\n"},
		{"tab", "100\t10\n200\t20\n"},
		{"semicolon", "100;10\n200;20\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ReadText(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("ReadText: %v", err)
			}
			if s.Len() != 2 {
				t.Errorf("len = %d, want 2", s.Len())
			}
		})
	}
}

func TestReadTextSkipsHeaderRows(t *testing.T) {
	in := "m/z intensity\n100 10\n200 20\n"
	s, err := ReadText(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("len = %d, want 2", s.Len())
	}
}

func TestReadTextRejectsGarbageAfterData(t *testing.T) {
	in := "100 10\nnot numbers here\n"
	if _, err := ReadText(strings.NewReader(in)); err == nil {
		t.Error("garbage after data rows should fail")
	}
}

func TestReadTextEmpty(t *testing.T) {
	if _, err := ReadText(strings.NewReader("# only comments\n")); err == nil {
		t.Error("empty input should fail")
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spectrum.xyz")
	if err := os.WriteFile(path, []byte("100 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestLoadTextFileSetsLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.txt")
	if err := os.WriteFile(path, []byte("100 10\n200 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Label != "sample" {
		t.Errorf("Label = %q, want %q", s.Label, "sample")
	}
}

func TestReadTextHeatmap(t *testing.T) {
	in := `# matrix export
10 20 30
1 1 2 3
2 4 5 6
`
	h, err := ReadTextHeatmap(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadTextHeatmap: %v", err)
	}
	if diff := cmp.Diff([]float64{10, 20, 30}, h.RetentionTime); diff != "" {
		t.Errorf("RetentionTime (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 2}, h.DriftTime); diff != "" {
		t.Errorf("DriftTime (-want +got):\n%s", diff)
	}
	if got := h.Z.At(1, 2); got != 6 {
		t.Errorf("Z[1,2] = %v, want 6", got)
	}
}

func TestReadTextHeatmapColumnMismatch(t *testing.T) {
	in := "10 20\n1 1 2 3\n"
	if _, err := ReadTextHeatmap(strings.NewReader(in)); err == nil {
		t.Error("row with wrong column count should fail")
	}
}
