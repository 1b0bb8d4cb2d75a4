package msdata

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"ims-viewer/internal/spectrum"
)

// LoadHeatmap reads a drift-time heatmap from a text matrix file.
func LoadHeatmap(path string) (*spectrum.Heatmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("msdata: %w", err)
	}
	defer f.Close()
	h, err := ReadTextHeatmap(f)
	if err != nil {
		return nil, err
	}
	h.Label = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return h, nil
}

// ReadTextHeatmap parses the exported matrix layout: the first data row
// holds the retention-time axis, every following row starts with a
// drift-time value followed by one intensity per retention-time bin.
// Lines starting with '#' are comments.
func ReadTextHeatmap(r io.Reader) (*spectrum.Heatmap, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var rt, dt []float64
	var cells []float64
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields, err := parseFloats(text)
		if err != nil {
			return nil, fmt.Errorf("msdata: line %d: %w", line, err)
		}
		if rt == nil {
			rt = fields
			continue
		}
		if len(fields) != len(rt)+1 {
			return nil, fmt.Errorf("msdata: line %d: expected %d columns, got %d", line, len(rt)+1, len(fields))
		}
		dt = append(dt, fields[0])
		cells = append(cells, fields[1:]...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("msdata: %w", err)
	}
	if len(rt) == 0 || len(dt) == 0 {
		return nil, fmt.Errorf("msdata: heatmap file has no matrix rows")
	}
	return spectrum.NewHeatmap(rt, dt, mat.NewDense(len(dt), len(rt), cells))
}

func parseFloats(text string) ([]float64, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\t' || r == ' ' || r == ';'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("not numeric: %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}
