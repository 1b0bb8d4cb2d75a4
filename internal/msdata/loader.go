// Package msdata loads mass spectra from the file formats the viewer
// understands: plain two-column text and mzML.
package msdata

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ims-viewer/internal/logger"
	"ims-viewer/internal/spectrum"
)

// ErrUnknownFormat is returned when the file extension matches no
// supported format.
var ErrUnknownFormat = fmt.Errorf("msdata: unknown file format")

// Load reads the first spectrum from a file, auto-detecting the format
// from the extension.
func Load(path string) (*spectrum.MassSpectrum, error) {
	specs, err := LoadAll(path)
	if err != nil {
		return nil, err
	}
	return specs[0], nil
}

// LoadAll reads every spectrum from a file.
func LoadAll(path string) ([]*spectrum.MassSpectrum, error) {
	defer logger.TimeTrack(time.Now(), "msdata.LoadAll "+filepath.Base(path))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("msdata: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mzml":
		return ReadMzML(f)
	case ".txt", ".csv", ".tab", ".dat":
		s, err := ReadText(f)
		if err != nil {
			return nil, err
		}
		s.Label = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return []*spectrum.MassSpectrum{s}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Ext(path))
	}
}

// ReadText parses a two-column (m/z, intensity) text spectrum. Columns
// may be separated by whitespace, commas, or tabs; lines starting with
// '#' and header lines that do not parse as numbers are skipped.
func ReadText(r io.Reader) (*spectrum.MassSpectrum, error) {
	var mz, intensity []float64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == '\t' || r == ' ' || r == ';'
		})
		if len(fields) < 2 {
			continue
		}
		x, errX := strconv.ParseFloat(fields[0], 64)
		y, errY := strconv.ParseFloat(fields[1], 64)
		if errX != nil || errY != nil {
			// Header rows are common in exported spectra; only complain
			// once data rows have started.
			if len(mz) > 0 {
				return nil, fmt.Errorf("msdata: line %d: not numeric: %q", line, text)
			}
			continue
		}
		mz = append(mz, x)
		intensity = append(intensity, y)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("msdata: %w", err)
	}
	if len(mz) == 0 {
		return nil, fmt.Errorf("msdata: no data rows found")
	}
	return spectrum.New(mz, intensity)
}
