package msdata

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"io"
	"math"

	"ims-viewer/internal/spectrum"
)

// CV accessions for the binary data sections we care about.
// MS:1000514 m/z array            MS:1000515 intensity array
// MS:1000521 32-bit float         MS:1000523 64-bit float
// MS:1000574 zlib compression     MS:1000576 no compression
const (
	cvMZArray       = "MS:1000514"
	cvIntensity     = "MS:1000515"
	cvFloat32       = "MS:1000521"
	cvFloat64       = "MS:1000523"
	cvZlib          = "MS:1000574"
	cvNoCompression = "MS:1000576"
)

type mzMLBinaryArray struct {
	CVParams []mzMLCVParam `xml:"cvParam"`
	Binary   string        `xml:"binary"`
}

type mzMLCVParam struct {
	Accession string `xml:"accession,attr"`
	Value     string `xml:"value,attr"`
}

// ReadMzML parses the spectra out of an mzML stream. Only m/z and
// intensity arrays are decoded; everything else in the file is skipped.
// The decoder walks tokens directly instead of decoding the whole
// document, so indexedmzML wrappers and namespace noise are irrelevant.
func ReadMzML(r io.Reader) ([]*spectrum.MassSpectrum, error) {
	d := xml.NewDecoder(r)
	var out []*spectrum.MassSpectrum
	for {
		t, err := d.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("mzml: %w", err)
		}
		start, ok := t.(xml.StartElement)
		if !ok || start.Name.Local != "spectrum" {
			continue
		}
		var raw struct {
			ID     string            `xml:"id,attr"`
			Arrays []mzMLBinaryArray `xml:"binaryDataArrayList>binaryDataArray"`
		}
		if err := d.DecodeElement(&raw, &start); err != nil {
			return nil, fmt.Errorf("mzml: spectrum element: %w", err)
		}
		var mz, intensity []float64
		for _, arr := range raw.Arrays {
			vals, isMZ, isIntensity, err := decodeBinaryArray(arr)
			if err != nil {
				return nil, fmt.Errorf("mzml: spectrum %q: %w", raw.ID, err)
			}
			switch {
			case isMZ:
				mz = vals
			case isIntensity:
				intensity = vals
			}
		}
		if len(mz) == 0 || len(intensity) == 0 {
			continue
		}
		s, err := spectrum.New(mz, intensity)
		if err != nil {
			return nil, fmt.Errorf("mzml: spectrum %q: %w", raw.ID, err)
		}
		s.Label = raw.ID
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("mzml: no spectra with m/z and intensity arrays")
	}
	return out, nil
}

// decodeBinaryArray base64-decodes one binaryDataArray, inflating zlib
// blocks and converting 32- or 64-bit little-endian floats.
func decodeBinaryArray(arr mzMLBinaryArray) (vals []float64, isMZ, isIntensity bool, err error) {
	compressed := false
	bits64 := true
	for _, cv := range arr.CVParams {
		switch cv.Accession {
		case cvZlib:
			compressed = true
		case cvNoCompression:
			compressed = false
		case cvMZArray:
			isMZ = true
		case cvIntensity:
			isIntensity = true
		case cvFloat64:
			bits64 = true
		case cvFloat32:
			bits64 = false
		}
	}
	if !isMZ && !isIntensity {
		return nil, false, false, nil
	}

	data, err := base64.StdEncoding.DecodeString(arr.Binary)
	if err != nil {
		return nil, false, false, fmt.Errorf("binary data: %w", err)
	}
	if compressed {
		z, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, false, false, fmt.Errorf("zlib header: %w", err)
		}
		defer z.Close()
		data, err = io.ReadAll(z)
		if err != nil {
			return nil, false, false, fmt.Errorf("zlib inflate: %w", err)
		}
	}

	if bits64 {
		vals = make([]float64, len(data)/8)
		for i := range vals {
			vals[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
		}
	} else {
		vals = make([]float64, len(data)/4)
		for i := range vals {
			vals[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:])))
		}
	}
	return vals, isMZ, isIntensity, nil
}
