package ccs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Calibrant is one reference ion with a literature CCS value and its
// measured drift time on the current instrument.
type Calibrant struct {
	Name string `yaml:"name"`
	// Mass is the neutral monoisotopic mass in Da.
	Mass   float64 `yaml:"mass"`
	Charge int     `yaml:"charge"`
	// CCS is the literature collision cross section in square Angstrom.
	CCS float64 `yaml:"ccs"`
	// DriftTime is the measured arrival time in ms.
	DriftTime float64 `yaml:"drift_time"`
}

// protonMass is used to derive m/z from the neutral mass.
const protonMass = 1.00727646688

// MZ returns the mass-to-charge ratio of the protonated ion.
func (c Calibrant) MZ() float64 {
	z := float64(c.Charge)
	return (c.Mass + z*protonMass) / z
}

// Validate rejects calibrants that would corrupt the fit.
func (c Calibrant) Validate() error {
	if c.Charge <= 0 {
		return fmt.Errorf("calibrant %q: charge must be positive", c.Name)
	}
	if c.Mass <= 0 {
		return fmt.Errorf("calibrant %q: mass must be positive", c.Name)
	}
	if c.CCS <= 0 {
		return fmt.Errorf("calibrant %q: ccs must be positive", c.Name)
	}
	if c.DriftTime <= 0 {
		return fmt.Errorf("calibrant %q: drift time must be positive", c.Name)
	}
	return nil
}

// calibrantFile is the on-disk yaml layout.
type calibrantFile struct {
	Calibrants []Calibrant `yaml:"calibrants"`
}

// LoadCalibrants reads a calibrant table from a yaml file.
func LoadCalibrants(path string) ([]Calibrant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ccs: %w", err)
	}
	var f calibrantFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ccs: parse %s: %w", path, err)
	}
	if len(f.Calibrants) == 0 {
		return nil, fmt.Errorf("ccs: %s contains no calibrants", path)
	}
	return f.Calibrants, nil
}
