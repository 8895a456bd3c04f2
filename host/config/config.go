// Package config loads the bench calibration file. The file mirrors the
// firmware's mechanical profile so the host derives line speed from the
// same constants the controller targets with.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"winch/core"
)

// Calibration is the YAML bench calibration document.
type Calibration struct {
	GearRatio         float32 `yaml:"gear_ratio"`
	PulsesPerMotorRev uint32  `yaml:"pulses_per_motor_rev"`
	DrumDiameterM     float32 `yaml:"drum_diameter_m"`

	// SamplePeriodMS is the firmware's report window, used to label output
	SamplePeriodMS uint32 `yaml:"sample_period_ms"`
}

// Load reads and parses a calibration file.
func Load(path string) (*Calibration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read calibration file: %w", err)
	}
	return Parse(data)
}

// Parse parses a calibration document and fills in defaults for missing
// values.
func Parse(data []byte) (*Calibration, error) {
	var cal Calibration
	if err := yaml.Unmarshal(data, &cal); err != nil {
		return nil, fmt.Errorf("failed to parse calibration: %w", err)
	}
	applyDefaults(&cal)
	return &cal, nil
}

// Default returns the stock calibration.
func Default() *Calibration {
	cal := &Calibration{}
	applyDefaults(cal)
	return cal
}

// applyDefaults fills in missing values with the stock hardware profile
func applyDefaults(cal *Calibration) {
	stock := core.DefaultProfile()
	if cal.GearRatio == 0 {
		cal.GearRatio = stock.GearRatio
	}
	if cal.PulsesPerMotorRev == 0 {
		cal.PulsesPerMotorRev = stock.PulsesPerMotorRev
	}
	if cal.DrumDiameterM == 0 {
		cal.DrumDiameterM = stock.DrumDiameterM
	}
	if cal.SamplePeriodMS == 0 {
		cal.SamplePeriodMS = 1000
	}
}

// Profile converts the calibration to the core's mechanical profile.
func (c *Calibration) Profile() core.MechanicalProfile {
	return core.MechanicalProfile{
		GearRatio:         c.GearRatio,
		PulsesPerMotorRev: c.PulsesPerMotorRev,
		DrumDiameterM:     c.DrumDiameterM,
	}
}
