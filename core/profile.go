package core

import "math"

// MechanicalProfile describes the drivetrain between the motor shaft and
// the winch line. All values are fixed properties of the hardware.
type MechanicalProfile struct {
	GearRatio         float32 // motor revs per drum rev
	PulsesPerMotorRev uint32  // FG edges per motor revolution (datasheet)
	DrumDiameterM     float32 // drum diameter in meters
}

// PulsesPerMeter returns FG pulses per meter of line travel.
// pulses/drum rev = GearRatio * PulsesPerMotorRev; meters/drum rev = pi*D.
func (p MechanicalProfile) PulsesPerMeter() float32 {
	pulsesPerDrumRev := p.GearRatio * float32(p.PulsesPerMotorRev)
	return pulsesPerDrumRev / (math.Pi * p.DrumDiameterM)
}

// DefaultProfile matches the 24V 570RPM gearmotor (14:1 gearbox, 6 FG
// pulses per motor rev) on a 50mm drum: about 535 pulses per meter.
func DefaultProfile() MechanicalProfile {
	return MechanicalProfile{
		GearRatio:         14.0,
		PulsesPerMotorRev: 6,
		DrumDiameterM:     0.050,
	}
}

var (
	profile        MechanicalProfile
	pulsesPerMeter float32
)

// SetMechanicalProfile installs the process-wide profile and derives the
// pulses-per-meter constant once, so the hot path is a single multiply.
func SetMechanicalProfile(p MechanicalProfile) {
	profile = p
	pulsesPerMeter = p.PulsesPerMeter()
}

// GetMechanicalProfile returns the installed profile.
func GetMechanicalProfile() MechanicalProfile {
	return profile
}

// PulsesForDistance converts a line distance to a target FG pulse count,
// rounding to the nearest pulse. Distances at or below zero need no motion
// and map to zero pulses.
func PulsesForDistance(meters float32) uint32 {
	if meters <= 0 {
		return 0
	}
	return uint32(meters*pulsesPerMeter + 0.5)
}
