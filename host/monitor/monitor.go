// Package monitor parses the firmware's bench diagnostic stream.
package monitor

import (
	"fmt"
	"strings"

	"winch/core"
)

// reportPrefix matches core.MonitorPulseRate's output format.
const reportPrefix = "fg_rate "

// Report is one pulse-rate sample window from the firmware.
type Report struct {
	Pulses uint32  // FG edges seen in the window
	Rate   float32 // pulses per second
}

// ParseReport decodes one diagnostic line. Lines that are not pulse-rate
// reports (outcome prints, noise) return ok=false.
func ParseReport(line string) (Report, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, reportPrefix) {
		return Report{}, false
	}

	var r Report
	if _, err := fmt.Sscanf(line, "fg_rate pulses=%d rate=%f", &r.Pulses, &r.Rate); err != nil {
		return Report{}, false
	}
	return r, true
}

// LineSpeedMPS converts a pulse rate to line speed using the calibration
// profile: rate / pulses-per-meter.
func (r Report) LineSpeedMPS(profile core.MechanicalProfile) float32 {
	ppm := profile.PulsesPerMeter()
	if ppm <= 0 {
		return 0
	}
	return r.Rate / ppm
}
