// Bench diagnostics
// Hand-spin the drum and watch the pulse rate to verify the FG wiring and
// the mechanical constants before trusting closed-loop moves.
package core

import "fmt"

// MonitorPulseRate samples the feedback counter for the given number of
// periods and reports each window through the debug writer as
// "fg_rate pulses=<n> rate=<pulses/s>". The motor is not driven; this is a
// bench routine, not part of the control loop.
func MonitorPulseRate(samples, periodMS uint32) {
	clock := MustClock()
	FGReset()

	last := uint32(0)
	for i := uint32(0); i < samples; i++ {
		clock.SleepMS(periodMS)
		total := FGRead()
		delta := total - last
		last = total
		rate := float32(delta) * 1000 / float32(periodMS)
		debugPrintln(fmt.Sprintf("fg_rate pulses=%d rate=%.1f", delta, rate))
	}
}
