// Speed commander: slew-rate-limited duty-cycle output
// Commanded speed ramps toward a target at a configured rate per second
// instead of stepping with fixed sleeps, so stall and timeout checks keep
// running while the ramp is in progress.
package core

// minRampRate substitutes for rejected non-positive ramp rates (percent/s).
const minRampRate = 1.0

// SpeedCommand holds the slew-rate limiter state. Current moves toward
// Target by at most Rate*dt per Update and never leaves [0,100].
type SpeedCommand struct {
	Current float32 // commanded duty, percent
	Target  float32 // ramp destination, percent
	Rate    float32 // percent per second

	lastUpdateUS uint64
}

// Process-wide commander for the single motor drive.
var speed SpeedCommand

func clampPercent(p float32) float32 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// SetTarget sets a new ramp target and rate. Percent is clamped to
// [0,100]; non-positive rates fall back to a minimal crawl rate.
func (s *SpeedCommand) SetTarget(percent, rate float32) {
	s.Target = clampPercent(percent)
	if rate <= 0 {
		rate = minRampRate
	}
	s.Rate = rate
}

// Rearm stamps the ramp clock without moving Current. Call at the start of
// an operation so the first Update does not see a huge idle dt.
func (s *SpeedCommand) Rearm(nowUS uint64) {
	s.lastUpdateUS = nowUS
}

// Update advances Current toward Target by Rate*dt and writes the duty
// output. Must be called on every control-loop iteration; the output write
// happens even when Current is unchanged (idempotent).
func (s *SpeedCommand) Update(nowUS uint64) {
	dtUS := nowUS - s.lastUpdateUS
	s.lastUpdateUS = nowUS

	step := s.Rate * float32(dtUS) / 1e6
	diff := s.Target - s.Current
	switch {
	case diff > step:
		s.Current += step
	case diff < -step:
		s.Current -= step
	default:
		// Remaining error fits in one time-step: snap to target.
		s.Current = s.Target
	}
	s.Current = clampPercent(s.Current)

	writeDuty(s.Current)
}

// AtTarget reports whether Current is within epsilon of Target.
func (s *SpeedCommand) AtTarget(epsilon float32) bool {
	diff := s.Target - s.Current
	if diff < 0 {
		diff = -diff
	}
	return diff <= epsilon
}

// writeDuty converts a percentage to the driver's duty range and pushes it
// to the PWM output pin.
func writeDuty(percent float32) {
	max := float32(MustPWM().GetMaxValue())
	value := PWMValue(clampPercent(percent)/100.0*max + 0.5)
	_ = MustPWM().SetDutyCycle(drive.pwmPin, value)
}
