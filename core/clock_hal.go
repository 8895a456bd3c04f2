package core

// ClockDriver is the abstract monotonic time source that core code uses.
// Platform-specific implementations read the hardware timer; tests feed a
// synthetic clock so control loops run without wall-clock delays.
type ClockDriver interface {
	// NowUS returns monotonic time in microseconds since boot
	NowUS() uint64

	// SleepMS blocks for the given number of milliseconds.
	// Used only for coarse cadences (hold polling, bench sampling),
	// never inside a stall/timeout-critical wait.
	SleepMS(ms uint32)
}

// Global singleton used by core code.
var clockDriver ClockDriver

// SetClockDriver is called by target-specific code to register its driver.
func SetClockDriver(d ClockDriver) {
	clockDriver = d
}

// MustClock returns the configured driver or panics if missing.
func MustClock() ClockDriver {
	if clockDriver == nil {
		panic("clock driver not configured")
	}
	return clockDriver
}
