package core

import "testing"

// The control loops are timing-driven, so the harness replaces every HAL
// driver with a simulation: a clock that advances a fixed step per reading,
// a PWM recorder, a GPIO recorder, and a pulse source that emits FG edges
// at a rate derived from the duty the core is actually commanding.

const testPWMPin = PWMPin(15)
const testDirPin = GPIOPin(14)

type simClock struct {
	nowUS     uint64
	stepUS    uint64
	onAdvance func(dtUS uint64)
}

func (c *simClock) advance(dtUS uint64) {
	c.nowUS += dtUS
	if c.onAdvance != nil {
		c.onAdvance(dtUS)
	}
}

func (c *simClock) NowUS() uint64 {
	c.advance(c.stepUS)
	return c.nowUS
}

func (c *simClock) SleepMS(ms uint32) {
	c.advance(uint64(ms) * 1000)
}

type simPWM struct {
	duty       PWMValue
	maxDuty    PWMValue // highest value ever written
	writes     int
	configured map[PWMPin]uint32
}

func (p *simPWM) ConfigurePWM(pin PWMPin, freqHz uint32) (uint32, error) {
	p.configured[pin] = freqHz
	return freqHz, nil
}

func (p *simPWM) SetDutyCycle(pin PWMPin, value PWMValue) error {
	p.duty = value
	if value > p.maxDuty {
		p.maxDuty = value
	}
	p.writes++
	return nil
}

func (p *simPWM) GetMaxValue() uint32 { return 255 }

func (p *simPWM) dutyPercent() float32 {
	return float32(p.duty) * 100 / 255
}

type simGPIO struct {
	levels   map[GPIOPin]bool
	setCalls map[GPIOPin]int
}

func (g *simGPIO) ConfigureOutput(pin GPIOPin) error      { return nil }
func (g *simGPIO) ConfigureInputPullUp(pin GPIOPin) error { return nil }
func (g *simGPIO) SetPin(pin GPIOPin, value bool) error {
	g.levels[pin] = value
	g.setCalls[pin]++
	return nil
}
func (g *simGPIO) ReadPin(pin GPIOPin) bool { return g.levels[pin] }

type simEdge struct {
	enabled bool
}

func (e *simEdge) SetEnabled(enabled bool) { e.enabled = enabled }

// simHarness wires the simulated drivers into the core singletons and
// emits FG pulses as simulated time passes.
type simHarness struct {
	clock *simClock
	pwm   *simPWM
	gpio  *simGPIO
	edge  *simEdge

	// rateFor maps the duty the core is commanding to an FG pulse rate in
	// pulses per second. nil means no pulses ever arrive.
	rateFor func(dutyPercent float32) float32

	// stopAfter caps total emitted pulses (0 = unlimited), simulating a
	// feedback line that goes dead mid-move.
	stopAfter uint32

	emitted        uint32
	poweredEmitted uint32 // pulses emitted while the drive was powered
	pulseAccum     float32
}

func newHarness(t *testing.T) *simHarness {
	t.Helper()

	h := &simHarness{
		clock: &simClock{stepUS: 1000},
		pwm:   &simPWM{configured: make(map[PWMPin]uint32)},
		gpio:  &simGPIO{levels: make(map[GPIOPin]bool), setCalls: make(map[GPIOPin]int)},
		edge:  &simEdge{enabled: true},
	}
	h.clock.onAdvance = h.emitPulses

	SetClockDriver(h.clock)
	SetPWMDriver(h.pwm)
	SetGPIODriver(h.gpio)
	SetEdgeDriver(h.edge)
	SetMechanicalProfile(DefaultProfile())

	// Clear singleton state left over from previous tests.
	fgPulses = 0
	speed = SpeedCommand{}
	tuning = DefaultTuning()

	if err := ConfigureDrive(testPWMPin, testDirPin, ActiveLowClockwise); err != nil {
		t.Fatalf("ConfigureDrive failed: %v", err)
	}
	return h
}

// emitPulses delivers FG edges proportional to elapsed simulated time at
// the configured rate, honoring the interrupt mask and the stopAfter cap.
func (h *simHarness) emitPulses(dtUS uint64) {
	if h.rateFor == nil || !h.edge.enabled {
		return
	}
	h.pulseAccum += h.rateFor(h.pwm.dutyPercent()) * float32(dtUS) / 1e6
	for h.pulseAccum >= 1 {
		h.pulseAccum--
		if h.stopAfter != 0 && h.emitted >= h.stopAfter {
			return
		}
		h.emitted++
		if h.pwm.dutyPercent() >= 1 {
			h.poweredEmitted++
		}
		FGPulseISR()
	}
}

// dutyProportional is the usual healthy-motor model: pulse rate scales
// linearly with commanded duty.
func dutyProportional(pulsesPerSecondAtFull float32) func(float32) float32 {
	return func(dutyPercent float32) float32 {
		return pulsesPerSecondAtFull * dutyPercent / 100
	}
}
