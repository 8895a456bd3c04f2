// Move controller: one point-to-point motion guarded by stall and timeout
// detection, with reduced-speed padding zones at both ends of the travel.
package core

import "runtime"

// speedTolerance: a new ramp target is only issued when the desired speed
// differs from the last commanded value by more than this (percent), so a
// steady cruise does not keep restarting the ramp.
const speedTolerance = 0.5

// SpeedBand maps a commanded duty band to the minimum FG pulses expected
// per stall window. Feedback is naturally sparse at low duty; the tiers
// keep slow moves from tripping false stalls.
type SpeedBand struct {
	MaxPercent float32 // band applies to commanded duty below this value
	MinPulses  uint32  // minimum pulses expected per stall window
}

// DefaultStallBands returns the stock calibration. The thresholds are
// hardware-dependent; override them on the MoveRequest when tuning.
func DefaultStallBands() []SpeedBand {
	return []SpeedBand{
		{MaxPercent: 15, MinPulses: 0},
		{MaxPercent: 40, MinPulses: 1},
		{MaxPercent: 70, MinPulses: 2},
		{MaxPercent: 101, MinPulses: 3},
	}
}

// minExpectedPulses returns the stall threshold for the commanded duty:
// the first band whose MaxPercent exceeds it. Returns 0 when no band
// matches so a malformed table fails safe (never stalls) rather than
// aborting healthy moves.
func minExpectedPulses(bands []SpeedBand, commandedPercent float32) uint32 {
	for _, b := range bands {
		if commandedPercent < b.MaxPercent {
			return b.MinPulses
		}
	}
	return 0
}

// MoveRequest describes one point-to-point motion. It is consumed
// synchronously by Move and does not outlive the call.
type MoveRequest struct {
	Clockwise      bool
	DistanceM      float32     // line travel in meters
	CruisePercent  float32     // duty for the middle of the move
	TimeoutMS      uint32      // overall deadline; must be finite and positive
	PaddingM       float32     // reduced-speed zone at each end of the travel
	PaddingPercent float32     // duty inside the padding zones
	StallWindowUS  uint32      // stall evaluation window
	StallBands     []SpeedBand // nil selects DefaultStallBands
	RampRate       float32     // percent/s for speed changes during the move
	BrakeRate      float32     // faster percent/s used when stopping
	SettleMS       uint32      // hold-at-zero time after the brake ramp
}

type moveState uint8

const (
	moveStarting moveState = iota
	moveTraveling
	moveStopping
	moveDone
)

// moveMachine is the move state machine, driven by tick() with a
// monotonic timestamp so tests can feed a synthetic clock.
type moveMachine struct {
	req       MoveRequest
	bands     []SpeedBand
	target    uint32 // total pulses to travel
	padPulses uint32 // pulses spent in each padding zone

	state   moveState
	outcome MotionOutcome

	startUS       uint64
	windowStartUS uint64
	windowPulses  uint32
	lastCommanded float32
	settleStartUS uint64
}

func newMoveMachine(req MoveRequest) *moveMachine {
	m := &moveMachine{
		req:    req,
		bands:  req.StallBands,
		target: PulsesForDistance(req.DistanceM),
		state:  moveStarting,
	}
	if m.bands == nil {
		m.bands = DefaultStallBands()
	}
	m.padPulses = PulsesForDistance(req.PaddingM)
	if 2*m.padPulses >= m.target {
		// Too short to reach cruise: the whole move runs at padding speed.
		m.padPulses = m.target / 2
	}
	return m
}

func (m *moveMachine) tick(nowUS uint64) {
	switch m.state {
	case moveStarting:
		FGReset()
		setDirection(m.req.Clockwise)
		speed.Rearm(nowUS)
		initial := m.req.CruisePercent
		if m.padPulses > 0 {
			initial = m.req.PaddingPercent
		}
		speed.SetTarget(initial, m.req.RampRate)
		m.lastCommanded = initial
		m.startUS = nowUS
		m.windowStartUS = nowUS
		m.windowPulses = 0
		m.state = moveTraveling

	case moveTraveling:
		speed.Update(nowUS)
		pulses := FGRead()

		if pulses >= m.target {
			m.enterStop(OutcomeSuccess)
			return
		}

		// Stall check: pulses accumulated over a full window must meet the
		// minimum for the currently commanded speed band.
		if nowUS-m.windowStartUS >= uint64(m.req.StallWindowUS) {
			if pulses-m.windowPulses < minExpectedPulses(m.bands, m.lastCommanded) {
				m.enterStop(OutcomeStalled)
				return
			}
			m.windowStartUS = nowUS
			m.windowPulses = pulses
		}

		// Timeout safety
		if nowUS-m.startUS > uint64(m.req.TimeoutMS)*1000 {
			m.enterStop(OutcomeTimedOut)
			return
		}

		// Speed selection: padding duty inside either end zone, cruise
		// duty in between.
		desired := m.req.CruisePercent
		if pulses < m.padPulses || m.target-pulses < m.padPulses {
			desired = m.req.PaddingPercent
		}
		diff := desired - m.lastCommanded
		if diff < 0 {
			diff = -diff
		}
		if diff > speedTolerance {
			speed.SetTarget(desired, m.req.RampRate)
			m.lastCommanded = desired
		}

	case moveStopping:
		// Keep servicing the commander through the brake ramp and settle
		// window; output writes never freeze.
		speed.Update(nowUS)
		if !speed.AtTarget(brakeEpsilon) {
			return
		}
		if m.settleStartUS == 0 {
			m.settleStartUS = nowUS
			return
		}
		if nowUS-m.settleStartUS >= uint64(m.req.SettleMS)*1000 {
			m.state = moveDone
		}
	}
}

func (m *moveMachine) enterStop(outcome MotionOutcome) {
	m.outcome = outcome
	speed.SetTarget(0, m.req.BrakeRate)
	m.state = moveStopping
}

// Move drives the motor through one point-to-point motion and blocks until
// the target is reached, the motor stalls, or the timeout expires. The
// drive is always commanded back to zero before Move returns.
func Move(req MoveRequest) MotionOutcome {
	m := newMoveMachine(req)
	if m.target == 0 {
		// Nothing to do: no direction change, no drive commands.
		return OutcomeSuccess
	}

	clock := MustClock()
	for m.state != moveDone {
		m.tick(clock.NowUS())
		runtime.Gosched()
	}
	return m.outcome
}
