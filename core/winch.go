// Winch public operations
// The controller manages exactly one motor, so the drive binding, the
// mechanical profile and the tuning are process-wide state, configured once
// at bring-up. Operations run to completion before returning: the machine
// cannot move and hold at the same time.
package core

import "runtime"

// brakeEpsilon is the duty error (percent) below which a brake ramp is
// considered complete.
const brakeEpsilon = 0.01

// DirectionPolarity maps logical clockwise rotation to the DIR wire level.
// The stock wiring drives the line low for clockwise; boards wired the
// other way around select ActiveHighClockwise instead of guessing.
type DirectionPolarity uint8

const (
	ActiveLowClockwise DirectionPolarity = iota
	ActiveHighClockwise
)

type driveConfig struct {
	pwmPin   PWMPin
	dirPin   GPIOPin
	polarity DirectionPolarity
}

var drive driveConfig

// ConfigureDrive binds the core to its output pins. Call once at bring-up,
// after the HAL drivers are registered and the PWM pin is configured.
func ConfigureDrive(pwmPin PWMPin, dirPin GPIOPin, polarity DirectionPolarity) error {
	if err := MustGPIO().ConfigureOutput(dirPin); err != nil {
		return err
	}
	drive = driveConfig{pwmPin: pwmPin, dirPin: dirPin, polarity: polarity}
	return nil
}

func setDirection(clockwise bool) {
	level := !clockwise
	if drive.polarity == ActiveHighClockwise {
		level = clockwise
	}
	_ = MustGPIO().SetPin(drive.dirPin, level)
}

// Tuning supplies the request fields the public operations do not expose.
// Values are calibration-dependent; adjust with SetTuning.
type Tuning struct {
	CruiseRampRate  float32 // percent/s for in-move speed changes
	BrakeRate       float32 // percent/s for stopping, faster than cruise ramp
	NudgeRampRate   float32 // percent/s for hold-mode nudges
	SettleMS        uint32  // post-brake settle after a move
	NudgeSettleMS   uint32  // post-brake settle around nudges
	TimeoutMS       uint32  // overall move deadline
	PaddingM        float32 // reduced-speed zone at each end of a move
	PaddingPercent  float32 // duty inside padding zones
	StallWindowUS   uint32
	NudgePercent    float32
	DeadbandPulses  uint32
	NudgePulseCount uint32
	MinNudgeGapMS   uint32
	HoldPollMS      uint32
}

// DefaultTuning reproduces the stock calibration: 1%/10ms ramps, 10%/8ms
// nudge ramps, 300ms settles (200ms around nudges), 60s move deadline,
// 50% padding duty (the drive gets jerky below 50%).
func DefaultTuning() Tuning {
	return Tuning{
		CruiseRampRate:  100,
		BrakeRate:       250,
		NudgeRampRate:   1250,
		SettleMS:        300,
		NudgeSettleMS:   200,
		TimeoutMS:       60000,
		PaddingM:        0.05,
		PaddingPercent:  50,
		StallWindowUS:   300000,
		NudgePercent:    50,
		DeadbandPulses:  1,
		NudgePulseCount: 80,
		MinNudgeGapMS:   250,
		HoldPollMS:      10,
	}
}

var tuning = DefaultTuning()

// SetTuning replaces the process-wide tuning.
func SetTuning(t Tuning) {
	tuning = t
}

// GetTuning returns the process-wide tuning.
func GetTuning() Tuning {
	return tuning
}

// Unwind pays line out: counter-clockwise under the default wiring.
func Unwind(meters, speedPercent float32) MotionOutcome {
	return Move(moveRequest(false, meters, speedPercent))
}

// Wind takes line up: clockwise under the default wiring.
func Wind(meters, speedPercent float32) MotionOutcome {
	return Move(moveRequest(true, meters, speedPercent))
}

// HoldMS holds the drum stationary for durationMS, nudging in the given
// direction when the load slips. Always returns OutcomeSuccess once the
// duration elapses.
func HoldMS(durationMS uint32, nudgeClockwise bool) MotionOutcome {
	return Hold(HoldRequest{
		DurationMS:      durationMS,
		NudgeClockwise:  nudgeClockwise,
		NudgePercent:    tuning.NudgePercent,
		DeadbandPulses:  tuning.DeadbandPulses,
		NudgePulseCount: tuning.NudgePulseCount,
		MinNudgeGapMS:   tuning.MinNudgeGapMS,
		NudgeRampRate:   tuning.NudgeRampRate,
		BrakeRate:       tuning.BrakeRate,
		SettleMS:        tuning.NudgeSettleMS,
		PollMS:          tuning.HoldPollMS,
	})
}

func moveRequest(clockwise bool, meters, speedPercent float32) MoveRequest {
	return MoveRequest{
		Clockwise:      clockwise,
		DistanceM:      meters,
		CruisePercent:  speedPercent,
		TimeoutMS:      tuning.TimeoutMS,
		PaddingM:       tuning.PaddingM,
		PaddingPercent: tuning.PaddingPercent,
		StallWindowUS:  tuning.StallWindowUS,
		RampRate:       tuning.CruiseRampRate,
		BrakeRate:      tuning.BrakeRate,
		SettleMS:       tuning.SettleMS,
	}
}

// brakeToStop ramps the drive to zero at the brake rate, then keeps
// servicing the commander through the settle window so the output write
// cadence never freezes while the mechanics come to rest.
func brakeToStop(rate float32, settleMS uint32) {
	clock := MustClock()

	speed.Rearm(clock.NowUS())
	speed.SetTarget(0, rate)
	for !speed.AtTarget(brakeEpsilon) {
		speed.Update(clock.NowUS())
		runtime.Gosched()
	}

	settleEndUS := clock.NowUS() + uint64(settleMS)*1000
	for clock.NowUS() < settleEndUS {
		speed.Update(clock.NowUS())
		runtime.Gosched()
	}
}
