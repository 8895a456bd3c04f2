// Hold controller: anti-slip supervision after a stop
// The FG feed has no direction information, so any pulses seen while the
// drum should be stationary are treated as adverse slip and answered with a
// fixed-size corrective nudge in the configured tow-up direction.
package core

import "runtime"

// HoldRequest describes one hold period. Consumed synchronously by Hold.
type HoldRequest struct {
	DurationMS      uint32
	NudgeClockwise  bool    // direction of corrective nudges (tow-up)
	NudgePercent    float32 // duty for a nudge
	DeadbandPulses  uint32  // slip pulses tolerated before reacting
	NudgePulseCount uint32  // fixed corrective travel, in pulses
	MinNudgeGapMS   uint32  // rate limit between corrective actions
	NudgeRampRate   float32 // fast ramp used for nudges, percent/s
	BrakeRate       float32
	SettleMS        uint32 // settle time for the brakes around nudges
	PollMS          uint32 // coarse loop cadence
}

// Hold brakes to a stop and then supervises the drum for DurationMS,
// issuing rate-limited nudges whenever slip exceeds the deadband. It always
// returns OutcomeSuccess once the duration elapses; nudges are internal
// corrections, not failures.
func Hold(req HoldRequest) MotionOutcome {
	clock := MustClock()

	brakeToStop(req.BrakeRate, req.SettleMS)
	FGReset()

	startUS := clock.NowUS()
	lastNudgeUS := startUS

	for clock.NowUS()-startUS < uint64(req.DurationMS)*1000 {
		now := clock.NowUS()
		speed.Update(now)

		// Pulses while stopped mean the drum is slipping or back-driving.
		if FGRead() > req.DeadbandPulses && now-lastNudgeUS > uint64(req.MinNudgeGapMS)*1000 {
			nudge(req)
			lastNudgeUS = clock.NowUS()
		}

		clock.SleepMS(req.PollMS)
	}

	return OutcomeSuccess
}

// nudge runs one corrective motion: a fast ramp in the tow-up direction
// until the fixed pulse budget is observed, then a brake back to rest. The
// correction is a fixed amount rather than proportional to slip because
// the feedback carries only an edge count, no magnitude or sign.
func nudge(req HoldRequest) {
	clock := MustClock()

	FGReset()
	setDirection(req.NudgeClockwise)
	speed.Rearm(clock.NowUS())
	speed.SetTarget(req.NudgePercent, req.NudgeRampRate)

	for FGRead() < req.NudgePulseCount {
		speed.Update(clock.NowUS())
		runtime.Gosched()
	}

	brakeToStop(req.BrakeRate, req.SettleMS)
	FGReset()
}
