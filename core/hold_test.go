package core

import "testing"

func testHoldRequest(durationMS uint32) HoldRequest {
	return HoldRequest{
		DurationMS:      durationMS,
		NudgeClockwise:  true,
		NudgePercent:    50,
		DeadbandPulses:  1,
		NudgePulseCount: 30,
		MinNudgeGapMS:   250,
		NudgeRampRate:   1250,
		BrakeRate:       250,
		SettleMS:        200,
		PollMS:          10,
	}
}

func TestHoldQuietLoadNeverNudges(t *testing.T) {
	h := newHarness(t)
	// No feedback at all: the drum is perfectly still.

	if got := Hold(testHoldRequest(500)); got != OutcomeSuccess {
		t.Fatalf("Hold = %v, want success", got)
	}
	if h.gpio.setCalls[testDirPin] != 0 {
		t.Errorf("quiet hold set direction %d times, want 0", h.gpio.setCalls[testDirPin])
	}
	if h.pwm.duty != 0 {
		t.Errorf("drive left at duty %d after hold, want 0", h.pwm.duty)
	}
}

func TestHoldSlipTriggersExactlyOneNudge(t *testing.T) {
	h := newHarness(t)
	// Slip pulses arrive whenever the drive is off; the motor responds
	// normally once a nudge powers it. Slip continues after the first
	// nudge, but the rate limit must block a second one before the hold
	// duration runs out.
	h.rateFor = func(dutyPercent float32) float32 {
		if dutyPercent < 1 {
			return 100 // back-driving load
		}
		return dutyPercent * 10
	}

	req := testHoldRequest(450)
	if got := Hold(req); got != OutcomeSuccess {
		t.Fatalf("Hold = %v, want success", got)
	}

	nudges := h.gpio.setCalls[testDirPin]
	if nudges != 1 {
		t.Fatalf("hold issued %d nudges, want exactly 1", nudges)
	}
	// The nudge direction is clockwise: active-low wiring drives low.
	if h.gpio.levels[testDirPin] != false {
		t.Error("nudge direction line high, want low for clockwise")
	}
	if h.pwm.duty != 0 {
		t.Errorf("drive left at duty %d after hold, want 0", h.pwm.duty)
	}
}

func TestHoldSlipInsideDeadbandIgnored(t *testing.T) {
	h := newHarness(t)
	// Exactly deadband pulses arrive after the hold has reset its counter;
	// the controller must not react.
	h.rateFor = func(float32) float32 {
		if h.clock.nowUS < 300_000 {
			return 0
		}
		return 100
	}
	h.stopAfter = 3

	req := testHoldRequest(500)
	req.DeadbandPulses = 3
	if got := Hold(req); got != OutcomeSuccess {
		t.Fatalf("Hold = %v, want success", got)
	}
	if h.gpio.setCalls[testDirPin] != 0 {
		t.Errorf("deadband slip caused %d nudges, want 0", h.gpio.setCalls[testDirPin])
	}
}

func TestHoldNudgeTravelsFixedPulseBudget(t *testing.T) {
	h := newHarness(t)
	h.rateFor = func(dutyPercent float32) float32 {
		if dutyPercent < 1 {
			return 100
		}
		return dutyPercent * 10
	}

	req := testHoldRequest(450)
	Hold(req)

	// Pulses emitted while the drive was powered all belong to the one
	// nudge: at least the fixed budget, and not wildly more (the budget is
	// fixed, not proportional to slip).
	if h.poweredEmitted < req.NudgePulseCount {
		t.Errorf("nudge observed %d powered pulses, want >= %d", h.poweredEmitted, req.NudgePulseCount)
	}
	if h.poweredEmitted > 3*req.NudgePulseCount {
		t.Errorf("nudge observed %d powered pulses, want a bounded correction near %d", h.poweredEmitted, req.NudgePulseCount)
	}
}
