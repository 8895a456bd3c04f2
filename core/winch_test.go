package core

import "testing"

func TestUnwindDirectionActiveLow(t *testing.T) {
	h := newHarness(t)
	h.rateFor = dutyProportional(1000)

	if got := Unwind(0.2, 60); got != OutcomeSuccess {
		t.Fatalf("Unwind = %v, want success", got)
	}
	// Unwind is counter-clockwise; active-low-clockwise wiring drives high.
	if h.gpio.levels[testDirPin] != true {
		t.Error("direction line low after unwind, want high for counter-clockwise")
	}
}

func TestWindDirectionActiveLow(t *testing.T) {
	h := newHarness(t)
	h.rateFor = dutyProportional(1000)

	if got := Wind(0.2, 60); got != OutcomeSuccess {
		t.Fatalf("Wind = %v, want success", got)
	}
	if h.gpio.levels[testDirPin] != false {
		t.Error("direction line high after wind, want low for clockwise")
	}
}

func TestDirectionPolarityReversed(t *testing.T) {
	h := newHarness(t)
	h.rateFor = dutyProportional(1000)

	if err := ConfigureDrive(testPWMPin, testDirPin, ActiveHighClockwise); err != nil {
		t.Fatalf("ConfigureDrive: %v", err)
	}
	Wind(0.2, 60)
	if h.gpio.levels[testDirPin] != true {
		t.Error("direction line low after wind with reversed polarity, want high")
	}
}

func TestWindOutcomePassThrough(t *testing.T) {
	h := newHarness(t)
	h.rateFor = dutyProportional(1000)
	h.stopAfter = 10

	if got := Wind(0.6, 80); got != OutcomeStalled {
		t.Errorf("Wind with dead feedback = %v, want stalled", got)
	}
}

func TestHoldMSAlwaysSucceeds(t *testing.T) {
	h := newHarness(t)
	h.rateFor = func(dutyPercent float32) float32 {
		if dutyPercent < 1 {
			return 100
		}
		return dutyPercent * 10
	}

	if got := HoldMS(400, true); got != OutcomeSuccess {
		t.Errorf("HoldMS = %v, want success even when nudging", got)
	}
}
