package core

import "testing"

func TestFGCountsEdges(t *testing.T) {
	newHarness(t)

	for i := 0; i < 3; i++ {
		FGPulseISR()
	}
	if got := FGRead(); got != 3 {
		t.Errorf("FGRead() = %d, want 3", got)
	}
}

func TestFGResetZeroesAndReenables(t *testing.T) {
	h := newHarness(t)

	FGPulseISR()
	FGPulseISR()
	FGReset()
	if got := FGRead(); got != 0 {
		t.Errorf("FGRead() = %d immediately after reset, want 0", got)
	}
	if !h.edge.enabled {
		t.Error("edge interrupt left masked after reset")
	}
}

func TestFGResetUnderActivity(t *testing.T) {
	h := newHarness(t)
	h.rateFor = func(float32) float32 { return 200 } // slip regardless of duty

	// Let pulses accumulate through simulated time.
	for i := 0; i < 20; i++ {
		h.clock.NowUS()
	}
	if FGRead() == 0 {
		t.Fatal("expected pulses to accumulate before reset")
	}

	FGReset()
	if got := FGRead(); got != 0 {
		t.Errorf("FGRead() = %d immediately after reset, want 0", got)
	}
}

func TestFGMaskSuppressesEdges(t *testing.T) {
	h := newHarness(t)
	h.rateFor = func(float32) float32 { return 200 }

	FGReset()
	h.edge.SetEnabled(false)
	for i := 0; i < 20; i++ {
		h.clock.NowUS()
	}
	if got := FGRead(); got != 0 {
		t.Errorf("FGRead() = %d with masked interrupt, want 0", got)
	}
	h.edge.SetEnabled(true)
}
