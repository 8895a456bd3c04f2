// FG feedback pulse counter
// The gearmotor's FG line emits a fixed number of edges per motor revolution
// but carries no direction information: an edge only means "the shaft moved".
package core

import "sync/atomic"

// fgPulses accumulates FG edges since the last reset. Owned by the
// interrupt context; the control loop only reads and resets it.
var fgPulses uint32

// FGPulseISR records one feedback edge. Called from the FG pin interrupt
// on each rising edge; must stay minimal and never block.
func FGPulseISR() {
	atomic.AddUint32(&fgPulses, 1)
}

// FGRead returns the pulse count accumulated since the last FGReset.
func FGRead() uint32 {
	return atomic.LoadUint32(&fgPulses)
}

// FGReset zeroes the pulse counter. The FG edge interrupt is masked around
// the store so an in-flight edge cannot straddle the reset boundary; at
// most one edge of uncertainty remains (a pending edge latched while masked).
func FGReset() {
	MustEdge().SetEnabled(false)
	state := disableInterrupts()
	atomic.StoreUint32(&fgPulses, 0)
	restoreInterrupts(state)
	MustEdge().SetEnabled(true)
}
