//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts opens a critical section against the FG edge ISR and
// returns the previous interrupt state
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts closes the critical section
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
