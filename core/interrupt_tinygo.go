//go:build tinygo

package core

import "runtime/interrupt"

// intrState holds the sampled global interrupt enable state.
type intrState = interrupt.State

// disableInterrupts disables interrupts and returns the previous state
func disableInterrupts() intrState {
	return interrupt.Disable()
}

// restoreInterrupts restores the interrupt state
func restoreInterrupts(state intrState) {
	interrupt.Restore(state)
}
