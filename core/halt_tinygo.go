//go:build tinygo

package core

import "runtime/interrupt"

// defaultHalt disables interrupts and spins. There is nothing to return to
// on bare metal, so the LED freezes in its last state.
func defaultHalt() {
	interrupt.Disable()
	for {
	}
}
