//go:build minerva && !spin

package main

import (
	"device/riscv"

	"rvblink/core"
)

// newDelay returns a delay that burns roughly n core cycles in a nop loop
func newDelay() core.DelayFunc {
	return core.Cycles(func() {
		riscv.Asm("nop")
	})
}
