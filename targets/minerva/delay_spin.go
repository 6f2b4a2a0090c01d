//go:build minerva && spin

package main

import (
	"runtime/volatile"
	"unsafe"

	"rvblink/core"
)

// newDelay returns a delay that spins n iterations of one volatile load each
func newDelay() core.DelayFunc {
	probe := (*volatile.Register32)(unsafe.Pointer(core.ProbeAddress))
	return core.Spin(probe.Get)
}
