//go:build minerva

package main

import (
	"rvblink/core"
)

// main is entered once after reset and never returns. Any panic ends in
// core.Halt, or in the runtime's abort loop where recover is unavailable.
//
// Instruction memory is not readable over the data bus, so nothing here may
// depend on initialised globals: the driver and delay are built at runtime.
func main() {
	core.SetGPODriver(NewMMIOGPODriver())

	blinker := core.NewBlinker(core.MustGPO(), newDelay(), core.DelayIterations)
	blinker.Run()
}
