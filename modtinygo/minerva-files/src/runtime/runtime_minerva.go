//go:build minerva

// Board support for the Minerva soft core on the ECP5 blink board.
// Copy into $TINYGOROOT/src/runtime before building with
// targets/minerva.json.

package runtime

import (
	"device/riscv"
	"unsafe"
)

type timeUnit int64

// The board has no timer peripheral. Time only advances when the runtime
// itself sleeps, which the blink firmware never does.
var tickCount timeUnit

//go:extern handleInterruptASM
var handleInterruptASM [0]uintptr

//export main
func main() {
	// Every trap goes through handleInterrupt so a fault parks the core
	// instead of jumping to whatever mtvec held at reset.
	riscv.MTVEC.Set(uintptr(unsafe.Pointer(&handleInterruptASM)))

	initBSS()
	run()
	exit(0)
}

// initBSS zeroes .bss. There is no .data copy: instruction memory sits on
// the instruction bus only, so data-bus loads from it return data memory.
// Firmware for this board must keep package-level variables zero valued.
func initBSS() {
	ptr := unsafe.Pointer(&_sbss)
	for ptr != unsafe.Pointer(&_ebss) {
		*(*uint32)(ptr) = 0
		ptr = unsafe.Add(ptr, 4)
	}
}

//go:extern _sbss
var _sbss [0]byte

//go:extern _ebss
var _ebss [0]byte

//export handleInterrupt
func handleInterrupt() {
	// Interrupts are never enabled, so anything arriving here is an
	// exception: illegal instruction, misaligned or faulting access.
	abort()
}

// abort is called by panic() and by the trap handler. The LED keeps the
// last value written to the GPO.
func abort() {
	riscv.MSTATUS.ClearBits(riscv.MSTATUS_MIE)
	for {
		riscv.Asm("nop")
	}
}

func exit(code int) {
	abort()
}

// No output channel on this board.
func putchar(c byte) {}

func getchar() byte { return 0 }

func buffered() int { return 0 }

func ticks() timeUnit {
	return tickCount
}

func sleepTicks(d timeUnit) {
	for i := timeUnit(0); i < d; i++ {
		riscv.Asm("nop")
	}
	tickCount += d
}

// One tick per core cycle at 20 MHz.
func ticksToNanoseconds(t timeUnit) int64 {
	return int64(t) * 50
}

func nanosecondsToTicks(ns int64) timeUnit {
	return timeUnit(ns / 50)
}
