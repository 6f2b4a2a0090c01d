package core

// GPO register layout. The register is write-only from the firmware's point
// of view; bit 0 drives the LED and every other bit is written as 0.
const (
	GPOAddress uintptr = 0x2000_0000
	LEDBit     uint32  = 1 << 0
)

// ProbeAddress is data memory word 0. The firmware never stores there, so
// the spin delay loads from it purely to burn cycles.
const ProbeAddress uintptr = 0x1000_0000

// GPODriver is the abstract general-purpose output the blink loop drives.
// Platform-specific implementations handle the actual register access.
type GPODriver interface {
	// WriteGPO stores the full 32-bit word in the output register.
	// Implementations must perform exactly one unbuffered write per call,
	// in program order.
	WriteGPO(value uint32)
}

// Global singleton used by firmware entry points.
var gpoDriver GPODriver

// SetGPODriver is called by target-specific code to register its driver.
func SetGPODriver(d GPODriver) {
	gpoDriver = d
}

// MustGPO returns the configured driver or panics if missing.
func MustGPO() GPODriver {
	if gpoDriver == nil {
		panic("GPO driver not configured")
	}
	return gpoDriver
}
