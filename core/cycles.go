package core

import "time"

// DelayModel identifies which delay primitive a firmware image uses.
type DelayModel uint8

const (
	DelayModelCycles DelayModel = iota // asm nop loop
	DelayModelSpin                     // volatile load loop
)

// Cycle costs on Minerva for one pass of each delay loop.
// nop + addi + bne for the cycle delay; the load adds one wait state
// because the data bus acknowledges on the following cycle.
const (
	cyclesPerNopIteration  = 3
	cyclesPerLoadIteration = 4
)

// DefaultClockHz is the ECP5 board oscillator feeding the core.
const DefaultClockHz = 20_000_000

// String returns the flag spelling of the model.
func (m DelayModel) String() string {
	switch m {
	case DelayModelCycles:
		return "cycles"
	case DelayModelSpin:
		return "spin"
	default:
		return "unknown"
	}
}

// ParseDelayModel is the inverse of String.
func ParseDelayModel(s string) (DelayModel, bool) {
	switch s {
	case "cycles":
		return DelayModelCycles, true
	case "spin":
		return DelayModelSpin, true
	default:
		return 0, false
	}
}

// CyclesPerIteration returns the core clock cycles one loop pass costs.
func (m DelayModel) CyclesPerIteration() uint64 {
	if m == DelayModelSpin {
		return cyclesPerLoadIteration
	}
	return cyclesPerNopIteration
}

// Passes returns how many loop passes a delay of n runs. The spin delay runs
// one pass per iteration; the cycle delay treats n as a cycle count.
func (m DelayModel) Passes(n uint32) uint64 {
	if m == DelayModelSpin {
		return uint64(n)
	}
	return uint64(n/cyclesPerNopIteration) + 1
}

// HalfPeriodCycles returns the cycles spent in one LED phase for the given
// iteration count. The GPO store itself is not included.
func (m DelayModel) HalfPeriodCycles(iterations uint32) uint64 {
	return m.Passes(iterations) * m.CyclesPerIteration()
}

// HalfPeriod converts one LED phase to wall-clock time at clockHz.
func (m DelayModel) HalfPeriod(iterations uint32, clockHz uint64) time.Duration {
	if clockHz == 0 {
		return 0
	}
	return CyclesToDuration(m.HalfPeriodCycles(iterations), clockHz)
}

// CyclesToDuration converts core clock cycles to wall-clock time.
func CyclesToDuration(cycles, clockHz uint64) time.Duration {
	secs := cycles / clockHz
	rem := cycles % clockHz
	return time.Duration(secs)*time.Second + time.Duration(rem*uint64(time.Second)/clockHz)
}
