package core

// DelayIterations is the busy-wait length of each LED phase. Calibrated by
// eye against the 20 MHz Minerva clock; anything between a few hundred
// milliseconds and a few seconds per phase is acceptable.
const DelayIterations uint32 = 1_000_000

// DelayFunc consumes wall-clock time roughly proportional to iterations.
// It must not be elidable and must have no side effect other than time.
type DelayFunc func(iterations uint32)

// Spin returns a software busy-wait that issues one load per iteration.
// load is expected to be a volatile read of an otherwise unused address so
// the compiler has to keep every iteration.
func Spin(load func() uint32) DelayFunc {
	return func(iterations uint32) {
		for i := uint32(0); i < iterations; i++ {
			_ = load()
		}
	}
}

// Cycles returns a delay that consumes roughly the given number of core
// clock cycles. Each loop pass runs step (typically an inline assembly nop)
// and costs cyclesPerNopIteration cycles, so the count is divided down.
func Cycles(step func()) DelayFunc {
	return func(cycles uint32) {
		for i := cycles/cyclesPerNopIteration + 1; i > 0; i-- {
			step()
		}
	}
}
