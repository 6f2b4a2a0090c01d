package core

import "testing"

func TestSpinIssuesOneLoadPerIteration(t *testing.T) {
	for _, n := range []uint32{0, 1, 7, 1000} {
		loads := uint32(0)
		Spin(func() uint32 { loads++; return 0 })(n)
		if loads != n {
			t.Errorf("Spin(%d) issued %d loads", n, loads)
		}
	}
}

func TestCyclesStepCount(t *testing.T) {
	testCases := []struct {
		cycles uint32
		steps  uint64
	}{
		{0, 1},
		{2, 1},
		{3, 2},
		{DelayIterations, uint64(DelayIterations/cyclesPerNopIteration) + 1},
	}

	for _, tc := range testCases {
		steps := uint64(0)
		Cycles(func() { steps++ })(tc.cycles)
		if steps != tc.steps {
			t.Errorf("Cycles(%d) ran %d steps, want %d", tc.cycles, steps, tc.steps)
		}
		if got := DelayModelCycles.Passes(tc.cycles); got != steps {
			t.Errorf("Passes(%d) = %d, delay ran %d", tc.cycles, got, steps)
		}
	}
}

func TestDelayMonotonic(t *testing.T) {
	counts := []uint32{0, 1, 2, 3, 10, 999, 1000, 50_000}

	measure := func(d func(step func()) DelayFunc, n uint32) uint64 {
		work := uint64(0)
		d(func() { work++ })(n)
		return work
	}
	spin := func(step func()) DelayFunc {
		return Spin(func() uint32 { step(); return 0 })
	}

	for name, d := range map[string]func(func()) DelayFunc{"spin": spin, "cycles": Cycles} {
		prev := uint64(0)
		for _, n := range counts {
			w := measure(d, n)
			if w < prev {
				t.Errorf("%s: delay(%d) did %d units, less than smaller count's %d", name, n, w, prev)
			}
			prev = w
		}
	}
}
