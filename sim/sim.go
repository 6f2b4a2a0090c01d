// Package sim runs the blink loop against the SoC model with a simulated
// core clock, the host-side counterpart of the gateware testbench.
package sim

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/stat"

	"rvblink/core"
	"rvblink/soc"
)

var (
	ErrBudget         = errors.New("no cycle or toggle budget given")
	ErrNotAlternating = errors.New("GPO writes do not alternate")
)

// DefaultCycles matches the gateware testbench run length.
const DefaultCycles = 1000

// Config controls one simulation run.
type Config struct {
	Platform   soc.Platform
	Firmware   []uint32 // instruction memory image, may be empty
	Iterations uint32
	Delay      core.DelayModel

	MaxCycles  uint64 // stop when the clock reaches this, 0 = no limit
	MaxToggles int    // stop after this many GPO writes, 0 = no limit
	FaultAfter int    // raise a fault on this GPO write (1-based), 0 = never

	Debug core.DebugWriter
}

// Result is what one run observed on the GPO pin.
type Result struct {
	Platform    string
	ClockHz     uint64
	Delay       core.DelayModel
	Iterations  uint32
	ImageWords  int
	Cycles      uint64
	Writes      []soc.GPOWrite
	Faulted     bool
	FaultReason string

	// Phase durations in seconds between consecutive writes.
	HalfPeriods []float64
	Mean        float64
	StdDev      float64
}

// runMu serialises runs: the halt handler and event ring in core are
// process-wide.
var runMu sync.Mutex

// Run simulates the blink loop until a budget is exhausted or a fault halts
// it. The loop itself never returns; the simulator ends its goroutine from
// inside the delay or the halt handler.
func Run(cfg Config) (*Result, error) {
	if cfg.MaxCycles == 0 && cfg.MaxToggles == 0 {
		return nil, ErrBudget
	}
	if cfg.Iterations == 0 {
		cfg.Iterations = core.DelayIterations
	}

	bus, err := soc.NewBus(cfg.Platform, cfg.Firmware)
	if err != nil {
		return nil, err
	}

	runMu.Lock()
	defer runMu.Unlock()

	core.ClearEventRing()
	core.SetDebugWriter(cfg.Debug)
	core.SetHaltHandler(runtime.Goexit)
	defer core.SetHaltHandler(nil)
	defer core.SetDebugWriter(nil)

	var gpo core.GPODriver = bus
	if cfg.FaultAfter > 0 {
		gpo = &faultingGPO{bus: bus, after: cfg.FaultAfter}
	}

	var blinker *core.Blinker

	// The clock never runs past MaxCycles: a phase that would cross the
	// budget is cut at it and the loop ends there.
	atBudget := func() {
		if cfg.MaxCycles > 0 && bus.Cycle() >= cfg.MaxCycles {
			runtime.Goexit()
		}
	}
	advance := func(cycles uint64) {
		if cfg.MaxCycles > 0 {
			if left := cfg.MaxCycles - bus.Cycle(); cycles >= left {
				bus.Advance(left)
				runtime.Goexit()
			}
		}
		bus.Advance(cycles)
	}

	// Each spin pass is one real bus load plus the loop overhead.
	spin := core.Spin(func() uint32 {
		atBudget()
		v := bus.Read(soc.DataBase)
		advance(cfg.Delay.CyclesPerIteration() - 1)
		return v
	})
	delay := func(n uint32) {
		atBudget()
		switch cfg.Delay {
		case core.DelayModelSpin:
			spin(n)
		default:
			advance(cfg.Delay.HalfPeriodCycles(n))
		}
		if cfg.MaxToggles > 0 && int(blinker.Writes()) >= cfg.MaxToggles {
			runtime.Goexit()
		}
	}
	blinker = core.NewBlinker(gpo, delay, cfg.Iterations)

	done := make(chan struct{})
	go func() {
		defer close(done)
		blinker.Run()
	}()
	<-done

	res := &Result{
		Platform:   cfg.Platform.Name,
		ClockHz:    cfg.Platform.Clock.Hz,
		Delay:      cfg.Delay,
		Iterations: cfg.Iterations,
		ImageWords: len(cfg.Firmware),
		Cycles:     bus.Cycle(),
		Writes:     bus.GPOWrites(),
		Faulted:    blinker.Faulted(),
	}
	if res.Faulted {
		res.FaultReason = core.LastFault()
	}
	if err := checkAlternating(res.Writes); err != nil {
		return res, err
	}
	res.computePeriods()
	return res, nil
}

// checkAlternating verifies bit 0 goes 1,0,1,0... from the first write.
func checkAlternating(writes []soc.GPOWrite) error {
	for i, w := range writes {
		if want := uint32(1 - i%2); w.Value&core.LEDBit != want {
			return fmt.Errorf("%w: write %d at cycle %d is %#x", ErrNotAlternating, i, w.Cycle, w.Value)
		}
	}
	return nil
}

func (r *Result) computePeriods() {
	if len(r.Writes) < 2 || r.ClockHz == 0 {
		return
	}
	r.HalfPeriods = make([]float64, len(r.Writes)-1)
	for i := 1; i < len(r.Writes); i++ {
		r.HalfPeriods[i-1] = float64(r.Writes[i].Cycle-r.Writes[i-1].Cycle) / float64(r.ClockHz)
	}
	r.Mean, r.StdDev = stat.MeanStdDev(r.HalfPeriods, nil)
}

// faultingGPO forwards to the bus until the configured write, which raises
// the same kind of trap a store to a dead peripheral would.
type faultingGPO struct {
	bus   *soc.Bus
	after int
	n     int
}

func (f *faultingGPO) WriteGPO(value uint32) {
	f.n++
	if f.n == f.after {
		panic("store access fault")
	}
	f.bus.WriteGPO(value)
}
