package sim

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// timescale picks the coarsest VCD unit that represents one clock period
// exactly, returning the unit and the number of units per cycle.
func timescale(clockHz uint64) (string, uint64) {
	if clockHz == 0 {
		return "1 ns", 1
	}
	if 1_000_000_000%clockHz == 0 {
		return "1 ns", 1_000_000_000 / clockHz
	}
	return "1 ps", 1_000_000_000_000 / clockHz
}

// WriteVCD dumps the GPO trace as a value change dump for a waveform viewer.
// Signals are the 32-bit latch and the LED pin, sampled at each write.
func WriteVCD(w io.Writer, r *Result) error {
	bw := bufio.NewWriter(w)
	unit, perCycle := timescale(r.ClockHz)

	fmt.Fprintf(bw, "$version rvblink sim $end\n")
	fmt.Fprintf(bw, "$comment platform %s delay %s iterations %d $end\n", r.Platform, r.Delay, r.Iterations)
	fmt.Fprintf(bw, "$timescale %s $end\n", unit)
	fmt.Fprintf(bw, "$scope module top $end\n")
	fmt.Fprintf(bw, "$var wire 32 ! gpo [31:0] $end\n")
	fmt.Fprintf(bw, "$var wire 1 \" led $end\n")
	fmt.Fprintf(bw, "$upscope $end\n")
	fmt.Fprintf(bw, "$enddefinitions $end\n")
	fmt.Fprintf(bw, "#0\n$dumpvars\nb0 !\n0\"\n$end\n")

	for _, wr := range r.Writes {
		fmt.Fprintf(bw, "#%d\n", wr.Cycle*perCycle)
		fmt.Fprintf(bw, "b%s !\n", strconv.FormatUint(uint64(wr.Value), 2))
		fmt.Fprintf(bw, "%d\"\n", wr.Value&1)
	}
	fmt.Fprintf(bw, "#%d\n", r.Cycles*perCycle)

	return bw.Flush()
}
