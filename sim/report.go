package sim

import (
	"fmt"
	"io"
	"time"
)

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// WriteReport prints a human-readable summary of a run.
func WriteReport(w io.Writer, r *Result) {
	fmt.Fprintf(w, "platform:    %s (%d Hz)\n", r.Platform, r.ClockHz)
	fmt.Fprintf(w, "delay:       %s, %d iterations\n", r.Delay, r.Iterations)
	if r.ImageWords > 0 {
		fmt.Fprintf(w, "firmware:    %d words\n", r.ImageWords)
	}
	fmt.Fprintf(w, "cycles:      %d (%v)\n", r.Cycles, seconds(float64(r.Cycles)/float64(r.ClockHz)))
	fmt.Fprintf(w, "gpo writes:  %d\n", len(r.Writes))

	for i, wr := range r.Writes {
		if i == 8 {
			fmt.Fprintf(w, "  ... %d more\n", len(r.Writes)-i)
			break
		}
		state := "off"
		if wr.Value&1 != 0 {
			state = "on"
		}
		fmt.Fprintf(w, "  cycle %-12d led %s\n", wr.Cycle, state)
	}

	if len(r.HalfPeriods) > 0 {
		fmt.Fprintf(w, "half period: mean %v, stddev %v\n", seconds(r.Mean), seconds(r.StdDev))
		fmt.Fprintf(w, "period:      %v\n", seconds(2*r.Mean))
	}
	if r.Faulted {
		fmt.Fprintf(w, "FAULT:       %s, halted after %d writes\n", r.FaultReason, len(r.Writes))
	}
}
