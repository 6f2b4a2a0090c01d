package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"rvblink/core"
	"rvblink/sim"
	"rvblink/soc"
)

var simOpts = struct {
	platform   string
	config     string
	firmware   string
	cycles     uint64
	toggles    int
	iterations uint32
	delay      string
	vcd        string
	faultAfter int
	verbose    bool
}{}

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Simulate the blink loop on the SoC model",
	Long: `Run the blink loop against a model of the board with a simulated core clock.
The run stops after --cycles clock cycles or --toggles GPO writes, whichever
comes first, and optionally writes the GPO trace as a VCD file.`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	f := simCmd.Flags()
	f.StringVarP(&simOpts.platform, "platform", "p", "blink", "Built-in platform name")
	f.StringVarP(&simOpts.config, "config", "c", "", "Platform YAML file, overrides --platform")
	f.StringVarP(&simOpts.firmware, "firmware", "f", "", "Raw firmware image to load into instruction memory")
	f.Uint64Var(&simOpts.cycles, "cycles", 0, "Stop after this many clock cycles (0 = no limit)")
	f.IntVar(&simOpts.toggles, "toggles", 16, "Stop after this many GPO writes (0 = no limit)")
	f.Uint32VarP(&simOpts.iterations, "iterations", "n", core.DelayIterations, "Delay iterations per LED phase")
	f.StringVar(&simOpts.delay, "delay", "cycles", "Delay primitive: cycles or spin")
	f.StringVarP(&simOpts.vcd, "vcd", "o", "", "Write the GPO trace to this VCD file")
	f.IntVar(&simOpts.faultAfter, "fault-after", 0, "Inject a fault on this GPO write (0 = never)")
	f.BoolVarP(&simOpts.verbose, "verbose", "v", false, "Log the event ring on halt")
}

func loadPlatform() (soc.Platform, error) {
	if simOpts.config != "" {
		return soc.LoadPlatform(simOpts.config)
	}
	return soc.FindPlatform(simOpts.platform)
}

func runSim(cmd *cobra.Command, args []string) error {
	p, err := loadPlatform()
	if err != nil {
		return err
	}

	model, ok := core.ParseDelayModel(simOpts.delay)
	if !ok {
		return fmt.Errorf("unknown delay primitive %q (want cycles or spin)", simOpts.delay)
	}

	cfg := sim.Config{
		Platform:   p,
		Iterations: simOpts.iterations,
		Delay:      model,
		MaxCycles:  simOpts.cycles,
		MaxToggles: simOpts.toggles,
		FaultAfter: simOpts.faultAfter,
	}

	if simOpts.firmware != "" {
		f, err := os.Open(simOpts.firmware)
		if err != nil {
			return err
		}
		cfg.Firmware, err = soc.PackFirmwareFor(p, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", simOpts.firmware, err)
		}
	}

	if simOpts.verbose {
		logger := log.New(cmd.ErrOrStderr(), "rvsim: ", log.Lmicroseconds)
		cfg.Debug = func(s string) { logger.Println(s) }
	}

	res, err := sim.Run(cfg)
	if err != nil {
		return err
	}
	sim.WriteReport(cmd.OutOrStdout(), res)

	if simOpts.vcd != "" {
		f, err := os.Create(simOpts.vcd)
		if err != nil {
			return err
		}
		if err := sim.WriteVCD(f, res); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", simOpts.vcd)
	}
	return nil
}
