package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rvsim",
	Short: "Host tooling for the Minerva blink firmware",
	Long: `rvsim packs firmware images for the Minerva SoC and simulates the blink
loop against a model of the board, writing waveforms for a VCD viewer.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(simCmd, packCmd, platformsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
