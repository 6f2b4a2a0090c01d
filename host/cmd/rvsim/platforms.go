package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rvblink/soc"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List the built-in board platforms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, p := range soc.Platforms() {
			fmt.Fprintf(out, "%-8s %s-%s speed %s, %d Hz on %s\n",
				p.Name, p.Device, p.Package, p.Speed, p.Clock.Hz, p.Clock.Pin)
			fmt.Fprintf(out, "         imem %d words, dmem %d words, gpo %#08x\n",
				p.IMemWords, p.DMemWords, p.GPOBase)
			for _, r := range p.Resources {
				fmt.Fprintf(out, "         %-4s %-3s %s (%s)\n", r.Name, r.Dir, strings.Join(r.Pins, " "), r.IOType)
			}
			if p.Description != "" {
				fmt.Fprintf(out, "         %s\n", p.Description)
			}
		}
		return nil
	},
}
