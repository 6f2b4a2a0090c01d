package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rvblink/soc"
)

var packOpts = struct {
	platform string
}{}

var packCmd = &cobra.Command{
	Use:   "pack <fw.bin>",
	Short: "Pack a raw firmware image into instruction memory words",
	Long:  "Read a raw firmware binary and print it as the little-endian 32-bit words loaded into instruction memory.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := soc.FindPlatform(packOpts.platform)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		words, err := soc.PackFirmwareFor(p, f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d words (%d of %d used)\n", args[0], len(words), len(words), p.IMemWords)
		for i, w := range words {
			fmt.Fprintf(out, "%04x: %08x\n", i*4, w)
		}
		return nil
	},
}

func init() {
	packCmd.Flags().StringVarP(&packOpts.platform, "platform", "p", "blink", "Platform whose instruction memory the image must fit")
}
