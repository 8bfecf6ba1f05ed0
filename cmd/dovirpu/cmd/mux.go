package cmd

import "github.com/spf13/cobra"

var muxCmd = &cobra.Command{
	Use:   "mux <input.hevc> <rpu.bin> <output.hevc>",
	Short: "Combine a base HEVC elementary stream with an RPU sidecar",
	Args:  cobra.ExactArgs(3),
	RunE:  injectRpuCmd.RunE,
}

func init() {
	rootCmd.AddCommand(muxCmd)
}
