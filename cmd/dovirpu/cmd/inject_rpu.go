package cmd

import "github.com/spf13/cobra"

var injectRpuCmd = &cobra.Command{
	Use:   "inject-rpu <input.hevc> <rpu.bin> <output.hevc>",
	Short: "Re-insert RPU NALs from a sidecar into an HEVC elementary stream",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		nals, err := readNALs(args[0])
		if err != nil {
			return err
		}
		rpus, err := loadSidecar(args[1])
		if err != nil {
			return err
		}
		merged, err := injectRPUs(nals, rpus)
		if err != nil {
			return err
		}
		return writeNALs(args[2], merged)
	},
}

func init() {
	rootCmd.AddCommand(injectRpuCmd)
}
