package cmd

import (
	"github.com/quietvoid/dovi-tool-sub001/container/hevc"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <input.hevc> <output.hevc>",
	Short: "Strip every unspec-62 RPU NAL from an HEVC elementary stream",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		nals, err := readNALs(args[0])
		if err != nil {
			return err
		}
		var kept [][]byte
		for _, nal := range nals {
			if nal.Type == hevc.NalUnspec62 {
				continue
			}
			kept = append(kept, nal.Payload)
		}
		return writeNALs(args[1], kept)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
