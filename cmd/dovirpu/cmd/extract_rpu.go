package cmd

import (
	"github.com/quietvoid/dovi-tool-sub001/container/hevc"
	"github.com/quietvoid/dovi-tool-sub001/rpu"
	"github.com/quietvoid/dovi-tool-sub001/scanner"
	"github.com/spf13/cobra"
)

var extractRpuCmd = &cobra.Command{
	Use:   "extract-rpu <input.hevc> <output.bin>",
	Short: "Pull every unspec-62 RPU NAL out of an HEVC elementary stream",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		nals, err := readNALs(args[0])
		if err != nil {
			return err
		}
		if len(nals) == 0 {
			return scanner.ErrNoRpuFound
		}

		var rpus []*rpu.RPU
		for _, nal := range nals {
			if nal.Type != hevc.NalUnspec62 {
				continue
			}
			p, err := hevc.Parse(nal.Payload)
			if err != nil {
				return err
			}
			rpus = append(rpus, p)
		}
		if len(rpus) == 0 {
			return scanner.ErrNoRpuFound
		}
		return writeSidecar(args[1], rpus)
	},
}

func init() {
	rootCmd.AddCommand(extractRpuCmd)
}
