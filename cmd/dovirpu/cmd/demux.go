package cmd

import (
	"github.com/quietvoid/dovi-tool-sub001/container/hevc"
	"github.com/quietvoid/dovi-tool-sub001/rpu"
	"github.com/quietvoid/dovi-tool-sub001/scanner"
	"github.com/spf13/cobra"
)

var demuxCmd = &cobra.Command{
	Use:   "demux <input.hevc> <output.hevc> <output-rpu.bin>",
	Short: "Split an HEVC elementary stream into a base stream and an RPU sidecar",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		nals, err := readNALs(args[0])
		if err != nil {
			return err
		}

		var kept [][]byte
		var rpus []*rpu.RPU
		for _, nal := range nals {
			if nal.Type != hevc.NalUnspec62 {
				kept = append(kept, nal.Payload)
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

		if err := writeNALs(args[1], kept); err != nil {
			return err
		}
		return writeSidecar(args[2], rpus)
	},
}

func init() {
	rootCmd.AddCommand(demuxCmd)
}
