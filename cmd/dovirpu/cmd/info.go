package cmd

import (
	"fmt"

	"github.com/quietvoid/dovi-tool-sub001/rpu/profile"
	"github.com/spf13/cobra"
)

var infoSummary bool

var infoCmd = &cobra.Command{
	Use:   "info <input.bin>",
	Short: "Print a profile/level summary for each RPU in a sidecar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rpus, err := loadSidecar(args[0])
		if err != nil {
			return fmt.Errorf("%s at index 0", err)
		}
		for i, p := range rpus {
			det := profile.DetectProfile(p)
			fmt.Fprintf(cmd.OutOrStdout(), "rpu %d: profile %v, level %d", i, det, p.Header.VdrRpuLevel)
			if p.VdrDmData != nil {
				fmt.Fprintf(cmd.OutOrStdout(), ", dm %s, %d ext blocks",
					p.VdrDmData.DmData.Kind(), len(p.VdrDmData.DmData.Blocks()))
			}
			fmt.Fprintln(cmd.OutOrStdout())
			if infoSummary && p.VdrDmData != nil {
				for _, b := range p.VdrDmData.DmData.Blocks() {
					fmt.Fprintf(cmd.OutOrStdout(), "  level %d\n", b.Level())
				}
			}
		}
		return nil
	},
}

func init() {
	infoCmd.Flags().BoolVar(&infoSummary, "summary", false, "list every extension metadata block level present")
	rootCmd.AddCommand(infoCmd)
}
