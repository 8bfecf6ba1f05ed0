package cmd

import (
	"fmt"

	"github.com/quietvoid/dovi-tool-sub001/rpu/profile"
	"github.com/spf13/cobra"
)

var convertMode string

var convertModes = map[string]profile.ConversionMode{
	"lossless":                profile.Lossless,
	"to-mel":                  profile.ToMel,
	"to-81":                   profile.To81,
	"to-84":                   profile.To84,
	"to-81-mapping-preserved": profile.To81MappingPreserved,
}

var convertCmd = &cobra.Command{
	Use:   "convert <input.bin> <output.bin>",
	Short: "Convert every RPU in a sidecar to a different profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, ok := convertModes[convertMode]
		if !ok {
			return fmt.Errorf("dovirpu: unknown --mode %q", convertMode)
		}
		rpus, err := loadSidecar(args[0])
		if err != nil {
			return err
		}
		for i, p := range rpus {
			if err := profile.Convert(p, mode); err != nil {
				return fmt.Errorf("dovirpu: rpu %d: %w", i, err)
			}
		}
		return writeSidecar(args[1], rpus)
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertMode, "mode", "to-81",
		"conversion: lossless, to-mel, to-81, to-84, to-81-mapping-preserved")
	rootCmd.AddCommand(convertCmd)
}
