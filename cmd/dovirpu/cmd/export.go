package cmd

import (
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

var exportCmd = &cobra.Command{
	Use:   "export <input.bin> <output.json>",
	Short: "Dump the RPUs in a sidecar as a JSON document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rpus, err := loadSidecar(args[0])
		if err != nil {
			return err
		}
		docs := make([]RPUDoc, len(rpus))
		for i, p := range rpus {
			docs[i] = rpuToDoc(p)
		}
		out, err := jsonAPI.MarshalIndent(docs, "", "  ")
		if err != nil {
			return err
		}
		return os.WriteFile(args[1], out, 0o644)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
