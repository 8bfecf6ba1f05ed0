// Package cmd implements the dovirpu command-line tool: one thin cobra
// subcommand per operation in the RPU codec's tooling contract, each
// reading input bytes, calling into the core packages, and writing
// output, with no parsing/serialization logic of its own.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "dovirpu",
	Short:   "Dolby Vision RPU metadata codec and tooling",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if os.Getenv("DEBUG") != "" {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}
