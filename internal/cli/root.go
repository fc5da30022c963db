// Package cli provides the Cobra command structure for srcexcerpt.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcexcerpt/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root srcexcerpt command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "srcexcerpt",
		Short: "Extract highlighted source excerpts for diagnostics",
		Long: `srcexcerpt ingests source text and prints short excerpts around
reported positions, the way a parser's error reporter would.

Positions are given as queries: "point:L:C" highlights one character,
"range:L:C" highlights from the nearest recorded position up to and
including L:C, "record:L:C" records a position without output, and
"line:L" prints a whole line. Coordinates are 1-based.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newExcerptCommand())
	rootCmd.AddCommand(newLinesCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
