// Package cli provides the Cobra command structure for the rex tool.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/coregx/rex/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// rootOptions are the persistent flags shared by all subcommands.
type rootOptions struct {
	debug      bool
	configPath string
	color      string
}

// NewRootCommand creates the root rex command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "rex",
		Short: "A predictable regex search and replace tool",
		Long: `rex searches lines of text with a small, self-consistent regular
expression dialect backed by a non-backtracking engine: matching cost is
bounded by pattern size times line length, so no pattern can blow up on
adversarial input.

Inputs are files, directories (searched recursively), or - for standard
input. Multiple -e patterns are combined with logical OR.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if opts.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&opts.color, "color", "",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newSearchCommand(opts))
	rootCmd.AddCommand(newReplaceCommand(opts))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
