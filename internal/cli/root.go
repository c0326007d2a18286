// Package cli provides the command-line interface for LogLens.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/loglens/internal/cli/commands"
	"github.com/ccollicutt/loglens/pkg/config"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "loglens",
		Short: "Summarize log levels in a log file",
		Long: `LogLens is a batch log analysis tool that reports the distribution of
log levels in a log file.

Lines are expected in the form:
  YYYY-MM-DD HH:MM:SS LEVEL message text...

Entries can be filtered by message substring and by an inclusive time range
before they are counted. Filtering runs on a configurable number of workers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String(commands.FlagLogLevel, config.DefaultLogLevel, "Diagnostic log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String(commands.FlagLogFormat, config.DefaultLogFormat, "Diagnostic log format (text|json)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
