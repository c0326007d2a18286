package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/loglens/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a LogLens configuration file without running analysis.

Checks:
  - YAML syntax
  - Thread count (must be at least 1)
  - Output and log formats
  - from/to timestamp format (warning only, an invalid bound matches nothing)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Pattern:  %s\n", optional(cfg.Pattern))
	fmt.Fprintf(w, "  From:     %s\n", optional(cfg.From))
	fmt.Fprintf(w, "  To:       %s\n", optional(cfg.To))
	fmt.Fprintf(w, "  Threads:  %d\n", cfg.Threads)
	fmt.Fprintf(w, "  Output:   %s\n", cfg.Output)
	fmt.Fprintf(w, "  Progress: %v\n", cfg.Progress)

	for _, warning := range config.BoundWarnings(cfg) {
		fmt.Fprintf(w, "\nWarning: %s\n", warning)
	}

	return nil
}

func optional(s *string) string {
	if s == nil {
		return "(not set)"
	}
	return fmt.Sprintf("%q", *s)
}
