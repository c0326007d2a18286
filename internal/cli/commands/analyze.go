package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/loglens/internal/logging"
	"github.com/ccollicutt/loglens/pkg/analyzer"
	"github.com/ccollicutt/loglens/pkg/config"
	"github.com/ccollicutt/loglens/pkg/output"
	"github.com/ccollicutt/loglens/pkg/parser"
)

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	File       string
	ConfigFile string
	Pattern    string
	From       string
	To         string
	Threads    int
	Output     string
	NoProgress bool
	Verbose    bool
	Quiet      bool
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze --file <log-file>",
		Short: "Count log levels in a log file",
		Long: `Analyze a log file and print how many entries there are per log level.

Each line must look like:
  YYYY-MM-DD HH:MM:SS LEVEL message text...

Lines that don't match are skipped. Entries can be narrowed with a
case-sensitive message substring (--pattern) and an inclusive time range
(--from/--to). A --from or --to value that is not in YYYY-MM-DD HH:MM:SS
format matches nothing.

Gzip and zstd compressed files are decompressed automatically.

Example:
  loglens analyze -f /var/log/app.log
  loglens analyze -f app.log -p timeout --from "2025-02-11 00:00:00"
  loglens analyze -f app.log.gz -t 8 -o json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Path to the log file")
	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Optional YAML config file with defaults")
	cmd.Flags().StringVarP(&opts.Pattern, "pattern", "p", "", "Only count entries whose message contains this text")
	cmd.Flags().StringVar(&opts.From, "from", "", "Start of time range (YYYY-MM-DD HH:MM:SS, inclusive)")
	cmd.Flags().StringVar(&opts.To, "to", "", "End of time range (YYYY-MM-DD HH:MM:SS, inclusive)")
	cmd.Flags().IntVarP(&opts.Threads, "threads", "t", config.DefaultThreads, "Number of filter workers")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", config.DefaultOutput, "Output format (text|json)")
	cmd.Flags().BoolVar(&opts.NoProgress, "no-progress", false, "Disable the progress bar")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show run details after the results")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Print only the total entry count")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *AnalyzeOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	cfg, err := buildConfig(ctx, cmd, opts)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger, err := logging.New(errOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	logger = logger.With("run_id", runID)

	for _, w := range config.BoundWarnings(cfg) {
		logger.Warn(w)
	}

	if err := config.ValidatePath(cfg.Path); err != nil {
		return err
	}

	records, err := parser.Ingest(ctx, cfg.Path,
		parser.WithProgress(progressFor(cfg, opts, errOut)),
		parser.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("reading log file: %w", err)
	}

	logger.Info("analysis complete", "path", cfg.Path, "records", len(records))
	if cfg.Output == config.OutputText && !opts.Quiet {
		_, _ = fmt.Fprintln(out, "Analysis complete")
	}

	a := analyzer.NewAnalyzer(
		analyzer.WithCriteria(analyzer.Criteria{Pattern: cfg.Pattern, From: cfg.From, To: cfg.To}),
		analyzer.WithThreads(cfg.Threads),
		analyzer.WithLogger(logger),
	)

	result, err := a.Run(ctx, records)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	report := output.NewReport(result, cfg.Path, runID)

	formatter, err := output.NewFormatter(cfg.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, out); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	return nil
}

// buildConfig layers defaults, the optional config file, environment
// overrides and explicitly set flags, in that order, then validates.
func buildConfig(ctx context.Context, cmd *cobra.Command, opts *AnalyzeOptions) (*config.Config, error) {
	var cfg *config.Config
	if opts.ConfigFile != "" {
		loaded, err := config.Load(ctx, opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
		cfg.ApplyEnvironmentOverrides()
	}

	cfg.Path = opts.File

	flags := cmd.Flags()
	if flags.Changed("pattern") {
		cfg.Pattern = &opts.Pattern
	}
	if flags.Changed("from") {
		cfg.From = &opts.From
	}
	if flags.Changed("to") {
		cfg.To = &opts.To
	}
	if flags.Changed("threads") {
		cfg.Threads = opts.Threads
	}
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	if opts.NoProgress {
		cfg.Progress = false
	}
	applyGlobalFlags(cmd, cfg)

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// progressFor returns a terminal progress bar when progress is enabled and
// stderr is a real file. Anything else gets no progress display.
func progressFor(cfg *config.Config, opts *AnalyzeOptions, errOut io.Writer) parser.Progress {
	if !cfg.Progress || opts.Quiet {
		return nil
	}
	f, ok := errOut.(*os.File)
	if !ok {
		return nil
	}
	return output.NewTerminalProgressBar(f)
}

// applyGlobalFlags copies root-level logging flags into cfg when set.
func applyGlobalFlags(cmd *cobra.Command, cfg *config.Config) {
	if f := cmd.Flag(FlagLogLevel); f != nil && f.Changed {
		cfg.LogLevel = f.Value.String()
	}
	if f := cmd.Flag(FlagLogFormat); f != nil && f.Changed {
		cfg.LogFormat = f.Value.String()
	}
}
