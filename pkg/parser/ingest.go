package parser

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/ccollicutt/loglens/internal/logging"
)

// IngestOption configures Ingest.
type IngestOption func(*ingester)

// WithProgress reports per-line progress to p.
func WithProgress(p Progress) IngestOption {
	return func(in *ingester) {
		if p != nil {
			in.progress = p
		}
	}
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(logger *slog.Logger) IngestOption {
	return func(in *ingester) {
		in.logger = logging.Default(logger)
	}
}

type ingester struct {
	progress Progress
	logger   *slog.Logger
}

// Ingest reads the log file at path and returns every line that parses,
// in file order. Lines that fail to parse, are not valid UTF-8 or exceed
// the line size limit are dropped silently.
//
// The file is read twice: once to count lines for progress reporting and
// once to parse them. Failure to open or read the file is returned as an
// error and no records are produced.
func Ingest(ctx context.Context, path string, opts ...IngestOption) ([]Record, error) {
	in := &ingester{
		progress: noopProgress{},
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(in)
	}
	logger := in.logger.With("component", "ingest", "path", path)

	total, err := CountLines(ctx, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("counted lines", "lines", total)

	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	in.progress.Start(total)

	records := make([]Record, 0, total)
	lr := newLineReader(rc)
	lineNum := 0
	for lr.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNum++
		in.progress.Increment()

		if lr.TooLong() {
			continue
		}
		line := lr.Text()
		// Undecodable lines are treated like read failures and dropped.
		if !utf8.ValidString(line) {
			continue
		}
		rec, ok := Parse(line)
		if !ok {
			continue
		}
		rec.LineNum = lineNum
		records = append(records, rec)
	}
	if err := lr.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	in.progress.Finish()
	logger.Debug("ingested log file", "records", len(records))

	return records, nil
}

// CountLines returns the number of lines in the log file at path.
func CountLines(ctx context.Context, path string) (int, error) {
	rc, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	n := 0
	lr := newLineReader(rc)
	for lr.Next() {
		n++
		if n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
	}
	if err := lr.Err(); err != nil {
		return 0, fmt.Errorf("counting lines in %s: %w", path, err)
	}
	return n, nil
}
