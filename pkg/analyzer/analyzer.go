package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ccollicutt/loglens/internal/logging"
	"github.com/ccollicutt/loglens/pkg/parser"
)

// DefaultThreads is the worker count used when none is configured.
const DefaultThreads = 4

// chunksPerWorker controls how finely records are split across workers.
const chunksPerWorker = 4

// Analyzer filters records and aggregates them by level.
type Analyzer struct {
	criteria Criteria
	pred     predicate
	threads  int
	logger   *slog.Logger
}

// AnalyzerOption configures analyzer behavior.
type AnalyzerOption func(*Analyzer)

// WithPattern keeps only records whose message contains pattern
// (case-sensitive substring match).
func WithPattern(pattern string) AnalyzerOption {
	return func(a *Analyzer) {
		a.criteria.Pattern = &pattern
	}
}

// WithFrom keeps only records at or after from (YYYY-MM-DD HH:MM:SS).
// A value that does not parse rejects every record.
func WithFrom(from string) AnalyzerOption {
	return func(a *Analyzer) {
		a.criteria.From = &from
	}
}

// WithTo keeps only records at or before to (YYYY-MM-DD HH:MM:SS).
// A value that does not parse rejects every record.
func WithTo(to string) AnalyzerOption {
	return func(a *Analyzer) {
		a.criteria.To = &to
	}
}

// WithCriteria replaces all filter criteria at once.
func WithCriteria(c Criteria) AnalyzerOption {
	return func(a *Analyzer) {
		a.criteria = c
	}
}

// WithThreads sets the number of filter workers. Values below 1 are ignored.
func WithThreads(n int) AnalyzerOption {
	return func(a *Analyzer) {
		if n > 0 {
			a.threads = n
		}
	}
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(logger *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = logging.Default(logger)
	}
}

// NewAnalyzer creates an analyzer. Time bounds are parsed once here.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		threads: DefaultThreads,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.pred = newPredicate(a.criteria)
	a.logger = a.logger.With("component", "analyzer")
	return a
}

// Criteria returns the filter criteria the analyzer was built with.
func (a *Analyzer) Criteria() Criteria {
	return a.criteria
}

// Match reports whether a single record passes the filter.
func (a *Analyzer) Match(rec *parser.Record) bool {
	return a.pred.Match(rec)
}

// Filter returns the records that pass the filter, preserving their
// relative order.
//
// Records are split into contiguous chunks evaluated by a worker pool of
// at most a.threads goroutines. The pool lives only for this call. Each
// chunk collects survivors into its own slice and the slices are joined
// in chunk order once every worker is done.
func (a *Analyzer) Filter(ctx context.Context, records []parser.Record) ([]parser.Record, error) {
	if len(records) == 0 {
		return []parser.Record{}, nil
	}

	size := chunkSize(len(records), a.threads)
	partials := make([][]parser.Record, (len(records)+size-1)/size)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.threads)

	for i := range partials {
		i := i
		start := i * size
		end := min(start+size, len(records))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var kept []parser.Record
			for j := start; j < end; j++ {
				if a.pred.Match(&records[j]) {
					kept = append(kept, records[j])
				}
			}
			partials[i] = kept
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("filtering records: %w", err)
	}

	total := 0
	for _, p := range partials {
		total += len(p)
	}
	out := make([]parser.Record, 0, total)
	for _, p := range partials {
		out = append(out, p...)
	}
	return out, nil
}

// Run filters records and tallies the survivors by level.
func (a *Analyzer) Run(ctx context.Context, records []parser.Record) (*Result, error) {
	result := &Result{
		Metadata: RunMetadata{
			Criteria:  a.criteria,
			RecordsIn: len(records),
			Threads:   a.threads,
			StartTime: time.Now(),
		},
	}

	a.logger.Debug("filtering records", "records", len(records), "threads", a.threads)

	entries, err := a.Filter(ctx, records)
	if err != nil {
		return nil, err
	}

	result.Entries = entries
	result.Levels = CountLevels(entries)
	result.Metadata.EndTime = time.Now()

	a.logger.Debug("filter complete", "kept", len(entries), "levels", len(result.Levels))

	return result, nil
}

// chunkSize splits n records into roughly chunksPerWorker chunks per worker.
func chunkSize(n, threads int) int {
	chunks := threads * chunksPerWorker
	size := (n + chunks - 1) / chunks
	if size < 1 {
		size = 1
	}
	return size
}
