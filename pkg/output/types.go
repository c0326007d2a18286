// Package output provides formatting and progress display for analysis results.
package output

import (
	"time"

	"github.com/ccollicutt/loglens/pkg/analyzer"
)

// Report is the complete analysis output.
type Report struct {
	// Summary holds the filtered entry count and level distribution.
	Summary Summary `json:"summary"`

	// Metadata provides context about the analysis.
	Metadata Metadata `json:"metadata"`
}

// Summary holds the filtered entry count and level distribution.
type Summary struct {
	// TotalEntries is the number of records that passed the filter.
	TotalEntries int `json:"total_entries"`

	// Levels is the per-level count, most frequent first.
	Levels []analyzer.LevelCount `json:"levels"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// Source is the analyzed log file.
	Source string `json:"source"`

	// RunID identifies this invocation in logs and reports.
	RunID string `json:"run_id,omitempty"`

	// Criteria is the filter that was applied.
	Criteria analyzer.Criteria `json:"criteria"`

	// Threads is the filter worker count.
	Threads int `json:"threads"`

	// AnalyzedAt is when the analysis completed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Duration is how long filtering and aggregation took.
	Duration time.Duration `json:"duration"`
}

// NewReport creates a Report from analysis results.
func NewReport(result *analyzer.Result, source, runID string) *Report {
	return &Report{
		Summary: Summary{
			TotalEntries: len(result.Entries),
			Levels:       result.Levels.Sorted(),
		},
		Metadata: Metadata{
			Source:     source,
			RunID:      runID,
			Criteria:   result.Metadata.Criteria,
			Threads:    result.Metadata.Threads,
			AnalyzedAt: result.Metadata.EndTime,
			Duration:   result.Metadata.EndTime.Sub(result.Metadata.StartTime),
		},
	}
}
