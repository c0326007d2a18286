// Package analyzer filters parsed log records and aggregates them by level.
package analyzer

import (
	"sort"
	"time"

	"github.com/ccollicutt/loglens/pkg/parser"
)

// LevelCounts maps a level token to the number of records carrying it.
type LevelCounts map[string]int

// LevelCount is a single level and its count.
type LevelCount struct {
	Level string `json:"level"`
	Count int    `json:"count"`
}

// Total returns the sum of all counts.
func (c LevelCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Sorted returns the counts ordered by count descending, then level
// ascending.
func (c LevelCounts) Sorted() []LevelCount {
	out := make([]LevelCount, 0, len(c))
	for level, n := range c {
		out = append(out, LevelCount{Level: level, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Level < out[j].Level
	})
	return out
}

// CountLevels tallies records by level.
func CountLevels(records []parser.Record) LevelCounts {
	counts := make(LevelCounts)
	for i := range records {
		counts[records[i].Level]++
	}
	return counts
}

// Result contains the output of a single Run.
type Result struct {
	// Entries are the records that passed the filter, in input order.
	Entries []parser.Record

	// Levels is the level distribution of Entries.
	Levels LevelCounts

	// Metadata provides context about the run.
	Metadata RunMetadata
}

// RunMetadata provides context about an analysis run.
type RunMetadata struct {
	// Criteria is the filter that was applied.
	Criteria Criteria

	// RecordsIn is the number of records offered to the filter.
	RecordsIn int

	// Threads is the worker count used for filtering.
	Threads int

	// StartTime is when filtering began.
	StartTime time.Time

	// EndTime is when aggregation completed.
	EndTime time.Time
}

// Criteria describes the filter as supplied by the caller. Nil fields
// were not set.
type Criteria struct {
	Pattern *string `json:"pattern,omitempty"`
	From    *string `json:"from,omitempty"`
	To      *string `json:"to,omitempty"`
}
