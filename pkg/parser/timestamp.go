package parser

import (
	"fmt"
	"time"
)

// TimestampLayout is the Go time layout of the fixed-width line prefix
// (YYYY-MM-DD HH:MM:SS).
const TimestampLayout = "2006-01-02 15:04:05"

// timestampWidth is the length of a formatted TimestampLayout value.
const timestampWidth = len(TimestampLayout)

// ParseTimestamp parses a timestamp in TimestampLayout as a UTC instant.
func ParseTimestamp(s string) (time.Time, error) {
	ts, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return ts, nil
}
