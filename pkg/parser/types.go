// Package parser provides log file reading and line parsing for LogLens.
package parser

import "time"

// Record is a single successfully parsed log line.
// A Record is never partially populated: Parse either fills every field or
// rejects the line.
type Record struct {
	// Timestamp is the UTC instant from the line's date-time prefix.
	Timestamp time.Time `json:"timestamp"`

	// Level is the token following the timestamp, stored verbatim.
	Level string `json:"level"`

	// Message is the remainder of the line after the level.
	Message string `json:"message"`

	// LineNum is the 1-based line number in the source file.
	LineNum int `json:"line_num"`
}
