package parser

import "strings"

// Parse converts one log line into a Record.
//
// The expected grammar is:
//
//	YYYY-MM-DD HH:MM:SS <LEVEL> <MESSAGE...>
//
// The timestamp is the fixed 19 character prefix, LEVEL is the next
// space-delimited token and MESSAGE is everything after the single space
// that follows LEVEL. Lines that don't match are rejected with ok == false;
// malformed input is never an error.
func Parse(line string) (rec Record, ok bool) {
	if len(line) <= timestampWidth || line[timestampWidth] != ' ' {
		return Record{}, false
	}

	ts, err := ParseTimestamp(line[:timestampWidth])
	if err != nil {
		return Record{}, false
	}

	rest := line[timestampWidth+1:]
	level, message, found := strings.Cut(rest, " ")
	if !found || level == "" {
		return Record{}, false
	}

	return Record{
		Timestamp: ts,
		Level:     level,
		Message:   message,
	}, true
}
