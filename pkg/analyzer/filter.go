package analyzer

import (
	"strings"
	"time"

	"github.com/ccollicutt/loglens/pkg/parser"
)

// bound is a parsed time-range endpoint.
type bound struct {
	set   bool // a value was supplied
	valid bool // the value parsed
	t     time.Time
}

func newBound(s *string) bound {
	if s == nil {
		return bound{}
	}
	t, err := parser.ParseTimestamp(*s)
	if err != nil {
		return bound{set: true}
	}
	return bound{set: true, valid: true, t: t}
}

// predicate is the combined pattern and time-range test.
// It holds no mutable state and is safe for concurrent use.
type predicate struct {
	pattern    string
	hasPattern bool
	from, to   bound
}

func newPredicate(c Criteria) predicate {
	p := predicate{
		from: newBound(c.From),
		to:   newBound(c.To),
	}
	if c.Pattern != nil {
		p.pattern = *c.Pattern
		p.hasPattern = true
	}
	return p
}

// Match reports whether rec passes the filter.
func (p predicate) Match(rec *parser.Record) bool {
	if p.hasPattern && !strings.Contains(rec.Message, p.pattern) {
		return false
	}
	return p.inRange(rec.Timestamp)
}

// inRange applies the time bounds. A supplied bound that does not parse
// rejects every record, even when the other bound is absent.
func (p predicate) inRange(ts time.Time) bool {
	switch {
	case p.from.set && p.to.set:
		if !p.from.valid || !p.to.valid {
			return false
		}
		return !ts.Before(p.from.t) && !ts.After(p.to.t)
	case p.from.set:
		return p.from.valid && !ts.Before(p.from.t)
	case p.to.set:
		return p.to.valid && !ts.After(p.to.t)
	default:
		return true
	}
}
