package feed

import (
	"fmt"
	"regexp"
	"strings"
)

// TimetableTimezone is the fixed zone every event time is normalized to
// before events are handed to the assembler.
// Don't think this is going to change any time soon.
const TimetableTimezone = "Europe/London"

// summaryPattern is the grammar for feed summaries:
//
//	<part><paper>/<series name>[<term week>]<type> <staff name>(<location>)
//
// e.g. "1CW/Example Lecture[3]L Dr Smith (LR1)". The term week is not
// retained.
var summaryPattern = regexp.MustCompile(`^(\d)([A-Z0-9]+)/(.+)\[(\d+)\]([A-Z+]+) (.*)\((.*)\)$`)

// ErrorKind distinguishes the ways a raw record can fail to parse.
type ErrorKind string

const (
	// KindMissingProperty means a required iCalendar property was absent.
	KindMissingProperty ErrorKind = "missing-property"
	// KindMalformedSummary means the SUMMARY text did not match the feed grammar.
	KindMalformedSummary ErrorKind = "malformed-summary"
)

// ParseError reports a single raw record that could not be turned into an Event.
type ParseError struct {
	Kind    ErrorKind
	Prop    string // the missing property, for KindMissingProperty
	Summary string // the offending text, for KindMalformedSummary
	UID     string // source record UID, when known
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindMalformedSummary:
		return fmt.Sprintf("summary did not match the expected format: %q", e.Summary)
	default:
		return fmt.Sprintf("event has no %s", e.Prop)
	}
}

// summaryFields holds the structured values extracted from one summary.
type summaryFields struct {
	part      string
	paper     string
	name      string
	eventType string
	staffName string
	location  string
}

// parseSummary extracts the structured fields from a feed summary, or
// fails with a ParseError if the text does not match the grammar.
func parseSummary(summary string) (summaryFields, error) {
	m := summaryPattern.FindStringSubmatch(summary)
	if m == nil {
		return summaryFields{}, &ParseError{Kind: KindMalformedSummary, Summary: summary}
	}
	return summaryFields{
		part:      m[1],
		paper:     m[2],
		name:      m[3],
		eventType: m[5], // m[4] is the term week, which the output has no use for
		staffName: strings.TrimSpace(m[6]),
		location:  m[7],
	}, nil
}
