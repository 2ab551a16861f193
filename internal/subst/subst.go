// Package subst resolves raw feed values (parts, papers, event types) to
// the display names the timetable output should use.
package subst

import (
	"encoding/json"
	"fmt"
	"os"

	"engtt/internal/models"
)

// GlobalScope is the reserved table key for substitutions that apply to
// every part.
const GlobalScope = "__all__"

// Field categories a substitution table can map.
const (
	CategoryParts      = "parts"
	CategoryPapers     = "papers"
	CategoryEventTypes = "event_types"
)

// Table maps scope (a part, or GlobalScope) to category to raw value to
// display value. Loaded once at startup and read-only thereafter.
type Table map[string]map[string]map[string]string

// Resolver resolves a raw field value to its display value.
type Resolver interface {
	Lookup(scope, category, value string) string
}

// Substitutor resolves values against a two-level table: the entry for
// the event's own part first, then the global entry, then the value
// itself.
type Substitutor struct {
	table Table
}

// New creates a Substitutor over the given table.
func New(table Table) *Substitutor {
	return &Substitutor{table: table}
}

// Lookup returns the display value for a raw value, falling back from
// the given scope to the global scope and finally to the value unchanged.
func (s *Substitutor) Lookup(scope, category, value string) string {
	if categories, ok := s.table[scope]; ok {
		if values, ok := categories[category]; ok {
			if display, ok := values[value]; ok {
				return display
			}
		}
	}
	if scope != GlobalScope {
		return s.Lookup(GlobalScope, category, value)
	}
	return value
}

// Null is a Resolver that substitutes nothing.
type Null struct{}

// Lookup returns the value unchanged.
func (Null) Lookup(scope, category, value string) string { return value }

// Apply re-derives an event with its part, paper and event type each
// passed through the resolver. The lookup scope is always the event's
// original part, even when the part itself is being substituted.
func Apply(r Resolver, ev models.Event) models.Event {
	part := ev.Part
	out := ev
	out.Part = r.Lookup(part, CategoryParts, part)
	out.Paper = r.Lookup(part, CategoryPapers, ev.Paper)
	out.EventType = r.Lookup(part, CategoryEventTypes, ev.EventType)
	return out
}

// FormatError reports a malformed substitution configuration.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid substitution config: %s: %v", e.Reason, e.Err)
	}
	return "invalid substitution config: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

// FromJSONFile loads a Substitutor from a JSON file of the form
// {"substitutions": {scope: {category: {raw: display}}}}.
func FromJSONFile(name string) (*Substitutor, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return FromJSON(data)
}

// FromJSON builds a Substitutor from raw JSON, failing fast on documents
// that are not an object with a "substitutions" key of the right shape.
func FromJSON(data []byte) (*Substitutor, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Reason: "top level value was not an object", Err: err}
	}

	raw, ok := doc["substitutions"]
	if !ok {
		return nil, &FormatError{Reason: `top level object has no "substitutions" key`}
	}

	var table Table
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, &FormatError{Reason: `"substitutions" value has the wrong shape`, Err: err}
	}
	return New(table), nil
}
