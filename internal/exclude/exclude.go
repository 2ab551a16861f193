// Package exclude drops events whose resolved field values match any of
// a configured list of exclusion rules.
package exclude

import (
	"encoding/json"
	"fmt"
	"os"

	"engtt/internal/models"
)

// Rule is a partial field-equality predicate: it matches an event when
// every named field equals the required value. A rule with no fields
// matches every event.
type Rule map[string]string

func (r Rule) matches(ev models.Event) bool {
	for field, want := range r {
		got, ok := ev.Field(field)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// Filter decides whether a fully-resolved event should be dropped.
type Filter interface {
	IsExcluded(ev models.Event) bool
}

// Excluder is a Filter backed by an ordered rule list.
type Excluder struct {
	rules []Rule
}

// New creates an Excluder over the given rules.
func New(rules []Rule) *Excluder {
	return &Excluder{rules: rules}
}

// IsExcluded reports whether any rule matches the event. Events are
// expected to have had substitutions applied already.
func (x *Excluder) IsExcluded(ev models.Event) bool {
	for _, rule := range x.rules {
		if rule.matches(ev) {
			return true
		}
	}
	return false
}

// Null is a Filter that excludes nothing.
type Null struct{}

// IsExcluded always reports false.
func (Null) IsExcluded(models.Event) bool { return false }

// FormatError reports a malformed exclusion configuration.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid exclusion config: %s: %v", e.Reason, e.Err)
	}
	return "invalid exclusion config: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

// FromJSONFile loads an Excluder from a JSON file of the form
// {"exclusions": [{field: value}, ...]}.
func FromJSONFile(name string) (*Excluder, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return FromJSON(data)
}

// FromJSON builds an Excluder from raw JSON, failing fast on documents
// that are not an object with an "exclusions" key of the right shape.
func FromJSON(data []byte) (*Excluder, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Reason: "top level value was not an object", Err: err}
	}

	raw, ok := doc["exclusions"]
	if !ok {
		return nil, &FormatError{Reason: `top level object has no "exclusions" key`}
	}

	var rules []Rule
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil, &FormatError{Reason: `"exclusions" value has the wrong shape`, Err: err}
	}
	return New(rules), nil
}
