package feed

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseSummary(t *testing.T) {
	tests := []struct {
		summary string
		want    summaryFields
	}{
		{
			summary: "1CW/Example Lecture[3]L Dr Smith (LR1)",
			want: summaryFields{
				part:      "1",
				paper:     "CW",
				name:      "Example Lecture",
				eventType: "L",
				staffName: "Dr Smith",
				location:  "LR1",
			},
		},
		{
			// Multi-character type codes and '+' are allowed.
			summary: "2P1/Structures[10]L+C Prof Jones (LT0)",
			want: summaryFields{
				part:      "2",
				paper:     "P1",
				name:      "Structures",
				eventType: "L+C",
				staffName: "Prof Jones",
				location:  "LT0",
			},
		},
		{
			// Alphanumeric paper code, multi-digit week.
			summary: "4M4A2/Advanced Topics[12]C Dr A N Other (Room 3.14)",
			want: summaryFields{
				part:      "4",
				paper:     "M4A2",
				name:      "Advanced Topics",
				eventType: "C",
				staffName: "Dr A N Other",
				location:  "Room 3.14",
			},
		},
		{
			// Staff name directly against the location parenthesis.
			summary: "3CW/Coursework[1]C Dr Smith(LR1)",
			want: summaryFields{
				part:      "3",
				paper:     "CW",
				name:      "Coursework",
				eventType: "C",
				staffName: "Dr Smith",
				location:  "LR1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			got, err := parseSummary(tt.summary)
			if err != nil {
				t.Fatalf("parseSummary(%q) returned error: %v", tt.summary, err)
			}
			if got != tt.want {
				t.Errorf("parseSummary(%q) = %+v, want %+v", tt.summary, got, tt.want)
			}
		})
	}
}

func TestParseSummaryMalformed(t *testing.T) {
	summaries := []string{
		"",
		"Staff meeting",
		"CW/Example Lecture[3]L Dr Smith (LR1)",   // no part digit
		"1cw/Example Lecture[3]L Dr Smith (LR1)",  // lowercase paper code
		"1CW Example Lecture[3]L Dr Smith (LR1)",  // missing slash
		"1CW/Example Lecture L Dr Smith (LR1)",    // missing week brackets
		"1CW/Example Lecture[x]L Dr Smith (LR1)",  // non-numeric week
		"1CW/Example Lecture[3]l Dr Smith (LR1)",  // lowercase type code
		"1CW/Example Lecture[3]L Dr Smith",        // missing location
		"1CW/Example Lecture[3]L Dr Smith (LR1) x", // trailing text
	}

	for _, summary := range summaries {
		t.Run(summary, func(t *testing.T) {
			_, err := parseSummary(summary)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("parseSummary(%q) error = %v, want ParseError", summary, err)
			}
			if perr.Kind != KindMalformedSummary {
				t.Errorf("ParseError kind = %q, want %q", perr.Kind, KindMalformedSummary)
			}
			if perr.Summary != summary {
				t.Errorf("ParseError summary = %q, want the offending text %q", perr.Summary, summary)
			}
		})
	}
}

// A summary rendered from parsed fields must parse back to the same fields.
func TestParseSummaryRoundTrip(t *testing.T) {
	fields := []summaryFields{
		{"1", "CW", "Example Lecture", "L", "Dr Smith", "LR1"},
		{"2", "P2", "Structures", "C", "Prof Jones", "LT0"},
		{"3", "M1", "Maths [with examples]", "L+", "Dr Who", "CUED"},
	}

	for _, want := range fields {
		rendered := fmt.Sprintf("%s%s/%s[3]%s %s (%s)",
			want.part, want.paper, want.name, want.eventType, want.staffName, want.location)
		got, err := parseSummary(rendered)
		if err != nil {
			t.Fatalf("parseSummary(%q) returned error: %v", rendered, err)
		}
		if got != want {
			t.Errorf("parseSummary(%q) = %+v, want %+v", rendered, got, want)
		}
	}
}
