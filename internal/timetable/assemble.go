package timetable

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"engtt/internal/models"
)

// ErrNoEvents is returned when Assemble is called with no events left
// after filtering.
var ErrNoEvents = errors.New("no events to assemble")

// IntegrityError reports an event whose start and end fall on different
// calendar days, which the output format cannot represent.
type IntegrityError struct {
	UID   string
	Start time.Time
	End   time.Time
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("event %s starts on %s but ends on %s: events must start and finish on the same day",
		e.UID, e.Start.Format(dateLayout), e.End.Format(dateLayout))
}

// Assemble sorts events by (part, paper, name, start) and groups them
// into the part → paper → series tree. The result is independent of the
// input order: the internal sort makes equal grouping keys contiguous,
// which the consecutive-run grouping below relies on.
func Assemble(tripos string, events []models.Event) (*Timetable, error) {
	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	sorted := make([]models.Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	tt := &Timetable{}
	for _, partEvents := range groupBy(sorted, func(e models.Event) string { return e.Part }) {
		for _, paperEvents := range groupBy(partEvents, func(e models.Event) string { return e.Paper }) {
			module, err := assembleModule(tripos, paperEvents)
			if err != nil {
				return nil, err
			}
			tt.Modules = append(tt.Modules, module)
		}
	}
	return tt, nil
}

func less(a, b models.Event) bool {
	if a.Part != b.Part {
		return a.Part < b.Part
	}
	if a.Paper != b.Paper {
		return a.Paper < b.Paper
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Start.Before(b.Start)
}

// groupBy splits events into consecutive runs sharing the same key.
// Events must already be sorted so that equal keys are contiguous.
func groupBy(events []models.Event, key func(models.Event) string) [][]models.Event {
	var groups [][]models.Event
	start := 0
	for i := 1; i <= len(events); i++ {
		if i == len(events) || key(events[i]) != key(events[start]) {
			groups = append(groups, events[start:i])
			start = i
		}
	}
	return groups
}

// assembleModule builds one Module for a (part, paper) run of events,
// with one Series child per consecutive series-name run.
func assembleModule(tripos string, events []models.Event) (*Module, error) {
	part, paper := events[0].Part, events[0].Paper
	module := &Module{
		Path: Path{Tripos: tripos, Part: part},
		Name: paper,
	}
	for _, seriesEvents := range groupBy(events, func(e models.Event) string { return e.Name }) {
		series, err := assembleSeries(tripos, part, paper, seriesEvents)
		if err != nil {
			return nil, err
		}
		module.Series = append(module.Series, series)
	}
	return module, nil
}

func assembleSeries(tripos, part, paper string, events []models.Event) (*Series, error) {
	name := events[0].Name
	series := &Series{
		UniqueID: ExternalID(tripos, part, paper, name),
		Name:     name,
	}
	for _, ev := range events {
		entry, err := newEventEntry(ev)
		if err != nil {
			return nil, err
		}
		series.Events = append(series.Events, entry)
	}
	return series, nil
}

func newEventEntry(ev models.Event) (*EventEntry, error) {
	date := ev.Start.Format(dateLayout)
	if end := ev.End.Format(dateLayout); end != date {
		return nil, &IntegrityError{UID: ev.UID, Start: ev.Start, End: ev.End}
	}
	return &EventEntry{
		UniqueID: ev.UID,
		Name:     ev.Name,
		Location: ev.Location,
		Lecturer: ev.StaffName,
		Date:     date,
		Start:    ev.Start.Format(timeLayout),
		End:      ev.End.Format(timeLayout),
		Type:     ev.EventType,
	}, nil
}
