package feed

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"engtt/internal/models"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// Parser turns decoded iCalendar events into timetable Events.
type Parser struct {
	loc     *time.Location
	lenient bool
	logger  *slog.Logger
}

// NewParser creates a Parser. In lenient mode, events that fail to parse
// are logged and skipped instead of aborting the whole run.
func NewParser(logger *slog.Logger, lenient bool) (*Parser, error) {
	loc, err := time.LoadLocation(TimetableTimezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timetable timezone: %w", err)
	}
	return &Parser{loc: loc, lenient: lenient, logger: logger}, nil
}

// ParseFile parses every event in the named iCalendar file.
func (p *Parser) ParseFile(name string) ([]models.Event, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Parse(f)
}

// Parse decodes every calendar object in r and parses each of its events.
func (p *Parser) Parse(r io.Reader) ([]models.Event, error) {
	dec := ical.NewDecoder(r)

	var events []models.Event
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, ve := range cal.Events() {
			event, err := p.ParseEvent(ve)
			if err != nil {
				if p.lenient {
					p.logger.Warn("Skipping unparseable event.", "error", err)
					continue
				}
				return nil, err
			}
			events = append(events, event)
		}
	}
	return events, nil
}

// ParseEvent extracts a timetable Event from a single VEVENT. The summary
// must match the feed grammar and DTSTART/DTEND must be present; both
// times are normalized to the timetable timezone.
func (p *Parser) ParseEvent(ve ical.Event) (models.Event, error) {
	var uid string
	if prop := ve.Props.Get(ical.PropUID); prop != nil {
		uid = prop.Value
	}
	if uid == "" {
		// The record carries no identifier we can pass through, so mint one.
		uid = uuid.New().String()
	}

	summaryProp := ve.Props.Get(ical.PropSummary)
	if summaryProp == nil {
		return models.Event{}, &ParseError{Kind: KindMissingProperty, Prop: "SUMMARY", UID: uid}
	}
	summary, err := summaryProp.Text()
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to read SUMMARY of event %s: %w", uid, err)
	}

	fields, err := parseSummary(summary)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.UID = uid
		}
		return models.Event{}, err
	}

	if ve.Props.Get(ical.PropDateTimeStart) == nil {
		return models.Event{}, &ParseError{Kind: KindMissingProperty, Prop: "DTSTART", UID: uid}
	}
	if ve.Props.Get(ical.PropDateTimeEnd) == nil {
		return models.Event{}, &ParseError{Kind: KindMissingProperty, Prop: "DTEND", UID: uid}
	}

	start, err := ve.DateTimeStart(p.loc)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to read DTSTART of event %s: %w", uid, err)
	}
	end, err := ve.DateTimeEnd(p.loc)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to read DTEND of event %s: %w", uid, err)
	}

	return models.Event{
		Part:      fields.part,
		Paper:     fields.paper,
		Name:      fields.name,
		EventType: fields.eventType,
		StaffName: fields.staffName,
		Location:  fields.location,
		// The output format expects local times.
		Start: start.In(p.loc),
		End:   end.In(p.loc),
		UID:   uid,
	}, nil
}
