package models

import "time"

// Event represents a single scheduled teaching session extracted from a
// calendar feed. This is an internal representation, independent of the
// iCalendar wire format.
//
// Events are value types: substitution produces a new Event rather than
// mutating an existing one.
type Event struct {
	Part      string    // Academic year/stage code (e.g. "1", or "IA" after substitution)
	Paper     string    // Subject/paper code within the part
	Name      string    // Series name, e.g. a lecture course title
	EventType string    // Category code (e.g. "L" for lecture, "C" for class)
	StaffName string    // Presenter/lecturer display name
	Location  string    // Room or venue
	Start     time.Time // Start of the session, in the timetable timezone
	End       time.Time // End of the session, same calendar day as Start
	UID       string    // Unique identifier carried over from the source record
}

// Field returns the value of the named event field using the snake_case
// names of the exclusion-rule format. The second return is false for
// unrecognized names.
func (e Event) Field(name string) (string, bool) {
	switch name {
	case "part":
		return e.Part, true
	case "paper":
		return e.Paper, true
	case "name":
		return e.Name, true
	case "event_type":
		return e.EventType, true
	case "staff_name":
		return e.StaffName, true
	case "location":
		return e.Location, true
	case "uid":
		return e.UID, true
	}
	return "", false
}
