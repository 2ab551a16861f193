// Package timetable groups parsed events into the hierarchical module
// list document and serializes it as XML.
package timetable

import (
	"encoding/xml"
	"io"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Timetable is the root of the generated document: one module per
// (part, paper) pair, in sorted order.
type Timetable struct {
	XMLName xml.Name  `xml:"moduleList"`
	Modules []*Module `xml:"module"`
}

// Module holds all event series of one paper within one part.
type Module struct {
	Path   Path      `xml:"path"`
	Name   string    `xml:"name"`
	Series []*Series `xml:"series"`
}

// Path places a module in the tripos hierarchy.
type Path struct {
	Tripos string `xml:"tripos"`
	Part   string `xml:"part"`
}

// Series is one named recurring sequence of events, e.g. a lecture
// course, with a stable content-derived identifier.
type Series struct {
	UniqueID string        `xml:"uniqueid"`
	Name     string        `xml:"name"`
	Events   []*EventEntry `xml:"event"`
}

// EventEntry is a single session within a series. Field order matters:
// it is the element order of the output document.
type EventEntry struct {
	UniqueID string `xml:"uniqueid"`
	Name     string `xml:"name"`
	Location string `xml:"location"`
	Lecturer string `xml:"lecturer"`
	Date     string `xml:"date"`
	Start    string `xml:"start"`
	End      string `xml:"end"`
	Type     string `xml:"type"`
}

// WriteXML writes the timetable as an indented XML document with a
// declaration header. Child order is preserved as produced by Assemble,
// since the sorted order is itself meaningful.
func (t *Timetable) WriteXML(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(t); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
