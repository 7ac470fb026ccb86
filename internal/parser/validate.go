package parser

import (
	"fmt"

	"git.lost.host/meutraa/hexbeat/internal/game"
)

// ValidationError is returned for any structural problem in a chart. A chart
// that fails validation is never played.
type ValidationError struct {
	Field  string // e.g. "meta.title" or "notes[3].zone"
	Index  int    // Note index, -1 when the problem is not with a note
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid chart: " + e.Reason
}

func missingSection(section string) error {
	return &ValidationError{
		Field:  section,
		Index:  -1,
		Reason: "missing required section: " + section,
	}
}

func missingField(field string) error {
	return &ValidationError{
		Field:  field,
		Index:  -1,
		Reason: "missing required field: " + field,
	}
}

func noteError(i int, field, format string, v ...interface{}) error {
	return &ValidationError{
		Field:  fmt.Sprintf("notes[%d].%s", i, field),
		Index:  i,
		Reason: fmt.Sprintf(format, v...),
	}
}

// Validate checks the chart structure and returns the first violation found.
// Sections are checked before notes, notes in index order.
func Validate(doc *Document) error {
	if nil == doc.Meta {
		return missingSection("meta")
	}
	if nil == doc.Meta.Title {
		return missingField("meta.title")
	}
	if nil == doc.Meta.BPM {
		return missingField("meta.bpm")
	}
	if nil == doc.Timing {
		return missingSection("timing")
	}
	if nil == doc.Timing.Offset {
		return missingField("timing.offset")
	}
	if !doc.Notes.Present {
		return missingSection("notes")
	}
	if !doc.Notes.IsArray {
		return &ValidationError{Field: "notes", Index: -1, Reason: "notes must be an array"}
	}

	for i := range doc.Notes.Notes {
		if err := validateNote(i, &doc.Notes.Notes[i]); nil != err {
			return err
		}
	}
	return nil
}

func validateNote(i int, n *RawNote) error {
	if nil == n.Time {
		return noteError(i, "time", "note %d missing time", i)
	}
	if nil == n.Zone {
		return noteError(i, "zone", "note %d missing zone", i)
	}

	kind, ok := game.ParseKind(n.Type)
	if !ok {
		return noteError(i, "type", "note %d has unknown type %q", i, n.Type)
	}
	switch kind {
	case game.Hold:
		if nil == n.Hold || n.Hold.Duration == 0 {
			return noteError(i, "hold.duration", "hold note %d missing duration", i)
		}
	case game.Chain:
		if nil == n.ChainData || n.ChainData.Length == 0 || n.ChainData.Interval == 0 {
			return noteError(i, "chainData", "chain note %d missing chain data", i)
		}
	case game.Multi:
		if _, ok := n.Zone.([]interface{}); !ok {
			return noteError(i, "zone", "multi note %d zone must be array", i)
		}
	}
	return nil
}
