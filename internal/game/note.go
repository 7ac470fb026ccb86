package game

import (
	"time"
)

// Kind is the closed set of note variants a chart may contain.
type Kind uint8

const (
	Regular Kind = iota
	Hold
	Chain
	Multi
)

func (k Kind) String() string {
	switch k {
	case Regular:
		return "regular"
	case Hold:
		return "hold"
	case Chain:
		return "chain"
	case Multi:
		return "multi"
	}
	return "unknown"
}

// ParseKind maps a chart "type" value onto a Kind. The empty string is a
// regular note.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "", "regular":
		return Regular, true
	case "hold":
		return Hold, true
	case "chain":
		return Chain, true
	case "multi":
		return Multi, true
	}
	return Regular, false
}

type ChainData struct {
	Length   int
	Interval time.Duration
}

type Note struct {
	Kind  Kind
	Time  time.Duration // The time the note should be hit
	Zones []int         // The target zones, a single entry unless Kind is Multi

	Hold  time.Duration // Hold length, only set for Hold notes
	Chain ChainData     // Only set for Chain notes

	// Malformed is set when time or zone was present in the chart
	// but not a number. These notes are never scheduled.
	Malformed bool
}

// Zone returns the primary zone of the note, or -1 if it has none.
func (n *Note) Zone() int {
	if len(n.Zones) == 0 {
		return -1
	}
	return n.Zones[0]
}

// InZone reports whether the note targets zone z.
func (n *Note) InZone(z int) bool {
	for _, nz := range n.Zones {
		if nz == z {
			return true
		}
	}
	return false
}
