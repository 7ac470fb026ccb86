package game

import (
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

// BPM is the headline tempo of a chart. Charts that state a single
// value have Init == Min == Max.
type BPM struct {
	Init, Min, Max float64
}

type Preview struct {
	Start, End time.Duration
}

type Meta struct {
	Title          string
	Artist         string
	Creator        string
	BPM            BPM
	Difficulty     int // 0 when the chart does not state one
	DifficultyName string
	Preview        Preview
	Version        string
}

type Section struct {
	Name       string
	Start, End time.Duration
}

// Chart is immutable once the parser hands it out.
type Chart struct {
	Meta     Meta
	Timing   Timing
	Sections []Section
	Notes    []*Note
	Beats    []Beat
}

// NotesInRange returns the notes with start <= time < end.
func (c *Chart) NotesInRange(start, end time.Duration) []*Note {
	notes := []*Note{}
	for _, n := range c.Notes {
		if n.Malformed {
			continue
		}
		if n.Time >= start && n.Time < end {
			notes = append(notes, n)
		}
	}
	return notes
}

// SectionAt returns the first section containing t.
func (c *Chart) SectionAt(t time.Duration) (Section, bool) {
	for _, s := range c.Sections {
		if t >= s.Start && t < s.End {
			return s, true
		}
	}
	return Section{}, false
}

// LastNoteTime is the latest well-formed note time, or 0 for an empty chart.
func (c *Chart) LastNoteTime() time.Duration {
	var last time.Duration
	for _, n := range c.Notes {
		if !n.Malformed && n.Time > last {
			last = n.Time
		}
	}
	return last
}

// Hash identifies the playable content of a chart for score history.
func (c *Chart) Hash() string {
	var b strings.Builder
	for _, n := range c.Notes {
		b.WriteString(strconv.FormatInt(int64(n.Time), 10))
		b.WriteByte(':')
		b.WriteString(n.Kind.String())
		for _, z := range n.Zones {
			b.WriteByte(',')
			b.WriteString(strconv.Itoa(z))
		}
		b.WriteByte('\n')
	}
	sum := sha256.Sum256([]byte(b.String()))
	return base64.StdEncoding.EncodeToString(sum[:])
}
