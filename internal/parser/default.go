package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path"
	"strings"

	"git.lost.host/meutraa/hexbeat/internal/game"
	"git.lost.host/meutraa/hexbeat/internal/log"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

var ErrUnknownFormat = errors.New("unknown chart format")

// FormatFromPath picks the chart format from the file extension.
func FormatFromPath(file string) (Format, error) {
	switch strings.ToLower(path.Ext(file)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %v", ErrUnknownFormat, file)
}

type DefaultParser struct {
	Log *log.Logger
}

func (p *DefaultParser) Parse(file string) (*game.Chart, error) {
	format, err := FormatFromPath(file)
	if nil != err {
		return nil, err
	}
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, fmt.Errorf("unable to read chart: %w", err)
	}
	return p.ParseBytes(data, format)
}

func (p *DefaultParser) ParseBytes(data []byte, format Format) (*game.Chart, error) {
	doc, err := Decode(data, format)
	if nil != err {
		return nil, err
	}
	return Build(doc, p.Log)
}

func Decode(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, ErrUnknownFormat
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return nil, &ValidationError{
			Field:  typeErr.Field,
			Index:  -1,
			Reason: fmt.Sprintf("%v must be a %v, got %v", typeErr.Field, typeErr.Type, typeErr.Value),
		}
	}
	if nil != err {
		return nil, fmt.Errorf("unable to decode chart: %w", err)
	}
	return &doc, nil
}

// Build validates the document and turns it into a chart. Notes keep their
// document order; a note with a non-numeric time or zone is kept but marked
// malformed.
func Build(doc *Document, l *log.Logger) (*game.Chart, error) {
	if err := Validate(doc); nil != err {
		return nil, err
	}

	chart := &game.Chart{
		Meta:  buildMeta(doc.Meta),
		Notes: make([]*game.Note, 0, len(doc.Notes.Notes)),
	}

	for i, raw := range doc.Notes.Notes {
		note := buildNote(&raw)
		if note.Malformed {
			l.Warnf("note %d has a non-numeric time or zone", i)
		}
		chart.Notes = append(chart.Notes, note)
	}
	if !sorted(chart.Notes) {
		l.Warnf("notes in %q are not sorted by time, scheduling follows document order", chart.Meta.Title)
	}

	for _, s := range doc.Sections {
		chart.Sections = append(chart.Sections, game.Section{
			Name:  s.Name,
			Start: ms(s.StartTime),
			End:   ms(s.EndTime),
		})
	}

	chart.Timing, chart.Beats = DeriveTiming(doc, chart.Notes, l)
	return chart, nil
}

func buildMeta(raw *RawMeta) game.Meta {
	meta := game.Meta{
		Title:          *raw.Title,
		Artist:         raw.Artist,
		Creator:        raw.Creator,
		BPM:            game.BPM{Init: raw.BPM.Init, Min: raw.BPM.Min, Max: raw.BPM.Max},
		Difficulty:     int(math.Round(raw.Difficulty)),
		DifficultyName: raw.DifficultyName,
	}
	if nil != raw.Preview {
		meta.Preview = game.Preview{Start: ms(raw.Preview.Start), End: ms(raw.Preview.End)}
	}
	if nil != raw.Version {
		meta.Version = fmt.Sprint(raw.Version)
	}
	return meta
}

func buildNote(raw *RawNote) *game.Note {
	kind, _ := game.ParseKind(raw.Type)
	note := &game.Note{Kind: kind}

	t, ok := number(raw.Time)
	if ok {
		note.Time = ms(t)
	} else {
		note.Malformed = true
	}

	switch z := raw.Zone.(type) {
	case []interface{}:
		if kind != game.Multi || len(z) == 0 {
			note.Malformed = true
			break
		}
		for _, v := range z {
			f, ok := number(v)
			if !ok {
				note.Malformed = true
				break
			}
			note.Zones = append(note.Zones, int(math.Floor(f)))
		}
	default:
		f, ok := number(z)
		if !ok {
			note.Malformed = true
			break
		}
		note.Zones = []int{int(math.Floor(f))}
	}

	switch kind {
	case game.Hold:
		note.Hold = ms(raw.Hold.Duration)
	case game.Chain:
		note.Chain = game.ChainData{
			Length:   int(raw.ChainData.Length),
			Interval: ms(raw.ChainData.Interval),
		}
	}
	return note
}

// number accepts what encoding/json and yaml.v3 produce for numeric scalars.
func number(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func sorted(notes []*game.Note) bool {
	var last *game.Note
	for _, n := range notes {
		if n.Malformed {
			continue
		}
		if nil != last && n.Time < last.Time {
			return false
		}
		last = n
	}
	return true
}
