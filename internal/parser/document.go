package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Document is the chart file as written on disk, before validation.
// Fields whose presence matters are pointers; fields whose type may vary
// are left as interface{} and checked by Validate and Build.
type Document struct {
	Meta     *RawMeta     `json:"meta" yaml:"meta"`
	Timing   *RawTiming   `json:"timing" yaml:"timing"`
	Sections []RawSection `json:"sections,omitempty" yaml:"sections,omitempty"`
	Notes    NoteList     `json:"notes" yaml:"notes"`
}

type RawMeta struct {
	Title          *string     `json:"title" yaml:"title"`
	Artist         string      `json:"artist,omitempty" yaml:"artist,omitempty"`
	Creator        string      `json:"creator,omitempty" yaml:"creator,omitempty"`
	BPM            *BPMValue   `json:"bpm" yaml:"bpm"`
	Difficulty     float64     `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	DifficultyName string      `json:"difficultyName,omitempty" yaml:"difficultyName,omitempty"`
	Preview        *RawPreview `json:"preview,omitempty" yaml:"preview,omitempty"`
	Version        interface{} `json:"version,omitempty" yaml:"version,omitempty"`
}

type RawPreview struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

type RawTiming struct {
	Offset         *Number            `json:"offset" yaml:"offset"`
	BPMChanges     []RawBPMChange     `json:"bpmChanges,omitempty" yaml:"bpmChanges,omitempty"`
	TimeSignatures []RawTimeSignature `json:"timeSignatures,omitempty" yaml:"timeSignatures,omitempty"`
}

type RawBPMChange struct {
	Time float64 `json:"time" yaml:"time"`
	BPM  Number  `json:"bpm" yaml:"bpm"`
}

type RawTimeSignature struct {
	Time        float64 `json:"time" yaml:"time"`
	Numerator   int     `json:"numerator" yaml:"numerator"`
	Denominator int     `json:"denominator" yaml:"denominator"`
}

type RawSection struct {
	Name      string  `json:"name,omitempty" yaml:"name,omitempty"`
	StartTime float64 `json:"startTime" yaml:"startTime"`
	EndTime   float64 `json:"endTime" yaml:"endTime"`
}

type RawNote struct {
	Time      interface{} `json:"time" yaml:"time"`
	Zone      interface{} `json:"zone" yaml:"zone"`
	Type      string      `json:"type,omitempty" yaml:"type,omitempty"`
	Hold      *RawHold    `json:"hold,omitempty" yaml:"hold,omitempty"`
	ChainData *RawChain   `json:"chainData,omitempty" yaml:"chainData,omitempty"`
}

type RawHold struct {
	Duration float64 `json:"duration" yaml:"duration"`
}

type RawChain struct {
	Length   float64 `json:"length" yaml:"length"`
	Interval float64 `json:"interval" yaml:"interval"`
}

// Number is a numeric field whose presence is required but whose value is
// only used when it is a number. Any other value decodes as NaN.
type Number float64

func (n Number) Valid() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (n *Number) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); nil != err {
		v = math.NaN()
	}
	*n = Number(v)
	return nil
}

func (n *Number) UnmarshalYAML(value *yaml.Node) error {
	var v float64
	if value.Kind != yaml.ScalarNode || nil != value.Decode(&v) {
		v = math.NaN()
	}
	*n = Number(v)
	return nil
}

// BPMValue accepts either a bare number or an {init, min, max} object.
type BPMValue struct {
	Init float64 `json:"init" yaml:"init"`
	Min  float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max  float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

type rawBPM struct {
	Init Number `json:"init" yaml:"init"`
	Min  Number `json:"min,omitempty" yaml:"min,omitempty"`
	Max  Number `json:"max,omitempty" yaml:"max,omitempty"`
}

func (b *BPMValue) set(v Number) {
	b.Init, b.Min, b.Max = float64(v), float64(v), float64(v)
}

func (b *BPMValue) setRaw(r rawBPM) {
	b.Init, b.Min, b.Max = float64(r.Init), float64(r.Min), float64(r.Max)
}

func (b *BPMValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var r rawBPM
		if err := json.Unmarshal(data, &r); nil != err {
			return fmt.Errorf("bpm must be a number or an object: %w", err)
		}
		b.setRaw(r)
		return nil
	}
	var v Number
	if err := v.UnmarshalJSON(data); nil != err {
		return err
	}
	b.set(v)
	return nil
}

func (b *BPMValue) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode {
		var r rawBPM
		if err := value.Decode(&r); nil != err {
			return fmt.Errorf("bpm must be a number or an object: %w", err)
		}
		b.setRaw(r)
		return nil
	}
	var v Number
	if err := v.UnmarshalYAML(value); nil != err {
		return err
	}
	b.set(v)
	return nil
}

// NoteList remembers whether the notes key was present and whether it held
// a sequence, so that Validate can report either case.
type NoteList struct {
	Present bool
	IsArray bool
	Notes   []RawNote
}

func (n *NoteList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	n.Present = true
	if len(data) == 0 || data[0] != '[' {
		return nil
	}
	n.IsArray = true
	return json.Unmarshal(data, &n.Notes)
}

func (n *NoteList) UnmarshalYAML(value *yaml.Node) error {
	if value.ShortTag() == "!!null" {
		return nil
	}
	n.Present = true
	if value.Kind != yaml.SequenceNode {
		return nil
	}
	n.IsArray = true
	return value.Decode(&n.Notes)
}
