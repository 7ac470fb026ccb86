package testdata

import (
	"git.lost.host/meutraa/hexbeat/internal/game"
	"git.lost.host/meutraa/hexbeat/internal/log"
	"git.lost.host/meutraa/hexbeat/internal/parser"
)

// GetChart returns the sample chart, parsed.
func GetChart() (*game.Chart, error) {
	p := parser.DefaultParser{Log: log.Discard()}
	return p.ParseBytes([]byte(Chart), parser.FormatJSON)
}

// Chart is a short 120bpm chart covering every note type.
const Chart = `{
  "meta": {
    "title": "Hexagon Sunrise",
    "artist": "Lane Six",
    "creator": "meutraa",
    "bpm": {"init": 120, "min": 120, "max": 150},
    "difficultyName": "Normal",
    "preview": {"start": 1000, "end": 6000},
    "version": 2
  },
  "timing": {
    "offset": 0,
    "bpmChanges": [{"time": 4000, "bpm": 150}, {"time": 0, "bpm": 120}],
    "timeSignatures": [{"time": 0, "numerator": 4, "denominator": 4}]
  },
  "sections": [
    {"name": "intro", "startTime": 0, "endTime": 2000},
    {"name": "verse", "startTime": 2000, "endTime": 6000}
  ],
  "notes": [
    {"time": 1000, "zone": 0},
    {"time": 1500, "zone": 1},
    {"time": 2000, "zone": 2, "type": "hold", "hold": {"duration": 500}},
    {"time": 2500, "zone": [3, 4], "type": "multi"},
    {"time": 3000, "zone": 5, "type": "chain", "chainData": {"length": 4, "interval": 100}},
    {"time": 4000, "zone": 0},
    {"time": 4400, "zone": 9},
    {"time": "soon", "zone": 1},
    {"time": 5000, "zone": 2}
  ]
}`

// ChartYAML is the same kind of document in YAML.
const ChartYAML = `
meta:
  title: Hexagon Sunrise
  bpm: 120
  difficulty: 7
timing:
  offset: -20
notes:
  - {time: 1000, zone: 0}
  - {time: 2000, zone: [1, 2], type: multi}
  - {time: 3000, zone: 3, type: hold, hold: {duration: 250}}
`
