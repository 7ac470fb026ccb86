package score

import (
	"git.lost.host/meutraa/hexbeat/internal/game"
)

type Scorer interface {
	// Credit a non-miss judgement
	AddHit(points int)
	// Count a judgement, a miss also breaks the combo
	RegisterGrade(grade game.Grade)
	// Record a miss
	Miss()

	Accuracy() float64
	State() State
	Reset()
}

type Counts struct {
	Perfect int `json:"perfect"`
	Great   int `json:"great"`
	Good    int `json:"good"`
	Miss    int `json:"miss"`
}

func (c *Counts) Of(g game.Grade) int {
	switch g {
	case game.Perfect:
		return c.Perfect
	case game.Great:
		return c.Great
	case game.Good:
		return c.Good
	case game.Miss:
		return c.Miss
	}
	return 0
}

func (c *Counts) inc(g game.Grade) {
	switch g {
	case game.Perfect:
		c.Perfect++
	case game.Great:
		c.Great++
	case game.Good:
		c.Good++
	case game.Miss:
		c.Miss++
	}
}

func (c *Counts) Total() int {
	return c.Perfect + c.Great + c.Good + c.Miss
}

type State struct {
	Score    int
	Combo    int
	MaxCombo int
	Hits     int
	Grades   Counts
}

// Snapshot is the read-only result handed out once a session ends.
type Snapshot struct {
	Score      int     `json:"score"`
	MaxCombo   int     `json:"maxCombo"`
	Accuracy   float64 `json:"accuracy"`
	Grades     Counts  `json:"grades"`
	FinalGrade string  `json:"finalGrade"`
	FinalScore int     `json:"finalScore"`
}
