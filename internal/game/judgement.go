package game

import (
	"time"
)

type Grade uint8

const (
	Perfect Grade = iota
	Great
	Good
	Miss
)

// Grades lists every grade, best first.
var Grades = [...]Grade{Perfect, Great, Good, Miss}

func (g Grade) String() string {
	switch g {
	case Perfect:
		return "perfect"
	case Great:
		return "great"
	case Good:
		return "good"
	case Miss:
		return "miss"
	}
	return "unknown"
}

// Judgement is one tolerance band around a note's target time
type Judgement struct {
	Grade  Grade
	Window time.Duration // Inclusive upper bound on |target - press|
	Points int
}

// DefaultJudgements returns the hit windows, tightest first.
func DefaultJudgements() []Judgement {
	return []Judgement{
		{Grade: Perfect, Window: 50 * time.Millisecond, Points: 300},
		{Grade: Great, Window: 100 * time.Millisecond, Points: 150},
		{Grade: Good, Window: 200 * time.Millisecond, Points: 50},
	}
}
