package score

import (
	"math"

	"git.lost.host/meutraa/hexbeat/internal/game"
)

// Accuracy weights per grade
var weights = map[game.Grade]float64{
	game.Perfect: 1,
	game.Great:   0.8,
	game.Good:    0.5,
	game.Miss:    0,
}

type DefaultScorer struct {
	state State
}

func (s *DefaultScorer) AddHit(points int) {
	s.state.Score += points
	s.state.Combo++
	s.state.Hits++
	if s.state.Combo > s.state.MaxCombo {
		s.state.MaxCombo = s.state.Combo
	}
}

func (s *DefaultScorer) RegisterGrade(grade game.Grade) {
	s.state.Grades.inc(grade)
	if grade == game.Miss {
		s.state.Combo = 0
	}
}

// Miss breaks the combo once and counts one miss.
func (s *DefaultScorer) Miss() {
	s.RegisterGrade(game.Miss)
}

// Accuracy is the weighted share of judged notes, in percent with two
// decimals. It is 0 until something has been judged.
func (s *DefaultScorer) Accuracy() float64 {
	total := s.state.Grades.Total()
	if total == 0 {
		return 0
	}
	weighted := 0.0
	for _, g := range game.Grades {
		weighted += float64(s.state.Grades.Of(g)) * weights[g]
	}
	return math.Round(10000*weighted/float64(total)) / 100
}

func (s *DefaultScorer) State() State {
	return s.state
}

func (s *DefaultScorer) Reset() {
	s.state = State{}
}
