package gameplay

import (
	"time"

	"git.lost.host/meutraa/hexbeat/internal/game"
)

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}

// Judge classifies the distance between a press and a target against the
// windows, tightest first. Outside every window is a miss.
func Judge(distance time.Duration, judgements []game.Judgement) game.Judgement {
	d := abs(distance)
	for _, j := range judgements {
		if d <= j.Window {
			return j
		}
	}
	return game.Judgement{Grade: game.Miss}
}
