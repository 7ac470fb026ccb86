package gameplay

import (
	"time"

	"git.lost.host/meutraa/hexbeat/internal/clock"
	"git.lost.host/meutraa/hexbeat/internal/game"
	"git.lost.host/meutraa/hexbeat/internal/input"
	"git.lost.host/meutraa/hexbeat/internal/score"
)

// Replay plays recorded inputs back against the chart without audio and
// returns the result. The clock steps by frame and also stops at every
// input time, so each input is judged at the time it was recorded.
func Replay(chart *game.Chart, cfg Config, inputs []game.Input, frame time.Duration, opts ...Option) (score.Snapshot, error) {
	if frame <= 0 {
		frame = time.Second / 60
	}
	ins := append([]game.Input(nil), inputs...)
	score.SortInputs(ins)

	c := &clock.Manual{}
	buf := &input.Buffer{}
	l, err := New(chart, &cfg, c, buf, opts...)
	if nil != err {
		return score.Snapshot{}, err
	}
	// A replay is never driven by a frame driver or audio
	l.driver = nil
	l.transport = nil
	if err := l.Start(); nil != err {
		return score.Snapshot{}, err
	}

	next := 0
	t := time.Duration(0)
	if len(ins) > 0 && ins[0].Time < t {
		t = ins[0].Time
	}
	for l.State() == Running {
		at := t
		if next < len(ins) && ins[next].Time < at {
			at = ins[next].Time
		}
		c.Set(at)
		for next < len(ins) && ins[next].Time == at {
			buf.Actuate(ins[next].Zone)
			next++
		}
		l.Tick()
		if at == t {
			t += frame
		}
	}
	return l.Result()
}
