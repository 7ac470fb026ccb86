package gameplay

import (
	"testing"
	"time"

	"git.lost.host/meutraa/hexbeat/internal/clock"
	"git.lost.host/meutraa/hexbeat/internal/game"
	"git.lost.host/meutraa/hexbeat/internal/input"
	"git.lost.host/meutraa/hexbeat/internal/testdata"
)

const frame = time.Second / 60

// playFrames runs a session on a fixed frame grid, pressing each note's
// primary zone on the last frame before its target.
func playFrames(t *testing.T, c *game.Chart, cfg Config) *Loop {
	presses := map[int][]int{}
	for _, n := range c.Notes {
		if n.Malformed {
			continue
		}
		k := int(n.Time / frame)
		z := n.Zone()
		if z >= cfg.Zones {
			z = cfg.Zones - 1
		}
		presses[k] = append(presses[k], z)
	}

	m := &clock.Manual{}
	buf := &input.Buffer{}
	l, err := New(c, &cfg, m, buf)
	if nil != err {
		t.Fatal(err)
	}
	if err := l.Start(); nil != err {
		t.Fatal(err)
	}
	for k := 0; l.State() == Running; k++ {
		m.Set(time.Duration(k) * frame)
		for _, z := range presses[k] {
			buf.Actuate(z)
		}
		l.Tick()
	}
	return l
}

func TestReplayMatchesSession(t *testing.T) {
	c, err := testdata.GetChart()
	if nil != err {
		t.Fatal(err)
	}
	cfg := DefaultConfig()

	l := playFrames(t, c, cfg)
	live, err := l.Result()
	if nil != err {
		t.Fatal(err)
	}
	if live.Grades.Perfect != 8 || live.Grades.Miss != 0 {
		t.Fatalf("unexpected live result %+v", live)
	}

	replayed, err := Replay(c, cfg, l.Inputs(), frame)
	if nil != err {
		t.Fatal(err)
	}
	if replayed != live {
		t.Log("replayed", replayed)
		t.Log("live    ", live)
		t.Fail()
	}
}

func TestReplayUnsortedInputs(t *testing.T) {
	c := chartOf(note(1000, 0), note(2000, 1))
	inputs := []game.Input{
		{Zone: 1, Time: ms(2010)},
		{Zone: 0, Time: ms(1000)},
	}
	result, err := Replay(c, DefaultConfig(), inputs, 0)
	if nil != err {
		t.Fatal(err)
	}
	if result.Grades.Perfect != 2 {
		t.Fatalf("expected both inputs to hit, got %+v", result)
	}
}

func TestReplayWithoutInputs(t *testing.T) {
	c, err := testdata.GetChart()
	if nil != err {
		t.Fatal(err)
	}
	result, err := Replay(c, DefaultConfig(), nil, frame)
	if nil != err {
		t.Fatal(err)
	}
	if result.Grades.Miss != 8 || result.Score != 0 || result.FinalGrade != "F" {
		t.Fatalf("expected every note to be missed, got %+v", result)
	}
}

func TestReplayWithStoredSettings(t *testing.T) {
	c := chartOf(note(1000, 0))
	played := DefaultConfig()
	played.ApproachDuration = 500 * time.Millisecond
	played.LatencyOffset = 20 * time.Millisecond

	// The early press lands before the note spawns in the played session
	inputs := []game.Input{{Zone: 0, Time: ms(400)}, {Zone: 0, Time: ms(1000)}}

	cfg := DefaultConfig().WithSettings(played.Settings())
	if cfg.ApproachDuration != played.ApproachDuration || cfg.LatencyOffset != played.LatencyOffset || cfg.Zones != 6 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	result, err := Replay(c, cfg, inputs, frame)
	if nil != err {
		t.Fatal(err)
	}
	if result.Grades.Perfect != 1 {
		t.Fatalf("expected the stored approach to keep the early press free, got %+v", result)
	}

	result, err = Replay(c, DefaultConfig(), inputs, frame)
	if nil != err {
		t.Fatal(err)
	}
	if result.Grades.Miss != 1 {
		t.Fatalf("expected the default approach to judge the early press, got %+v", result)
	}
}
