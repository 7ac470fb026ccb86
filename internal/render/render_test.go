package render

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"time"

	"git.lost.host/meutraa/hexbeat/internal/game"
	"git.lost.host/meutraa/hexbeat/internal/gameplay"
	"git.lost.host/meutraa/hexbeat/internal/grade"
	"git.lost.host/meutraa/hexbeat/internal/score"
	"git.lost.host/meutraa/hexbeat/internal/testdata"
	"git.lost.host/meutraa/hexbeat/internal/theme"
)

type fakeSession struct {
	active []gameplay.ActiveNote
	scorer score.DefaultScorer
	now    time.Duration
}

func (s *fakeSession) Active() []gameplay.ActiveNote { return s.active }
func (s *fakeSession) Scorer() score.Scorer          { return &s.scorer }
func (s *fakeSession) Now() time.Duration            { return s.now }

func TestFill(t *testing.T) {
	var out bytes.Buffer
	r := DefaultRenderer{Out: &out}
	r.Fill(3, 14, "x")
	if err := r.Flush(); nil != err {
		t.Fatal(err)
	}
	if out.String() != "\033[3;14Hx" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestJudgementFlash(t *testing.T) {
	var out bytes.Buffer
	r := &DefaultRenderer{Out: &out}
	th := &theme.DefaultTheme{}
	f := NewField(r, th, &game.Chart{}, 6, 100, 40, 6, 4)
	s := &fakeSession{}
	at := "\033[37;32H"

	f.Judged(gameplay.Judged{Zone: 0, Grade: game.Perfect})
	f.Judged(gameplay.Judged{Zone: 9, Grade: game.Miss})
	for i := 0; i < flashFrames; i++ {
		out.Reset()
		f.Draw(s)
		_ = r.Flush()
		if !strings.Contains(out.String(), at+th.RenderJudgement(game.Perfect)) {
			t.Fatalf("expected the judgement on frame %d, got %q", i, out.String())
		}
	}

	out.Reset()
	f.Draw(s)
	_ = r.Flush()
	if !strings.Contains(out.String(), at+"       ") {
		t.Fatalf("expected the judgement to be cleared, got %q", out.String())
	}
	out.Reset()
	f.Draw(s)
	_ = r.Flush()
	if strings.Contains(out.String(), at) {
		t.Fatalf("expected nothing left under the lane, got %q", out.String())
	}

	// A shorter judgement covers the longer one it replaces
	f.Judged(gameplay.Judged{Zone: 0, Grade: game.Perfect})
	f.Judged(gameplay.Judged{Zone: 0, Grade: game.Miss})
	out.Reset()
	f.Draw(s)
	_ = r.Flush()
	if !strings.Contains(out.String(), at+th.RenderJudgement(game.Miss)+"   ") {
		t.Fatalf("expected a padded miss, got %q", out.String())
	}
}

func TestVisibleWidth(t *testing.T) {
	for s, expected := range map[string]int{
		"":                            0,
		"MISS":                        4,
		"\033[38;2;1;2;3mGOOD\033[0m": 4,
		"⬤":                           1,
	} {
		if out := visibleWidth(s); out != expected {
			t.Logf("in       %q", s)
			t.Log("out     ", out)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}

func TestFieldLayout(t *testing.T) {
	var out bytes.Buffer
	f := NewField(&DefaultRenderer{Out: &out}, &theme.DefaultTheme{}, &game.Chart{}, 6, 100, 40, 6, 4)
	expected := []int{35, 41, 47, 53, 59, 65}
	for z, col := range expected {
		if f.Column(z) != col {
			t.Fatalf("expected zone %v at column %v, got %v", z, col, f.Column(z))
		}
	}
	if f.Row(0) != 1 || f.Row(1) != 36 || f.Row(-0.5) != 1 {
		t.Fatalf("unexpected rows %v %v", f.Row(0), f.Row(1))
	}
}

func TestFieldDraw(t *testing.T) {
	c, err := testdata.GetChart()
	if nil != err {
		t.Fatal(err)
	}
	var out bytes.Buffer
	r := &DefaultRenderer{Out: &out}
	th := &theme.DefaultTheme{}
	f := NewField(r, th, c, 6, 100, 40, 6, 4)

	s := &fakeSession{now: 2200 * time.Millisecond}
	s.active = []gameplay.ActiveNote{
		{Note: c.Notes[3], Zones: []int{3, 4}, TargetTime: c.Notes[3].Time, Progress: 0.5},
	}
	f.Draw(s)
	_ = r.Flush()

	frame := out.String()
	sym := th.RenderNote(game.Multi, c.Snap(c.Notes[3].Time))
	for _, col := range []int{53, 59} {
		if !strings.Contains(frame, "\033[19;"+strconv.Itoa(col)+"H"+sym) {
			t.Fatalf("expected the multi note in column %v, got %q", col, frame)
		}
	}
	if !strings.Contains(frame, "verse") || !strings.Contains(frame, "120.0") {
		t.Fatalf("expected the panel to show the section and tempo, got %q", frame)
	}

	// The next frame clears what the previous one drew
	out.Reset()
	s.active = nil
	f.Draw(s)
	_ = r.Flush()
	if !strings.Contains(out.String(), "\033[19;53H ") {
		t.Fatalf("expected the old note to be cleared, got %q", out.String())
	}
}

func TestWriteResults(t *testing.T) {
	table := grade.DefaultTable()
	entry := table.Lookup(93)
	var out bytes.Buffer
	err := WriteResults(&out, Results{
		Title:  "Hexagon Sunrise",
		Artist: "Lane Six",
		Grade:  entry.Name,
		Entry:  entry,
		Snapshot: score.Snapshot{
			Score:      2850,
			FinalScore: 3250,
			Accuracy:   93,
			MaxCombo:   10,
			Grades:     score.Counts{Perfect: 8, Great: 1, Good: 1},
			FinalGrade: entry.Name,
		},
		NewBest: true,
		Best:    &score.Entry{},
	})
	if nil != err {
		t.Fatal(err)
	}
	for _, expected := range []string{
		"HEXAGON SUNRISE - Lane Six",
		"Grade:  A  Advanced Performance",
		"Final Score:  3,250",
		"Accuracy:  93.00%",
		"Perfect:  8",
		"New best!",
	} {
		if !strings.Contains(out.String(), expected) {
			t.Log("out     ", out.String())
			t.Log("expected", expected)
			t.Fail()
		}
	}
}

func TestWriteHistory(t *testing.T) {
	var out bytes.Buffer
	if err := WriteHistory(&out, "empty", nil); nil != err {
		t.Fatal(err)
	}
	if out.String() != "EMPTY\nNo scores yet\n" {
		t.Fatalf("unexpected output %q", out.String())
	}

	out.Reset()
	entries := []score.Entry{
		{PlayedAt: time.Now(), Snapshot: score.Snapshot{FinalGrade: "SS", FinalScore: 12345, Accuracy: 98.5, MaxCombo: 40}},
		{PlayedAt: time.Now(), Snapshot: score.Snapshot{FinalGrade: "F", FinalScore: 0}},
	}
	if err := WriteHistory(&out, "chart", entries); nil != err {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "  1) ") || !strings.Contains(lines[1], "12,345") || !strings.Contains(lines[1], "98.50%") {
		t.Fatalf("unexpected history %q", out.String())
	}
}

func TestWriteSummary(t *testing.T) {
	c, err := testdata.GetChart()
	if nil != err {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := WriteSummary(&out, c); nil != err {
		t.Fatal(err)
	}
	for _, expected := range []string{
		"Hexagon Sunrise - Lane Six",
		"Notes:  9 (",
		"Malformed:  1",
		"BPM:  120 (120-150)",
		"intro",
	} {
		if !strings.Contains(out.String(), expected) {
			t.Log("out     ", out.String())
			t.Log("expected", expected)
			t.Fail()
		}
	}
}
