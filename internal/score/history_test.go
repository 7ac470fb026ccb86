package score

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/hexbeat/internal/game"
	"git.lost.host/meutraa/hexbeat/internal/log"
)

func openHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "scores.db"))
	if nil != err {
		// go-sqlite3 is a stub without cgo
		t.Skipf("sqlite unavailable: %v", err)
	}
	h.Log = log.Discard()
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistorySaveLoad(t *testing.T) {
	h := openHistory(t)

	chart := &game.Chart{Notes: []*game.Note{
		{Time: time.Second, Zones: []int{0}},
		{Time: 2 * time.Second, Zones: []int{2}},
	}}
	other := &game.Chart{Notes: []*game.Note{{Time: time.Second, Zones: []int{1}}}}

	first := Snapshot{Score: 300, MaxCombo: 1, Accuracy: 50, Grades: Counts{Perfect: 1, Miss: 1}, FinalGrade: "F", FinalScore: 300}
	second := Snapshot{Score: 600, MaxCombo: 2, Accuracy: 100, Grades: Counts{Perfect: 2}, FinalGrade: "SSS+", FinalScore: 1600}
	inputs := []game.Input{{Zone: 0, Time: time.Second}, {Zone: 2, Time: 2 * time.Second}}

	settings := Settings{Zones: 4, Approach: time.Second, Latency: 30 * time.Millisecond, EndDelay: 2 * time.Second}

	if err := h.Save(chart, first, Settings{}, inputs[:1]); nil != err {
		t.Fatal(err)
	}
	if err := h.Save(chart, second, settings, inputs); nil != err {
		t.Fatal(err)
	}
	if err := h.Save(other, first, settings, nil); nil != err {
		t.Fatal(err)
	}

	entries, err := h.Load(chart)
	if nil != err {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Snapshot != first || entries[1].Snapshot != second {
		t.Fatalf("unexpected snapshots %+v", entries)
	}
	if nil == entries[1].Settings || *entries[1].Settings != settings {
		t.Fatalf("unexpected settings %+v", entries[1].Settings)
	}
	if len(entries[1].Inputs) != 2 || entries[1].Inputs[1] != inputs[1] {
		t.Fatalf("unexpected inputs %+v", entries[1].Inputs)
	}

	best, ok, err := h.Best(chart)
	if nil != err || !ok {
		t.Fatalf("expected a best entry, got %v %v", ok, err)
	}
	if best.Snapshot.FinalScore != 1600 {
		t.Fatalf("expected best final score 1600, got %d", best.Snapshot.FinalScore)
	}

	if _, ok, _ := h.Best(&game.Chart{}); ok {
		t.Fatal("expected no best entry for an unplayed chart")
	}
}

func TestHistoryMigratesOldTable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "scores.db")
	db, err := sql.Open("sqlite3", file)
	if nil != err {
		t.Skipf("sqlite unavailable: %v", err)
	}
	_, err = db.Exec(`create table scores
	  (
		  id integer not null primary key,
		  sum text not null,
		  played_at integer not null,
		  score integer not null,
		  snapshot text not null,
		  inputs blob
	  );
	insert into scores(sum, played_at, score, snapshot, inputs) values('abc', 0, 300, '{"finalScore":300}', '[]');`)
	db.Close()
	if nil != err {
		t.Skipf("sqlite unavailable: %v", err)
	}

	h, err := OpenHistory(file)
	if nil != err {
		t.Fatal(err)
	}
	defer h.Close()
	h.Log = log.Discard()

	entries, err := h.query("select id, sum, played_at, snapshot, inputs, settings from scores")
	if nil != err {
		t.Fatal(err)
	}
	if len(entries) != 1 || nil != entries[0].Settings || entries[0].Snapshot.FinalScore != 300 {
		t.Fatalf("unexpected entries %+v", entries)
	}

	chart := &game.Chart{Notes: []*game.Note{{Time: time.Second, Zones: []int{0}}}}
	if err := h.Save(chart, Snapshot{FinalScore: 600}, Settings{Zones: 6}, nil); nil != err {
		t.Fatal(err)
	}
	best, ok, err := h.Best(chart)
	if nil != err || !ok || nil == best.Settings || best.Settings.Zones != 6 {
		t.Fatalf("unexpected best entry %+v %v %v", best, ok, err)
	}
}
