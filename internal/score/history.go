package score

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"git.lost.host/meutraa/hexbeat/internal/game"
	"git.lost.host/meutraa/hexbeat/internal/log"
	_ "github.com/mattn/go-sqlite3"
)

// History stores finished sessions in sqlite, keyed by chart hash.
type History struct {
	db  *sql.DB
	Log *log.Logger
}

type Entry struct {
	ID       int64
	Sum      string
	PlayedAt time.Time
	Snapshot Snapshot
	// Settings is nil for sessions stored before settings were recorded
	Settings *Settings
	Inputs   []game.Input
}

// Settings are the gameplay parameters a session was played with.
type Settings struct {
	Zones    int           `json:"zones"`
	Approach time.Duration `json:"approach"`
	Latency  time.Duration `json:"latency"`
	EndDelay time.Duration `json:"endDelay"`
}

type InputsCompact struct {
	Zone  int
	Times []time.Duration
}

func compactInputs(inputs []game.Input) []InputsCompact {
	zoneCount := 0
	for _, i := range inputs {
		if i.Zone+1 > zoneCount {
			zoneCount = i.Zone + 1
		}
	}
	ins := make([]InputsCompact, zoneCount)
	for i := range ins {
		ins[i].Zone = i
	}
	for _, i := range inputs {
		if i.Zone < 0 {
			continue
		}
		ins[i.Zone].Times = append(ins[i.Zone].Times, i.Time)
	}
	return ins
}

func uncompactInputs(inputs []InputsCompact) []game.Input {
	ins := []game.Input{}
	for _, i := range inputs {
		for _, t := range i.Times {
			ins = append(ins, game.Input{Zone: i.Zone, Time: t})
		}
	}
	return ins
}

// SortInputs orders inputs by time, zone breaking ties.
func SortInputs(inputs []game.Input) {
	sort.SliceStable(inputs, func(i, j int) bool {
		if inputs[i].Time == inputs[j].Time {
			return inputs[i].Zone < inputs[j].Zone
		}
		return inputs[i].Time < inputs[j].Time
	})
}

func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open score database: %w", err)
	}

	initStatement := `
	create table if not exists scores
	  (
		  id integer not null primary key,
		  sum text not null,
		  played_at integer not null,
		  score integer not null,
		  snapshot text not null,
		  inputs blob,
		  settings text
	  );
	create index if not exists scores_sum on scores(sum);
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return nil, fmt.Errorf("unable to create score table: %w", err)
	}
	if err := migrate(db); nil != err {
		db.Close()
		return nil, err
	}

	return &History{db: db}, nil
}

// migrate adds the settings column to databases created without it.
func migrate(db *sql.DB) error {
	rows, err := db.Query("pragma table_info(scores)")
	if nil != err {
		return fmt.Errorf("unable to read score table: %w", err)
	}
	found := false
	for rows.Next() {
		var cid, notNull, pk int
		var name, kind string
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &kind, &notNull, &dflt, &pk); nil != err {
			rows.Close()
			return fmt.Errorf("unable to read score table: %w", err)
		}
		if name == "settings" {
			found = true
		}
	}
	rows.Close()
	if found {
		return nil
	}
	if _, err := db.Exec("alter table scores add column settings text"); nil != err {
		return fmt.Errorf("unable to migrate score table: %w", err)
	}
	return nil
}

func (h *History) Close() error {
	if nil != h.db {
		return h.db.Close()
	}
	return nil
}

func (h *History) Save(c *game.Chart, s Snapshot, settings Settings, inputs []game.Input) error {
	snapshot, err := json.Marshal(s)
	if nil != err {
		return fmt.Errorf("unable to marshal snapshot: %w", err)
	}
	set, err := json.Marshal(settings)
	if nil != err {
		return fmt.Errorf("unable to marshal settings: %w", err)
	}
	data, err := json.Marshal(compactInputs(inputs))
	if nil != err {
		return fmt.Errorf("unable to marshal inputs: %w", err)
	}
	_, err = h.db.Exec(
		"insert into scores(sum, played_at, score, snapshot, inputs, settings) values(?, ?, ?, ?, ?, ?)",
		c.Hash(), time.Now().Unix(), s.FinalScore, string(snapshot), data, string(set),
	)
	if nil != err {
		return fmt.Errorf("unable to save score: %w", err)
	}
	return nil
}

// Load returns every stored session for the chart, oldest first.
func (h *History) Load(c *game.Chart) ([]Entry, error) {
	return h.query("select id, sum, played_at, snapshot, inputs, settings from scores where sum = ? order by id", c.Hash())
}

// Best returns the highest scoring session for the chart.
func (h *History) Best(c *game.Chart) (Entry, bool, error) {
	entries, err := h.query("select id, sum, played_at, snapshot, inputs, settings from scores where sum = ? order by score desc, id limit 1", c.Hash())
	if nil != err || len(entries) == 0 {
		return Entry{}, false, err
	}
	return entries[0], true, nil
}

func (h *History) query(q string, args ...interface{}) ([]Entry, error) {
	entries := []Entry{}
	rows, err := h.db.Query(q, args...)
	if nil != err {
		return nil, fmt.Errorf("unable to load scores: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e Entry
		var playedAt int64
		var snapshot string
		var inputs []byte
		var settings sql.NullString
		if err := rows.Scan(&e.ID, &e.Sum, &playedAt, &snapshot, &inputs, &settings); nil != err {
			return nil, fmt.Errorf("unable to scan score: %w", err)
		}
		e.PlayedAt = time.Unix(playedAt, 0)
		if err := json.Unmarshal([]byte(snapshot), &e.Snapshot); nil != err {
			h.Log.Warnf("unable to unmarshal snapshot %v: %v", e.ID, err)
			continue
		}
		if settings.Valid && settings.String != "" {
			e.Settings = &Settings{}
			if err := json.Unmarshal([]byte(settings.String), e.Settings); nil != err {
				h.Log.Warnf("unable to unmarshal settings %v: %v", e.ID, err)
				e.Settings = nil
			}
		}
		var ins []InputsCompact
		if err := json.Unmarshal(inputs, &ins); nil != err {
			h.Log.Warnf("unable to unmarshal input history %v: %v", e.ID, err)
			continue
		}
		e.Inputs = uncompactInputs(ins)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
