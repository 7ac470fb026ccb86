package render

import (
	"embed"
	"io"
	"text/template"
	"time"

	"git.lost.host/meutraa/hexbeat/internal/game"
	"git.lost.host/meutraa/hexbeat/internal/grade"
	"git.lost.host/meutraa/hexbeat/internal/score"
	"github.com/Masterminds/sprig"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("base").
	Funcs(sprig.TxtFuncMap()).
	Funcs(template.FuncMap{"number": grade.FormatNumber}).
	ParseFS(templateFS, "templates/*.tmpl"))

type Results struct {
	Title    string
	Artist   string
	Grade    string // The grade name, possibly colored
	Entry    grade.Entry
	Snapshot score.Snapshot
	Best     *score.Entry // The previous best, if any
	NewBest  bool
}

func WriteResults(w io.Writer, r Results) error {
	return templates.ExecuteTemplate(w, "results.tmpl", r)
}

func WriteHistory(w io.Writer, title string, entries []score.Entry) error {
	return templates.ExecuteTemplate(w, "history.tmpl", struct {
		Title   string
		Entries []score.Entry
	}{title, entries})
}

type ChartSummary struct {
	Meta       game.Meta
	Sections   []game.Section
	Stats      game.NoteStats
	Difficulty int
	Length     time.Duration
	Malformed  int
}

func Summarize(c *game.Chart) ChartSummary {
	s := ChartSummary{
		Meta:       c.Meta,
		Sections:   c.Sections,
		Stats:      c.NoteStats(),
		Difficulty: c.Difficulty(),
		Length:     c.LastNoteTime(),
	}
	for _, n := range c.Notes {
		if n.Malformed {
			s.Malformed++
		}
	}
	return s
}

func WriteSummary(w io.Writer, c *game.Chart) error {
	return templates.ExecuteTemplate(w, "chart.tmpl", Summarize(c))
}
