package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"git.lost.host/meutraa/hexbeat/internal/game"
	"git.lost.host/meutraa/hexbeat/internal/gameplay"
	"git.lost.host/meutraa/hexbeat/internal/score"
	"git.lost.host/meutraa/hexbeat/internal/theme"
)

// Session is the part of a running loop the field draws.
type Session interface {
	Active() []gameplay.ActiveNote
	Scorer() score.Scorer
	Now() time.Duration
}

// Field draws the lanes, the notes in flight and the side panel.
type Field struct {
	R     Renderer
	Theme theme.Theme
	Chart *game.Chart

	cols    []int
	bar     int
	sideCol int
	drawn   []cell
	flashes []flash
}

type cell struct {
	row, col int
}

// Judgements stay under their lane this many frames
const flashFrames = 60

type flash struct {
	content string
	frames  int // Frames left to show
	width   int // Columns left on screen, 0 once cleared
}

// NewField lays out zones lanes spacing columns apart, centered in a
// terminal of the given size, with the hit bar barRow rows above the bottom.
func NewField(r Renderer, th theme.Theme, c *game.Chart, zones, columns, rows, spacing, barRow int) *Field {
	f := &Field{
		R:       r,
		Theme:   th,
		Chart:   c,
		cols:    make([]int, zones),
		bar:     rows - barRow,
		flashes: make([]flash, zones),
	}
	mc := columns >> 1
	for i := range f.cols {
		f.cols[i] = mc + (2*i-(zones-1))*spacing/2
	}
	f.sideCol = f.cols[0] - 36
	if f.sideCol < 2 {
		f.sideCol = 2
	}
	if f.bar < 2 {
		f.bar = 2
	}
	return f
}

// Column is the terminal column of a zone.
func (f *Field) Column(zone int) int {
	return f.cols[zone]
}

// Row is the terminal row of a note at the given approach progress, row 1 at
// spawn and the hit bar at 1.
func (f *Field) Row(progress float64) int {
	if progress < 0 {
		progress = 0
	}
	return 1 + int(math.Round(progress*float64(f.bar-1)))
}

// Draw renders one frame of s.
func (f *Field) Draw(s Session) {
	for _, c := range f.drawn {
		f.R.Fill(uint16(c.row), uint16(c.col), " ")
	}
	f.drawn = f.drawn[:0]

	for i, col := range f.cols {
		f.R.Fill(uint16(f.bar), uint16(col), f.Theme.RenderHitField(i))
	}

	for _, a := range s.Active() {
		row := f.Row(a.Progress)
		if row >= f.bar {
			continue
		}
		sym := f.Theme.RenderNote(a.Note.Kind, f.Chart.Snap(a.TargetTime))
		for _, z := range a.Zones {
			f.R.Fill(uint16(row), uint16(f.cols[z]), sym)
			f.drawn = append(f.drawn, cell{row, f.cols[z]})
		}
	}

	f.drawFlashes()
	f.panel(s)
}

func (f *Field) flashColumn(zone int) uint16 {
	if col := f.cols[zone] - 3; col > 1 {
		return uint16(col)
	}
	return 1
}

func (f *Field) drawFlashes() {
	row := uint16(f.bar + 1)
	for z := range f.flashes {
		fl := &f.flashes[z]
		switch {
		case fl.frames > 0:
			f.R.Fill(row, f.flashColumn(z), fl.content)
			fl.frames--
		case fl.width > 0:
			f.R.Fill(row, f.flashColumn(z), strings.Repeat(" ", fl.width))
			fl.width = 0
		}
	}
}

func (f *Field) panel(s Session) {
	now := s.Now()
	state := s.Scorer().State()
	col := uint16(f.sideCol)

	section := ""
	if sec, ok := f.Chart.SectionAt(now); ok {
		section = sec.Name
	}
	f.R.Fill(2, col, fmt.Sprintf("       Time:  %8.2fs", now.Seconds()))
	f.R.Fill(3, col, fmt.Sprintf("        BPM:  %8.1f", f.Chart.BPMAt(now)))
	f.R.Fill(4, col, fmt.Sprintf("    Section:  %-12v", section))
	f.R.Fill(10, col, fmt.Sprintf("      Score:  %8v", state.Score))
	f.R.Fill(11, col, fmt.Sprintf("      Combo:  %8v", state.Combo))
	f.R.Fill(12, col, fmt.Sprintf("  Max Combo:  %8v", state.MaxCombo))
	f.R.Fill(13, col, fmt.Sprintf("   Accuracy:  %7.2f%%", s.Scorer().Accuracy()))
	for i, g := range game.Grades {
		f.R.Fill(uint16(18+i), col, fmt.Sprintf("%11v:  %8v", g, state.Grades.Of(g)))
	}
}

// Judged flashes a judgement under the lane that produced it, replacing the
// lane's previous one.
func (f *Field) Judged(j gameplay.Judged) {
	if j.Zone < 0 || j.Zone >= len(f.flashes) {
		return
	}
	fl := &f.flashes[j.Zone]
	content := f.Theme.RenderJudgement(j.Grade)
	width := visibleWidth(content)
	if fl.width > width {
		content += strings.Repeat(" ", fl.width-width)
		width = fl.width
	}
	*fl = flash{content: content, frames: flashFrames, width: width}
}
