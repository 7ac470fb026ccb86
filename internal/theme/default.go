package theme

import (
	"fmt"
	"image/color"

	"git.lost.host/meutraa/hexbeat/internal/game"
	"git.lost.host/meutraa/hexbeat/internal/grade"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) RenderNote(kind game.Kind, snap int) string {
	return Colorize(getNoteColor(snap), syms[kind])
}

func (t *DefaultTheme) RenderHitField(zone int) string {
	return barSym
}

func (t *DefaultTheme) RenderJudgement(g game.Grade) string {
	return Colorize(judgementColors[g], judgementNames[g])
}

func (t *DefaultTheme) RenderGrade(e grade.Entry) string {
	return Colorize(RGB(e.Color), e.Name)
}

// RGB splits a 0xRRGGBB value.
func RGB(c uint32) color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 255}
}

func Colorize(c color.RGBA, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

const (
	barSym = "-"
)

var (
	syms = map[game.Kind]string{
		game.Regular: "⬤",
		game.Hold:    "◆",
		game.Chain:   "◉",
		game.Multi:   "▲",
	}
	judgementNames = map[game.Grade]string{
		game.Perfect: "PERFECT",
		game.Great:   "GREAT",
		game.Good:    "GOOD",
		game.Miss:    "MISS",
	}
	judgementColors = map[game.Grade]color.RGBA{
		game.Perfect: {255, 215, 0, 255},
		game.Great:   {0, 236, 128, 255},
		game.Good:    {0, 118, 236, 255},
		game.Miss:    {236, 30, 0, 255},
	}
	noteColors = map[int]color.RGBA{
		1:  {236, 30, 0, 255},    // 1/4 red
		2:  {0, 118, 236, 255},   // 1/8 blue
		3:  {106, 0, 236, 255},   // 1/12 purple
		4:  {236, 195, 0, 255},   // 1/16 yellow
		6:  {236, 0, 106, 255},   // 1/24 pink
		8:  {236, 128, 0, 255},   // 1/32 orange
		12: {173, 236, 236, 255}, // 1/48 light blue
		16: {0, 236, 128, 255},   // 1/64 green
		-1: {255, 255, 255, 255}, // other white
	}
)

func getNoteColor(snap int) color.RGBA {
	col, ok := noteColors[snap]
	if !ok {
		return noteColors[-1]
	}
	return col
}
