package theme

import (
	"git.lost.host/meutraa/hexbeat/internal/game"
	"git.lost.host/meutraa/hexbeat/internal/grade"
)

type Theme interface {
	RenderNote(kind game.Kind, snap int) string
	RenderHitField(zone int) string
	RenderJudgement(g game.Grade) string
	RenderGrade(e grade.Entry) string
}
