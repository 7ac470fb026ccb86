package parser

import "git.lost.host/meutraa/hexbeat/internal/game"

type Parser interface {
	Parse(file string) (*game.Chart, error)
}
