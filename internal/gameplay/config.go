package gameplay

import (
	"errors"
	"time"

	"git.lost.host/meutraa/hexbeat/internal/game"
	"git.lost.host/meutraa/hexbeat/internal/score"
)

type Config struct {
	// Number of zones, note zones are clamped into [0, Zones)
	Zones int
	// How long a note is in flight before its target time
	ApproachDuration time.Duration
	// Shifts spawn times earlier, read once per Start
	LatencyOffset time.Duration
	// How long past the last note the audio must run before the session ends
	EndDelay time.Duration
	// Hit windows, tightest first
	Judgements []game.Judgement
}

func DefaultConfig() Config {
	return Config{
		Zones:            6,
		ApproachDuration: 1500 * time.Millisecond,
		LatencyOffset:    0,
		EndDelay:         2 * time.Second,
		Judgements:       game.DefaultJudgements(),
	}
}

// Settings are the parts of c stored with a score.
func (c Config) Settings() score.Settings {
	return score.Settings{
		Zones:    c.Zones,
		Approach: c.ApproachDuration,
		Latency:  c.LatencyOffset,
		EndDelay: c.EndDelay,
	}
}

// WithSettings returns c with the stored settings applied. Zero values keep
// the setting from c.
func (c Config) WithSettings(s score.Settings) Config {
	if s.Zones > 0 {
		c.Zones = s.Zones
	}
	if s.Approach > 0 {
		c.ApproachDuration = s.Approach
	}
	if s.EndDelay > 0 {
		c.EndDelay = s.EndDelay
	}
	c.LatencyOffset = s.Latency
	return c
}

func (c *Config) validate() error {
	if c.Zones < 1 {
		return errors.New("at least one zone is required")
	}
	if c.ApproachDuration <= 0 {
		return errors.New("approach duration must be positive")
	}
	if len(c.Judgements) == 0 {
		return errors.New("at least one judgement window is required")
	}
	for i := 1; i < len(c.Judgements); i++ {
		if c.Judgements[i].Window < c.Judgements[i-1].Window {
			return errors.New("judgement windows must be ordered tightest first")
		}
	}
	return nil
}
