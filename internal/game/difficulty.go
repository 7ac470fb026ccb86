package game

import (
	"math"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 15
)

type NoteStats struct {
	Total   int
	Regular int
	Hold    int
	Chain   int
	Multi   int
}

func (c *Chart) NoteStats() NoteStats {
	stats := NoteStats{Total: len(c.Notes)}
	for _, n := range c.Notes {
		switch n.Kind {
		case Regular:
			stats.Regular++
		case Hold:
			stats.Hold++
		case Chain:
			stats.Chain++
		case Multi:
			stats.Multi++
		}
	}
	return stats
}

// Difficulty returns the stated rating when the chart has one, otherwise an
// estimate from note density, note type mix and tempo changes.
func (c *Chart) Difficulty() int {
	if c.Meta.Difficulty != 0 {
		return c.Meta.Difficulty
	}

	stats := c.NoteStats()
	if stats.Total == 0 {
		return MinDifficulty
	}

	density := 0.0
	if seconds := c.LastNoteTime().Seconds(); seconds > 0 {
		density = float64(stats.Total) / seconds * 0.8
	}
	complexity := (float64(stats.Hold)*1.2 +
		float64(stats.Chain)*1.5 +
		float64(stats.Multi)*2) / float64(stats.Total) * 5

	bpmChanges := 0.0
	if n := len(c.Timing.BPMChanges); n > 1 {
		bpmChanges = math.Min(2, float64(n)*0.5)
	}

	d := math.Max(MinDifficulty, math.Min(MaxDifficulty, density+complexity+bpmChanges))
	return int(math.Round(d))
}
