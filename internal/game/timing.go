package game

import (
	"math"
	"time"
)

type BPMChange struct {
	Time time.Duration
	BPM  float64
}

type TimeSignature struct {
	Time        time.Duration
	Numerator   int
	Denominator int
}

type Timing struct {
	Offset         time.Duration
	BPMChanges     []BPMChange     // Sorted by Time, never empty once parsed
	TimeSignatures []TimeSignature // Sorted by Time, never empty once parsed
}

// Beat is one entry of the precomputed beat map
type Beat struct {
	Time time.Duration
	Beat float64 // Beat number within its BPM segment
	BPM  float64
}

// BPMAt returns the tempo of the last change at or before t. Times before
// the first change, negative ones included, get the first change's tempo.
func (c *Chart) BPMAt(t time.Duration) float64 {
	changes := c.Timing.BPMChanges
	if len(changes) == 0 {
		return c.Meta.BPM.Init
	}
	for i := len(changes) - 1; i >= 0; i-- {
		if changes[i].Time <= t {
			return changes[i].BPM
		}
	}
	return changes[0].BPM
}

// BeatInfo returns the beat map entry nearest to t.
func (c *Chart) BeatInfo(t time.Duration) (Beat, bool) {
	if len(c.Beats) == 0 {
		return Beat{}, false
	}
	closest := c.Beats[0]
	for _, b := range c.Beats[1:] {
		if abs(b.Time-t) < abs(closest.Time-t) {
			closest = b
		}
	}
	return closest, true
}

var snaps = [...]int{1, 2, 3, 4, 6, 8, 12, 16}

// Snap returns the beat division t falls on, 1 for a beat, 2 for an eighth,
// 3 for a triplet and so on up to 16, or -1 when t is off the grid.
func (c *Chart) Snap(t time.Duration) int {
	changes := c.Timing.BPMChanges
	if len(changes) == 0 || changes[0].BPM <= 0 {
		return -1
	}
	seg := changes[0]
	for _, ch := range changes[1:] {
		if ch.Time <= t && ch.BPM > 0 {
			seg = ch
		}
	}
	beat := float64(time.Minute) / seg.BPM
	frac := float64(t-seg.Time) / beat
	frac -= math.Floor(frac)
	for _, d := range snaps {
		x := frac * float64(d)
		off := math.Abs(x-math.Round(x)) / float64(d) * beat
		if off <= float64(2*time.Millisecond) {
			return d
		}
	}
	return -1
}

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}
