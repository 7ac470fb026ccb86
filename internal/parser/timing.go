package parser

import (
	"math"
	"sort"
	"time"

	"git.lost.host/meutraa/hexbeat/internal/game"
	"git.lost.host/meutraa/hexbeat/internal/log"
)

const (
	// Beats are mapped this far past the last note
	beatMapTail = 10 * time.Second
	// Beat map length when the chart has no notes
	beatMapEmpty = 5 * time.Minute
	// Upper bound on generated beats, guards against absurd tempos
	maxBeats = 1 << 20
)

func ms(v float64) time.Duration {
	return time.Duration(math.Round(v * float64(time.Millisecond)))
}

// DeriveTiming builds the sorted tempo and meter lists and the beat map.
// Segments with an unusable tempo are skipped with a warning.
func DeriveTiming(doc *Document, notes []*game.Note, l *log.Logger) (game.Timing, []game.Beat) {
	timing := game.Timing{}
	if nil != doc.Timing && nil != doc.Timing.Offset {
		if off := *doc.Timing.Offset; off.Valid() {
			timing.Offset = ms(float64(off))
		} else {
			l.Warnf("timing.offset is not a number, using 0")
		}
	}

	if nil != doc.Timing && len(doc.Timing.BPMChanges) > 0 {
		for _, c := range doc.Timing.BPMChanges {
			timing.BPMChanges = append(timing.BPMChanges, game.BPMChange{Time: ms(c.Time), BPM: float64(c.BPM)})
		}
	} else {
		timing.BPMChanges = []game.BPMChange{{Time: 0, BPM: initialBPM(doc)}}
	}
	sort.SliceStable(timing.BPMChanges, func(i, j int) bool {
		return timing.BPMChanges[i].Time < timing.BPMChanges[j].Time
	})

	if nil != doc.Timing && len(doc.Timing.TimeSignatures) > 0 {
		for _, s := range doc.Timing.TimeSignatures {
			timing.TimeSignatures = append(timing.TimeSignatures, game.TimeSignature{
				Time:        ms(s.Time),
				Numerator:   s.Numerator,
				Denominator: s.Denominator,
			})
		}
	} else {
		timing.TimeSignatures = []game.TimeSignature{{Time: 0, Numerator: 4, Denominator: 4}}
	}
	sort.SliceStable(timing.TimeSignatures, func(i, j int) bool {
		return timing.TimeSignatures[i].Time < timing.TimeSignatures[j].Time
	})

	end := beatMapEmpty
	var last time.Duration
	found := false
	for _, n := range notes {
		if n.Malformed {
			continue
		}
		if !found || n.Time > last {
			last = n.Time
			found = true
		}
	}
	if found {
		end = last + beatMapTail
	}

	return timing, beatMap(timing.BPMChanges, end, l)
}

func initialBPM(doc *Document) float64 {
	if nil == doc.Meta || nil == doc.Meta.BPM {
		return 0
	}
	b := doc.Meta.BPM
	for _, v := range []float64{b.Init, b.Min} {
		if v != 0 && !math.IsNaN(v) {
			return v
		}
	}
	return b.Max
}

func beatMap(changes []game.BPMChange, end time.Duration, l *log.Logger) []game.Beat {
	beats := []game.Beat{}
	for i, change := range changes {
		segmentEnd := end
		if i+1 < len(changes) {
			segmentEnd = changes[i+1].Time
		}

		msPerBeat := 60000 / change.BPM
		if math.IsInf(msPerBeat, 0) || math.IsNaN(msPerBeat) || msPerBeat <= 0 {
			l.Warnf("invalid bpm %v at %v, skipping segment", change.BPM, change.Time)
			continue
		}

		for beat := 0; ; beat++ {
			t := change.Time + ms(float64(beat)*msPerBeat)
			if t >= segmentEnd {
				break
			}
			if len(beats) >= maxBeats {
				l.Warnf("beat map truncated at %v beats", maxBeats)
				return beats
			}
			beats = append(beats, game.Beat{Time: t, Beat: float64(beat), BPM: change.BPM})
		}
	}
	return beats
}
