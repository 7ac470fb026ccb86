package calibrate

import (
	"errors"
	"sort"
	"time"
)

var ErrNoPresses = errors.New("no presses detected")

type Config struct {
	Clicks     int
	Interval   time.Duration
	StartDelay time.Duration
	// Tail is how long to keep listening after the last click's interval.
	Tail time.Duration
	// Tolerance is how far a delta may sit from the median before it is
	// dropped as an outlier.
	Tolerance time.Duration
}

func DefaultConfig() Config {
	return Config{
		Clicks:     6,
		Interval:   700 * time.Millisecond,
		StartDelay: 400 * time.Millisecond,
		Tail:       500 * time.Millisecond,
		Tolerance:  100 * time.Millisecond,
	}
}

// Result is a measured latency. Deltas are press minus click, one per
// paired click, in click order.
type Result struct {
	Offset  time.Duration
	Deltas  []time.Duration
	Dropped int
}

// Measure pairs every click with its nearest press and averages the
// deltas. Presses more than half an interval from any click, presses that
// lost their click to a closer one, and deltas further than tolerance from
// the median are dropped. The offset is rounded to the millisecond.
func Measure(clicks, presses []time.Duration, interval, tolerance time.Duration) (Result, error) {
	var r Result
	paired := make([]time.Duration, len(clicks))
	has := make([]bool, len(clicks))
	for _, p := range presses {
		best := -1
		for i, c := range clicks {
			if best < 0 || abs(p-c) < abs(p-clicks[best]) {
				best = i
			}
		}
		if best < 0 || 2*abs(p-clicks[best]) > interval {
			r.Dropped++
			continue
		}
		d := p - clicks[best]
		if has[best] {
			r.Dropped++
			if abs(d) >= abs(paired[best]) {
				continue
			}
		}
		paired[best] = d
		has[best] = true
	}

	var deltas []time.Duration
	for i, ok := range has {
		if ok {
			deltas = append(deltas, paired[i])
		}
	}
	if len(deltas) == 0 {
		return r, ErrNoPresses
	}

	m := median(deltas)
	var sum time.Duration
	for _, d := range deltas {
		if abs(d-m) > tolerance {
			r.Dropped++
			continue
		}
		r.Deltas = append(r.Deltas, d)
		sum += d
	}
	if len(r.Deltas) == 0 {
		return r, ErrNoPresses
	}
	r.Offset = (sum / time.Duration(len(r.Deltas))).Round(time.Millisecond)
	return r, nil
}

func median(ds []time.Duration) time.Duration {
	sorted := append([]time.Duration(nil), ds...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func abs(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
