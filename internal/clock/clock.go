package clock

import (
	"sync"
	"time"
)

// Wall measures elapsed time since the last Restart.
type Wall struct {
	now   func() time.Time
	start time.Time
}

func NewWall() *Wall {
	w := &Wall{now: time.Now}
	w.Restart()
	return w
}

func (w *Wall) Restart() {
	w.start = w.now()
}

func (w *Wall) Now() time.Duration {
	return w.now().Sub(w.start)
}

// Manual only moves when told to. Replays and tests drive it.
type Manual struct {
	mu sync.Mutex
	t  time.Duration
}

func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.t
}

func (m *Manual) Set(t time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.t = t
}

func (m *Manual) Advance(d time.Duration) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.t += d
	return m.t
}
