package clock

import (
	"testing"
	"time"
)

func TestWallRestart(t *testing.T) {
	now := time.Unix(100, 0)
	w := &Wall{now: func() time.Time { return now }}
	w.Restart()

	now = now.Add(1500 * time.Millisecond)
	if w.Now() != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s, got %v", w.Now())
	}

	w.Restart()
	if w.Now() != 0 {
		t.Fatalf("expected 0 after restart, got %v", w.Now())
	}
}

func TestManual(t *testing.T) {
	var m Manual
	m.Set(time.Second)
	if got := m.Advance(250 * time.Millisecond); got != 1250*time.Millisecond {
		t.Fatalf("expected 1.25s, got %v", got)
	}
	if m.Now() != 1250*time.Millisecond {
		t.Fatalf("expected 1.25s, got %v", m.Now())
	}
}
