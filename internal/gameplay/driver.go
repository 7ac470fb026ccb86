package gameplay

import (
	"context"
	"sync"
	"time"
)

// FrameDriver ticks the registered loop at a fixed frame period on the
// goroutine that calls Run.
type FrameDriver struct {
	Period time.Duration
	// Frame, if set, runs after every tick, e.g. to draw.
	Frame func()

	mu   sync.Mutex
	tick func()
}

func (d *FrameDriver) Register(tick func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tick = tick
}

func (d *FrameDriver) Unregister() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tick = nil
}

func (d *FrameDriver) current() func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tick
}

// Run ticks until nothing is registered or ctx is done.
func (d *FrameDriver) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); nil != err {
			return err
		}
		tick := d.current()
		if nil == tick {
			return nil
		}

		now := time.Now()
		deadline := now.Add(d.Period)

		tick()
		if nil != d.Frame {
			d.Frame()
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			continue
		}
		timer := time.NewTimer(remaining)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
