package gameplay

import (
	"time"
)

// ClockSource yields track relative time. It must be monotonic within a
// session and must not block.
type ClockSource interface {
	Now() time.Duration
}

// Restarter is implemented by clocks that measure elapsed time from the
// moment a session starts.
type Restarter interface {
	Restart()
}

// InputSource yields the zones actuated since the previous call. Each
// actuation is returned once.
type InputSource interface {
	DrainActuatedZones() []int
}

// Transport is a prepared audio track. When a session has one, its playback
// position is the session clock.
type Transport interface {
	ClockSource
	Play() error
}

// Finisher is implemented by transports that know when their track ran out.
// A finished track counts as past the end delay.
type Finisher interface {
	Finished() bool
}

// Driver calls the registered tick once per frame.
type Driver interface {
	Register(tick func())
	Unregister()
}
