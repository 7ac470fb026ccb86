package game

import (
	"time"
)

// Input is a single zone actuation, stamped with the clock time of the tick
// it was drained on.
type Input struct {
	Zone int
	Time time.Duration
}
