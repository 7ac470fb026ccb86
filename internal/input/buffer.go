package input

import (
	"sort"
	"sync"
)

// Buffer collects zone actuations from any device goroutine until the game
// loop drains them.
type Buffer struct {
	mu    sync.Mutex
	zones map[int]struct{}
}

func (b *Buffer) Actuate(zone int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if nil == b.zones {
		b.zones = map[int]struct{}{}
	}
	b.zones[zone] = struct{}{}
}

// DrainActuatedZones returns the actuated zones in ascending order and
// clears the buffer.
func (b *Buffer) DrainActuatedZones() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.zones) == 0 {
		return nil
	}
	zones := make([]int, 0, len(b.zones))
	for z := range b.zones {
		zones = append(zones, z)
	}
	b.zones = nil
	sort.Ints(zones)
	return zones
}

func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.zones = nil
}
