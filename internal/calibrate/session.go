package calibrate

import (
	"time"

	"git.lost.host/meutraa/hexbeat/internal/gameplay"
	"git.lost.host/meutraa/hexbeat/internal/log"
)

// Session plays the clicks and records presses, one check per tick.
type Session struct {
	Log *log.Logger

	cfg    Config
	clock  gameplay.ClockSource
	input  gameplay.InputSource
	click  func()
	driver gameplay.Driver

	next    int
	clicks  []time.Duration
	presses []time.Duration
	done    bool
}

func NewSession(cfg Config, clock gameplay.ClockSource, input gameplay.InputSource, click func(), driver gameplay.Driver) *Session {
	return &Session{
		cfg:    cfg,
		clock:  clock,
		input:  input,
		click:  click,
		driver: driver,
	}
}

func (s *Session) Start() {
	s.next = 0
	s.clicks = nil
	s.presses = nil
	s.done = false
	if r, ok := s.clock.(gameplay.Restarter); ok {
		r.Restart()
	}
	s.driver.Register(s.Tick)
}

func (s *Session) Tick() {
	if s.done {
		return
	}
	now := s.clock.Now()
	if s.next < s.cfg.Clicks && now >= s.cfg.StartDelay+time.Duration(s.next)*s.cfg.Interval {
		s.click()
		s.clicks = append(s.clicks, now)
		s.next++
		s.Log.Debugf("click %d at %v", s.next, now)
	}
	if zones := s.input.DrainActuatedZones(); len(zones) > 0 {
		s.presses = append(s.presses, now)
		s.Log.Debugf("press at %v", now)
	}
	if now >= s.cfg.StartDelay+time.Duration(s.cfg.Clicks)*s.cfg.Interval+s.cfg.Tail {
		s.done = true
		s.driver.Unregister()
	}
}

func (s *Session) Done() bool { return s.done }

func (s *Session) Result() (Result, error) {
	return Measure(s.clicks, s.presses, s.cfg.Interval, s.cfg.Tolerance)
}
