package gameplay

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"git.lost.host/meutraa/hexbeat/internal/game"
	"git.lost.host/meutraa/hexbeat/internal/grade"
	"git.lost.host/meutraa/hexbeat/internal/log"
	"git.lost.host/meutraa/hexbeat/internal/score"
)

type State int

const (
	Idle State = iota
	Running
	Ended
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Ended:
		return "ended"
	}
	return "unknown"
}

var (
	ErrRunning  = errors.New("session already running")
	ErrNotEnded = errors.New("session has not ended")
)

// ActiveNote is a scheduled note that has not been judged yet.
type ActiveNote struct {
	Note       *game.Note
	Index      int   // Position of the note in the chart
	Zones      []int // Clamped zones, Zones[0] is the primary zone
	TargetTime time.Duration
	SpawnedAt  time.Duration
	Progress   float64 // 0 at spawn, 1 at the judgement line

	due bool
}

func (a *ActiveNote) Zone() int {
	return a.Zones[0]
}

func (a *ActiveNote) inZone(z int) bool {
	for _, az := range a.Zones {
		if az == z {
			return true
		}
	}
	return false
}

// Judged describes one resolved note.
type Judged struct {
	Note     *game.Note
	Index    int
	Zone     int
	Grade    game.Grade
	Distance time.Duration // target - press, positive when early
	Expired  bool          // Reached the judgement line without a press
}

// Sanitized reports what New had to fix or will skip in the chart.
type Sanitized struct {
	Clamped   int
	Malformed int
}

type Option func(*Loop)

func WithTransport(t Transport) Option { return func(l *Loop) { l.transport = t } }
func WithDriver(d Driver) Option       { return func(l *Loop) { l.driver = d } }
func WithLogger(lg *log.Logger) Option { return func(l *Loop) { l.log = lg } }
func WithScorer(s score.Scorer) Option { return func(l *Loop) { l.scorer = s } }
func WithGrades(t grade.Table) Option  { return func(l *Loop) { l.grades = t } }

// OnJudge is called for every resolved note, inside the tick.
func OnJudge(f func(Judged)) Option { return func(l *Loop) { l.onJudge = f } }

// OnEnd is called once when the session ends, inside the tick.
func OnEnd(f func(score.Snapshot)) Option { return func(l *Loop) { l.onEnd = f } }

// Loop runs one chart. Every method must be called from the goroutine that
// drives Tick.
type Loop struct {
	chart     *game.Chart
	cfg       *Config
	clock     ClockSource
	input     InputSource
	transport Transport
	driver    Driver
	scorer    score.Scorer
	grades    grade.Table
	log       *log.Logger
	onJudge   func(Judged)
	onEnd     func(score.Snapshot)

	zones      [][]int // Clamped zones per chart note
	sanitized  Sanitized
	endTime    time.Duration
	state      State
	registered bool

	// Session state, reset by Start
	latency   time.Duration
	index     int
	active    []*ActiveNote
	scheduled int
	inputs    []game.Input
	result    score.Snapshot
}

// New prepares a session. cfg is kept by reference, so a latency change is
// picked up by the next Start.
func New(chart *game.Chart, cfg *Config, clock ClockSource, input InputSource, opts ...Option) (*Loop, error) {
	if err := cfg.validate(); nil != err {
		return nil, fmt.Errorf("invalid gameplay config: %w", err)
	}
	l := &Loop{
		chart:  chart,
		cfg:    cfg,
		clock:  clock,
		input:  input,
		scorer: &score.DefaultScorer{},
		grades: grade.DefaultTable(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if nil == clock {
		return nil, errors.New("a clock is required")
	}

	l.zones = make([][]int, len(chart.Notes))
	for i, n := range chart.Notes {
		if n.Malformed {
			l.sanitized.Malformed++
			continue
		}
		zones := make([]int, len(n.Zones))
		for j, z := range n.Zones {
			switch {
			case z < 0:
				zones[j] = 0
			case z >= cfg.Zones:
				zones[j] = cfg.Zones - 1
			default:
				zones[j] = z
			}
			if zones[j] != z {
				l.log.Warnf("note %d has invalid zone %d, clamped to %d", i, z, zones[j])
				l.sanitized.Clamped++
			}
		}
		l.zones[i] = zones
	}
	l.endTime = chart.LastNoteTime() + cfg.EndDelay

	return l, nil
}

func (l *Loop) Sanitized() Sanitized { return l.sanitized }
func (l *Loop) State() State         { return l.state }
func (l *Loop) Scorer() score.Scorer { return l.scorer }

// Scheduled is the number of notes scheduled in the current session.
func (l *Loop) Scheduled() int { return l.scheduled }

// Inputs returns the actuations recorded in the current session.
func (l *Loop) Inputs() []game.Input {
	return append([]game.Input(nil), l.inputs...)
}

// Active returns a copy of the in-flight notes.
func (l *Loop) Active() []ActiveNote {
	active := make([]ActiveNote, len(l.active))
	for i, a := range l.active {
		active[i] = *a
	}
	return active
}

func (l *Loop) Result() (score.Snapshot, error) {
	if l.state != Ended {
		return score.Snapshot{}, ErrNotEnded
	}
	return l.result, nil
}

// Now is the session clock, the transport position when audio is playing.
func (l *Loop) Now() time.Duration {
	if nil != l.transport {
		return l.transport.Now()
	}
	return l.clock.Now()
}

func (l *Loop) Start() error {
	if l.state == Running {
		return ErrRunning
	}

	l.index = 0
	l.active = nil
	l.scheduled = 0
	l.inputs = nil
	l.result = score.Snapshot{}
	l.scorer.Reset()
	l.latency = l.cfg.LatencyOffset

	if r, ok := l.clock.(Restarter); ok {
		r.Restart()
	}
	if nil != l.transport {
		if err := l.transport.Play(); nil != err {
			l.log.Warnf("unable to play audio, continuing without it: %v", err)
			l.transport = nil
		}
	}

	l.state = Running
	if nil != l.driver && !l.registered {
		l.driver.Register(l.Tick)
		l.registered = true
	}
	return nil
}

// Stop detaches the loop from its driver. It is safe to call at any time,
// any number of times.
func (l *Loop) Stop() {
	if l.state == Running {
		l.state = Idle
	}
	l.unregister()
}

func (l *Loop) unregister() {
	if nil != l.driver && l.registered {
		l.driver.Unregister()
		l.registered = false
	}
}

// Tick advances the session by one frame.
func (l *Loop) Tick() {
	if l.state != Running {
		return
	}

	now := l.Now()
	l.schedule(now)
	l.advance(now)
	l.resolveInput(now)
	l.expire()
	l.checkEnd(now)
}

func (l *Loop) schedule(now time.Duration) {
	notes := l.chart.Notes
	for l.index < len(notes) {
		n := notes[l.index]
		if n.Malformed {
			l.log.Warnf("skipping malformed note %d", l.index)
			l.index++
			continue
		}
		spawn := n.Time - l.cfg.ApproachDuration - l.latency
		if spawn > now {
			return
		}
		l.active = append(l.active, &ActiveNote{
			Note:       n,
			Index:      l.index,
			Zones:      l.zones[l.index],
			TargetTime: n.Time,
			SpawnedAt:  now,
		})
		l.scheduled++
		l.index++
	}
}

func (l *Loop) advance(now time.Duration) {
	approach := l.cfg.ApproachDuration
	for _, a := range l.active {
		a.Progress = float64(now-(a.TargetTime-approach)) / float64(approach)
		a.due = now >= a.TargetTime
	}
}

func (l *Loop) resolveInput(now time.Duration) {
	if nil == l.input {
		return
	}
	zones := l.input.DrainActuatedZones()
	if len(zones) == 0 {
		return
	}
	zones = unique(zones)
	for _, z := range zones {
		l.inputs = append(l.inputs, game.Input{Zone: z, Time: now})
		l.tryHit(z, now)
	}
}

// tryHit judges the note in zone z closest to now. A press with no note in
// flight in that zone does nothing.
func (l *Loop) tryHit(z int, now time.Duration) {
	best := -1
	var bestDistance time.Duration
	for i, a := range l.active {
		if !a.inZone(z) {
			continue
		}
		d := abs(a.TargetTime - now)
		if best < 0 || d < bestDistance {
			best = i
			bestDistance = d
		}
	}
	if best < 0 {
		return
	}

	a := l.active[best]
	l.remove(best)
	j := Judge(a.TargetTime-now, l.cfg.Judgements)
	l.apply(j, Judged{
		Note:     a.Note,
		Index:    a.Index,
		Zone:     z,
		Grade:    j.Grade,
		Distance: a.TargetTime - now,
	})
}

// expire misses every note that reached the judgement line this tick
// without being hit.
func (l *Loop) expire() {
	kept := l.active[:0]
	for _, a := range l.active {
		if !a.due {
			kept = append(kept, a)
			continue
		}
		l.apply(game.Judgement{Grade: game.Miss}, Judged{
			Note:    a.Note,
			Index:   a.Index,
			Zone:    a.Zone(),
			Grade:   game.Miss,
			Expired: true,
		})
	}
	for i := len(kept); i < len(l.active); i++ {
		l.active[i] = nil
	}
	l.active = kept
}

func (l *Loop) remove(i int) {
	copy(l.active[i:], l.active[i+1:])
	l.active[len(l.active)-1] = nil
	l.active = l.active[:len(l.active)-1]
}

func (l *Loop) apply(j game.Judgement, judged Judged) {
	if j.Grade == game.Miss {
		l.scorer.Miss()
	} else {
		l.scorer.AddHit(j.Points)
		l.scorer.RegisterGrade(j.Grade)
	}
	l.log.Debugf("note %d zone %d: %v (%v)", judged.Index, judged.Zone, judged.Grade, judged.Distance)
	if nil != l.onJudge {
		l.onJudge(judged)
	}
}

func (l *Loop) checkEnd(now time.Duration) {
	if l.index < len(l.chart.Notes) || len(l.active) > 0 {
		return
	}
	if nil != l.transport && now < l.endTime && !l.trackFinished() {
		return
	}

	l.state = Ended
	l.result = l.snapshot()
	l.unregister()
	l.log.Infof("session ended: %v %v", l.result.FinalGrade, l.result.FinalScore)
	if nil != l.onEnd {
		l.onEnd(l.result)
	}
}

func (l *Loop) trackFinished() bool {
	f, ok := l.transport.(Finisher)
	return ok && f.Finished()
}

func (l *Loop) snapshot() score.Snapshot {
	state := l.scorer.State()
	accuracy := l.scorer.Accuracy()
	g := l.grades.Lookup(accuracy)
	return score.Snapshot{
		Score:      state.Score,
		MaxCombo:   state.MaxCombo,
		Accuracy:   accuracy,
		Grades:     state.Grades,
		FinalGrade: g.Name,
		FinalScore: l.grades.FinalScore(state.Score, g.Name),
	}
}

func unique(zones []int) []int {
	sort.Ints(zones)
	out := zones[:0]
	for _, z := range zones {
		if len(out) == 0 || out[len(out)-1] != z {
			out = append(out, z)
		}
	}
	return out
}
