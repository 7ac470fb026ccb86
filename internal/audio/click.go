package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const clickRate beep.SampleRate = 44100

// ClickGenerator is a short sine blip that fades out linearly.
type ClickGenerator struct {
	sr      beep.SampleRate
	freq    float64
	pos     int
	samples int
}

func NewClickGenerator(sr beep.SampleRate, freq float64, d time.Duration) *ClickGenerator {
	return &ClickGenerator{
		sr:      sr,
		freq:    freq,
		samples: sr.N(d),
	}
}

func (g *ClickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.samples {
		return 0, false
	}
	for n < len(samples) && g.pos < g.samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := 1 - float64(g.pos)/float64(g.samples)
		sample := 0.3 * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[n][0] = sample
		samples[n][1] = sample
		g.pos++
		n++
	}
	return n, true
}

func (g *ClickGenerator) Err() error {
	return nil
}

// Clicker plays metronome clicks on the speaker.
type Clicker struct {
	sr beep.SampleRate
}

func OpenClicker() (*Clicker, error) {
	if err := speaker.Init(clickRate, clickRate.N(time.Second/100)); nil != err {
		return nil, fmt.Errorf("unable to open speaker: %w", err)
	}
	return &Clicker{sr: clickRate}, nil
}

func (c *Clicker) Click() {
	speaker.Play(NewClickGenerator(c.sr, 1500, 40*time.Millisecond))
}

func (c *Clicker) Close() {
	speaker.Clear()
}
