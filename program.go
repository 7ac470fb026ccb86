package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"git.lost.host/meutraa/hexbeat/internal/audio"
	"git.lost.host/meutraa/hexbeat/internal/clock"
	"git.lost.host/meutraa/hexbeat/internal/config"
	"git.lost.host/meutraa/hexbeat/internal/game"
	"git.lost.host/meutraa/hexbeat/internal/gameplay"
	"git.lost.host/meutraa/hexbeat/internal/grade"
	"git.lost.host/meutraa/hexbeat/internal/input"
	hlog "git.lost.host/meutraa/hexbeat/internal/log"
	"git.lost.host/meutraa/hexbeat/internal/render"
	"git.lost.host/meutraa/hexbeat/internal/score"
	"git.lost.host/meutraa/hexbeat/internal/theme"
)

// Program is one interactive play of a chart in the terminal.
type Program struct {
	Config *config.Config
	Log    *hlog.Logger
	Chart  *game.Chart
	Theme  theme.Theme
	Grades grade.Table

	audioFile string
	transport *audio.Transport
	keyboard  *input.Keyboard
	device    interface{ Close() error }
	input     gameplay.InputSource

	renderer *render.DefaultRenderer
	field    *render.Field
	driver   *gameplay.FrameDriver
	loop     *gameplay.Loop
}

// findAudio returns the first track next to the chart.
func findAudio(dir string) (string, error) {
	var found string
	if err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		if info.IsDir() && p != dir {
			return filepath.SkipDir
		}
		switch path.Ext(info.Name()) {
		case ".ogg", ".mp3", ".wav":
			if found == "" {
				found = p
			}
		}
		return nil
	}); nil != err {
		return "", fmt.Errorf("unable to walk song directory: %w", err)
	}
	return found, nil
}

func (p *Program) Init() error {
	c := p.Config
	gcfg := c.Gameplay()

	if !c.NoAudio {
		p.audioFile = c.Audio
		if p.audioFile == "" {
			var err error
			if p.audioFile, err = findAudio(filepath.Dir(c.Chart)); nil != err {
				p.Log.Warnf("%v", err)
			}
		}
	}
	if p.audioFile != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		tr, err := audio.Prepare(ctx, p.audioFile, p.Log)
		cancel()
		if nil != err {
			p.Log.Warnf("unable to load audio, playing without it: %v", err)
		} else {
			p.transport = tr
		}
	} else {
		p.Log.Infof("no audio, playing against the wall clock")
	}

	keys := input.Keymap(c.Keys)
	if c.Device != "" {
		keys = nil
	}
	kb, err := input.OpenKeyboard(keys, p.Log)
	if nil != err {
		return err
	}
	p.keyboard = kb
	p.input = kb
	if c.Device != "" {
		codes, err := input.ParseCodes(c.Codes)
		if nil != err {
			return err
		}
		buf := &input.Buffer{}
		closer, err := input.ReadDevice(c.Device, codes, buf, p.Log)
		if nil != err {
			return err
		}
		p.device = closer
		p.input = buf
	}

	columns, rows, err := render.Size()
	if nil != err {
		return err
	}
	p.renderer = &render.DefaultRenderer{}
	p.field = render.NewField(p.renderer, p.Theme, p.Chart, gcfg.Zones, columns, rows, int(c.Spacing), int(c.BarRow))
	p.driver = &gameplay.FrameDriver{Period: c.FramePeriod}

	opts := []gameplay.Option{
		gameplay.WithDriver(p.driver),
		gameplay.WithLogger(p.Log),
		gameplay.WithGrades(p.Grades),
		gameplay.OnJudge(p.field.Judged),
	}
	if nil != p.transport {
		opts = append(opts, gameplay.WithTransport(p.transport))
	}
	p.loop, err = gameplay.New(p.Chart, &gcfg, clock.NewWall(), p.input, opts...)
	if nil != err {
		return err
	}
	if s := p.loop.Sanitized(); s.Clamped > 0 || s.Malformed > 0 {
		p.Log.Warnf("%v notes clamped, %v malformed notes skipped", s.Clamped, s.Malformed)
	}
	p.driver.Frame = func() {
		p.field.Draw(p.loop)
		if err := p.renderer.Flush(); nil != err {
			p.Log.Errorf("unable to draw: %v", err)
		}
	}
	return nil
}

// Run plays until the chart ends or the player presses escape. It returns
// false when the session was abandoned.
func (p *Program) Run() (bool, error) {
	if err := p.renderer.Init(); nil != err {
		return false, err
	}
	defer func() {
		// Restore the terminal state
		if err := p.renderer.Deinit(); nil != err {
			p.Log.Errorf("unable to restore terminal: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-p.keyboard.Escape():
			cancel()
		case <-ctx.Done():
		}
	}()

	select {
	case <-time.After(p.Config.Delay):
	case <-ctx.Done():
		return false, nil
	}

	if err := p.loop.Start(); nil != err {
		return false, err
	}
	err := p.driver.Run(ctx)
	p.loop.Stop()
	if errors.Is(err, context.Canceled) {
		return false, nil
	}
	return p.loop.State() == gameplay.Ended, err
}

func (p *Program) Result() (score.Snapshot, error) {
	return p.loop.Result()
}

func (p *Program) Inputs() []game.Input {
	return p.loop.Inputs()
}

func (p *Program) Deinit() {
	if nil != p.transport {
		p.transport.Close()
	}
	if nil != p.device {
		p.device.Close()
	}
	if nil != p.keyboard {
		if err := p.keyboard.Close(); nil != err {
			p.Log.Errorf("unable to close keyboard: %v", err)
		}
	}
}
