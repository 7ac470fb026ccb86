package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.lost.host/meutraa/hexbeat/internal/audio"
	"git.lost.host/meutraa/hexbeat/internal/calibrate"
	"git.lost.host/meutraa/hexbeat/internal/clock"
	"git.lost.host/meutraa/hexbeat/internal/config"
	"git.lost.host/meutraa/hexbeat/internal/gameplay"
	"git.lost.host/meutraa/hexbeat/internal/input"
	hlog "git.lost.host/meutraa/hexbeat/internal/log"
)

// runCalibration plays a series of clicks and prints the latency offset
// measured from the player's presses.
func runCalibration(cfg *config.Config, logger *hlog.Logger) error {
	ccfg := calibrate.DefaultConfig()
	ccfg.Clicks = cfg.Clicks
	ccfg.Interval = cfg.Interval

	clicker, err := audio.OpenClicker()
	if nil != err {
		return err
	}
	defer clicker.Close()

	fmt.Printf("Press one of %q on every click, escape to abort.\n", cfg.Keys)
	kb, err := input.OpenKeyboard(input.Keymap(cfg.Keys), logger)
	if nil != err {
		return err
	}

	d := &gameplay.FrameDriver{Period: time.Millisecond}
	s := calibrate.NewSession(ccfg, clock.NewWall(), kb, clicker.Click, d)
	s.Log = logger

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-kb.Escape():
			cancel()
		case <-ctx.Done():
		}
	}()

	s.Start()
	err = d.Run(ctx)
	if cerr := kb.Close(); nil != cerr {
		logger.Errorf("unable to close keyboard: %v", cerr)
	}
	if errors.Is(err, context.Canceled) {
		fmt.Println("Aborted")
		return nil
	}
	if nil != err {
		return err
	}

	r, err := s.Result()
	if errors.Is(err, calibrate.ErrNoPresses) {
		fmt.Println("No presses detected, try again")
		return nil
	}
	if nil != err {
		return err
	}
	for i, delta := range r.Deltas {
		fmt.Printf("%3d)  %v\n", i+1, delta)
	}
	fmt.Printf("Measured latency: %v (%v dropped)\n", r.Offset, r.Dropped)
	fmt.Printf("Play with --offset %v\n", r.Offset)
	return nil
}
