package config

import (
	"fmt"
	"strings"
	"time"

	"git.lost.host/meutraa/hexbeat/internal/game"
	"git.lost.host/meutraa/hexbeat/internal/gameplay"
	"git.lost.host/meutraa/hexbeat/internal/log"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	CommandPlay      = "play"
	CommandValidate  = "validate"
	CommandHistory   = "history"
	CommandReplay    = "replay"
	CommandCalibrate = "calibrate"
)

const Version = "0.3.0"

type Config struct {
	Command string
	Chart   string

	Audio   string
	NoAudio bool
	Delay   time.Duration

	Zones    int
	Offset   time.Duration
	Approach time.Duration
	EndDelay time.Duration

	Keys   string
	Device string
	Codes  string

	FramePeriod time.Duration
	BarRow      uint
	Spacing     uint

	ReplayFrame time.Duration

	Clicks   int
	Interval time.Duration

	Database string
	Limit    int
	LogLevel log.Level

	level string
}

// Gameplay builds the loop configuration.
func (c *Config) Gameplay() gameplay.Config {
	return gameplay.Config{
		Zones:            c.Zones,
		ApproachDuration: c.Approach,
		LatencyOffset:    c.Offset,
		EndDelay:         c.EndDelay,
		Judgements:       game.DefaultJudgements(),
	}
}

func New() (*kingpin.Application, *Config) {
	c := &Config{}

	app := kingpin.New("hexbeat", "A terminal rhythm game")
	app.Version(Version)
	app.Flag("log-level", "debug, info, warn, error or none").Default("warn").StringVar(&c.level)
	app.Flag("db", "Score database").Default("scores.db").StringVar(&c.Database)
	app.Flag("zones", "Number of zones").Default("6").Short('z').IntVar(&c.Zones)
	app.Flag("offset", "Latency offset, notes spawn this much earlier").Default("0ms").Short('o').DurationVar(&c.Offset)
	app.Flag("approach", "How long a note is in flight").Default("1.5s").Short('a').DurationVar(&c.Approach)
	app.Flag("end-delay", "How long to keep playing past the last note").Default("2s").DurationVar(&c.EndDelay)

	play := app.Command(CommandPlay, "Play a chart").Default()
	play.Arg("chart", "Chart file (.json, .yaml)").Required().ExistingFileVar(&c.Chart)
	play.Flag("audio", "Audio file (.mp3, .ogg, .wav)").Short('A').StringVar(&c.Audio)
	play.Flag("no-audio", "Play against the wall clock").BoolVar(&c.NoAudio)
	play.Flag("delay", "Start delay").Default("1.5s").Short('d').DurationVar(&c.Delay)
	play.Flag("keys", "Keys, the n-th key targets zone n").Default("wepoiq").Short('k').StringVar(&c.Keys)
	play.Flag("device", "Read presses from a linux input device instead of the terminal").StringVar(&c.Device)
	play.Flag("codes", "Event codes for --device, the n-th code targets zone n").Default("307,308,310,305,304,311").StringVar(&c.Codes)
	play.Flag("frame-period", "Render frame period").Default("4ms").Short('p').DurationVar(&c.FramePeriod)
	play.Flag("bar-row", "Rows between the hit bar and the bottom of the terminal").Default("4").UintVar(&c.BarRow)
	play.Flag("spacing", "Columns between zones").Default("6").Short('S').UintVar(&c.Spacing)

	validate := app.Command(CommandValidate, "Validate a chart and print its summary")
	validate.Arg("chart", "Chart file (.json, .yaml)").Required().ExistingFileVar(&c.Chart)

	history := app.Command(CommandHistory, "Show stored scores for a chart")
	history.Arg("chart", "Chart file (.json, .yaml)").Required().ExistingFileVar(&c.Chart)
	history.Flag("limit", "Number of scores to show").Default("10").Short('n').IntVar(&c.Limit)

	replay := app.Command(CommandReplay, "Judge the stored inputs of the best score again")
	replay.Arg("chart", "Chart file (.json, .yaml)").Required().ExistingFileVar(&c.Chart)
	replay.Flag("frame", "Replay frame period").Default("16ms").DurationVar(&c.ReplayFrame)

	calibrate := app.Command(CommandCalibrate, "Measure input latency against a series of clicks")
	calibrate.Flag("clicks", "Number of clicks").Default("6").Short('c').IntVar(&c.Clicks)
	calibrate.Flag("interval", "Time between clicks").Default("700ms").DurationVar(&c.Interval)
	calibrate.Flag("keys", "Keys that count as a press").Default("wepoiq").Short('k').StringVar(&c.Keys)

	return app, c
}

// Parse reads the command line, args excludes the program name.
func Parse(args []string) (*Config, error) {
	app, c := New()
	command, err := app.Parse(args)
	if nil != err {
		return nil, err
	}
	c.Command = command
	c.LogLevel = log.LevelFromString(c.level)
	if err := c.validate(); nil != err {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.Zones < 1 {
		return fmt.Errorf("zones must be positive, got %v", c.Zones)
	}
	if c.Approach <= 0 {
		return fmt.Errorf("approach must be positive, got %v", c.Approach)
	}
	if c.Command == CommandCalibrate && (c.Clicks < 1 || c.Interval <= 0) {
		return fmt.Errorf("calibration needs at least one click and a positive interval")
	}
	if c.Command == CommandPlay && c.Device == "" && len([]rune(c.Keys)) < c.Zones {
		return fmt.Errorf("%v keys given for %v zones", len([]rune(c.Keys)), c.Zones)
	}
	if c.Command == CommandPlay && c.Device != "" && len(strings.Split(c.Codes, ",")) < c.Zones {
		return fmt.Errorf("not enough event codes for %v zones", c.Zones)
	}
	return nil
}
