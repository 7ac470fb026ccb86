package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"git.lost.host/meutraa/hexbeat/internal/config"
	"git.lost.host/meutraa/hexbeat/internal/game"
	"git.lost.host/meutraa/hexbeat/internal/gameplay"
	"git.lost.host/meutraa/hexbeat/internal/grade"
	hlog "git.lost.host/meutraa/hexbeat/internal/log"
	"git.lost.host/meutraa/hexbeat/internal/parser"
	"git.lost.host/meutraa/hexbeat/internal/render"
	"git.lost.host/meutraa/hexbeat/internal/score"
	"git.lost.host/meutraa/hexbeat/internal/theme"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func run(args []string) error {
	cfg, err := config.Parse(args)
	if nil != err {
		return err
	}
	logger := hlog.New(os.Stderr, cfg.LogLevel)
	if cfg.Command == config.CommandCalibrate {
		return runCalibration(cfg, logger)
	}

	// Ensure our Default implementations are used as interfaces
	var psr parser.Parser = &parser.DefaultParser{Log: logger}
	var th theme.Theme = &theme.DefaultTheme{}

	chart, err := psr.Parse(cfg.Chart)
	if nil != err {
		return err
	}

	switch cfg.Command {
	case config.CommandValidate:
		return render.WriteSummary(os.Stdout, chart)
	case config.CommandHistory:
		return history(cfg, chart, logger)
	case config.CommandReplay:
		return replay(cfg, chart, th, logger)
	}

	p := &Program{
		Config: cfg,
		Log:    logger,
		Chart:  chart,
		Theme:  th,
		Grades: grade.DefaultTable(),
	}
	defer p.Deinit()
	if err := p.Init(); nil != err {
		return err
	}
	ended, err := p.Run()
	if nil != err {
		return err
	}
	if !ended {
		fmt.Println("Aborted")
		return nil
	}
	result, err := p.Result()
	if nil != err {
		return err
	}
	return finish(cfg, chart, th, result, p.Inputs(), logger)
}

func openHistory(cfg *config.Config, logger *hlog.Logger) (*score.History, error) {
	h, err := score.OpenHistory(cfg.Database)
	if nil != err {
		return nil, err
	}
	h.Log = logger
	return h, nil
}

// finish stores the session and prints its results.
func finish(cfg *config.Config, chart *game.Chart, th theme.Theme, result score.Snapshot, inputs []game.Input, logger *hlog.Logger) error {
	res := results(chart, th, result)

	h, err := openHistory(cfg, logger)
	if nil != err {
		logger.Warnf("scores will not be saved: %v", err)
	} else {
		defer h.Close()
		best, ok, err := h.Best(chart)
		if nil != err {
			logger.Warnf("%v", err)
		} else if ok {
			res.Best = &best
			res.NewBest = result.FinalScore > best.Snapshot.FinalScore
		}
		if err := h.Save(chart, result, cfg.Gameplay().Settings(), inputs); nil != err {
			logger.Errorf("%v", err)
		}
	}
	return render.WriteResults(os.Stdout, res)
}

func results(chart *game.Chart, th theme.Theme, result score.Snapshot) render.Results {
	entry, ok := grade.DefaultTable().Get(result.FinalGrade)
	if !ok {
		entry = grade.Entry{Name: result.FinalGrade}
	}
	return render.Results{
		Title:    chart.Meta.Title,
		Artist:   chart.Meta.Artist,
		Grade:    th.RenderGrade(entry),
		Entry:    entry,
		Snapshot: result,
	}
}

func history(cfg *config.Config, chart *game.Chart, logger *hlog.Logger) error {
	h, err := openHistory(cfg, logger)
	if nil != err {
		return err
	}
	defer h.Close()

	entries, err := h.Load(chart)
	if nil != err {
		return err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Snapshot.FinalScore > entries[j].Snapshot.FinalScore
	})
	if cfg.Limit > 0 && len(entries) > cfg.Limit {
		entries = entries[:cfg.Limit]
	}
	return render.WriteHistory(os.Stdout, chart.Meta.Title, entries)
}

// replay judges the inputs of the best stored session again.
func replay(cfg *config.Config, chart *game.Chart, th theme.Theme, logger *hlog.Logger) error {
	h, err := openHistory(cfg, logger)
	if nil != err {
		return err
	}
	defer h.Close()

	best, ok, err := h.Best(chart)
	if nil != err {
		return err
	}
	if !ok {
		return fmt.Errorf("no stored scores for %v", chart.Meta.Title)
	}

	gcfg := cfg.Gameplay()
	if nil != best.Settings {
		gcfg = gcfg.WithSettings(*best.Settings)
	} else {
		logger.Warnf("no settings stored with the score, replaying with the current ones")
	}
	result, err := gameplay.Replay(chart, gcfg, best.Inputs, cfg.ReplayFrame, gameplay.WithLogger(logger))
	if nil != err {
		return err
	}
	if result.FinalScore != best.Snapshot.FinalScore {
		logger.Warnf("replayed score %v differs from the stored %v", result.FinalScore, best.Snapshot.FinalScore)
	}
	res := results(chart, th, result)
	res.Best = &best
	return render.WriteResults(os.Stdout, res)
}
