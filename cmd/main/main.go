package main

import (
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/devrecap/internal/app"
	"github.com/maxbolgarin/devrecap/internal/model"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"
)

var (
	Version, Branch, Commit, BuildDate string
)

var (
	configPath = kingpin.Flag("config", "path to config file").Short('c').String()
	project    = kingpin.Flag("project", "generate one recap for this project and exit").Short('p').String()
	fromDate   = kingpin.Flag("from", "period start, YYYY-MM-DD").String()
	toDate     = kingpin.Flag("to", "period end, YYYY-MM-DD").String()
)

func main() {
	kingpin.Parse()

	var err error
	ctx := contem.New(contem.WithLogger(logze.DefaultPtr()), contem.Exit(&err))
	defer ctx.Shutdown()

	err = run(ctx)
	if err != nil {
		logze.DefaultPtr().Error("cannot run", "error", err)
	}
}

func run(ctx contem.Context) error {
	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		return erro.Wrap(err, "load config")
	}
	logze.Init(logze.C().WithConsole().WithLevel(logze.LevelDebug))

	devrecap, err := app.New(ctx, cfg)
	if err != nil {
		return erro.Wrap(err, "new app")
	}

	// One-shot mode: generate a single recap and exit
	if *project != "" {
		from, err := parseDateFlag(*fromDate)
		if err != nil {
			return erro.Wrap(err, "parse from date")
		}
		to, err := parseEndDateFlag(*toDate)
		if err != nil {
			return erro.Wrap(err, "parse to date")
		}

		id, err := devrecap.Generate(ctx, *project, from, to)
		if err != nil {
			return erro.Wrap(err, "generate recap")
		}
		logze.Info("recap generated", "id", id)
		return nil
	}

	if err := devrecap.StartServer(ctx); err != nil {
		return erro.Wrap(err, "start server")
	}

	return nil
}

func parseDateFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := model.ParseDate(value)
	if err != nil {
		return nil, err
	}
	t := date.Time
	return &t, nil
}

// parseEndDateFlag treats the end date inclusively: the bound covers the
// whole last day of the period.
func parseEndDateFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := model.ParseDate(value)
	if err != nil {
		return nil, err
	}
	t := date.EndOfDay()
	return &t, nil
}
