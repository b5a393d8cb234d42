package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/colfarl/BeatTheHouse/internal/app"
	"github.com/colfarl/BeatTheHouse/internal/config"
	"github.com/colfarl/BeatTheHouse/internal/platform/logging"
)

const usageText = `usage: etl <command> [flags]

commands:
  run        load games completed since the stored watermark
  backfill   re-ingest box scores for every stored game
  loadgames  populate the game table from a season schedule
  seedteams  seed the per-season team table
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() { _ = application.Close() }()

	if err := runCommand(ctx, application, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, application *app.App, command string, args []string) error {
	switch command {
	case "run":
		report, err := application.Ingest.Run(ctx, time.Now())
		if err != nil {
			return err
		}
		application.Logger.Info("incremental run finished",
			"candidates", report.Candidates, "loaded", report.Loaded, "skipped", report.Skipped)
		return nil

	case "backfill":
		report, err := application.Ingest.Backfill(ctx)
		if err != nil {
			return err
		}
		application.Logger.Info("backfill finished",
			"candidates", report.Candidates, "loaded", report.Loaded, "skipped", report.Skipped)
		return nil

	case "loadgames":
		fs := flag.NewFlagSet("loadgames", flag.ContinueOnError)
		season := fs.Int("season", time.Now().Year(), "season year to load")
		if err := fs.Parse(args); err != nil {
			return err
		}
		inserted, err := application.GameSync.LoadSeason(ctx, *season)
		if err != nil {
			return err
		}
		application.Logger.Info("season load finished", "season", *season, "inserted", inserted)
		return nil

	case "seedteams":
		fs := flag.NewFlagSet("seedteams", flag.ContinueOnError)
		from := fs.Int("from", 2013, "first season year")
		to := fs.Int("to", time.Now().Year(), "last season year")
		if err := fs.Parse(args); err != nil {
			return err
		}
		inserted, err := application.Teams.SeedSeasons(ctx, *from, *to)
		if err != nil {
			return err
		}
		application.Logger.Info("team seed finished", "from", *from, "to", *to, "inserted", inserted)
		return nil

	default:
		fmt.Fprint(os.Stderr, usageText)
		return fmt.Errorf("unknown command %q", command)
	}
}
