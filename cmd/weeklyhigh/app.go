package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"WeeklyHigh/internal/collector"
	"WeeklyHigh/internal/config"
	"WeeklyHigh/internal/ingest"
	"WeeklyHigh/internal/locator"
	"WeeklyHigh/internal/logger"
	"WeeklyHigh/internal/notifier"
	"WeeklyHigh/internal/recorder"
)

var configPath = flag.String("config", defaultConfigPath(), "Path to the YAML config file")

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

// app bundles the components every subcommand needs.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	pipeline *ingest.Pipeline
	rec      recorder.Recorder
}

// overrides are command-line values that win over the config file.
type overrides struct {
	file     string
	dateCol  int
	priceCol int
}

func (o *overrides) register(f *flag.FlagSet) {
	f.StringVar(&o.file, "file", "", "CSV file to ingest (default: first file of the source directory)")
	f.IntVar(&o.dateCol, "date-col", -1, "Zero-based date column (default from config)")
	f.IntVar(&o.priceCol, "price-col", -1, "Zero-based price column (default from config)")
}

func newApp(o overrides) (*app, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.file != "" {
		cfg.Source.Path = o.file
	}
	if o.dateCol >= 0 {
		cfg.Source.DateColumn = &o.dateCol
	}
	if o.priceCol >= 0 {
		cfg.Source.PriceColumn = &o.priceCol
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		} else {
			rec = sr
		}
	}

	return &app{
		cfg:      cfg,
		log:      log,
		pipeline: ingest.NewPipeline(cfg.DateColumn(), cfg.PriceColumn(), locator.New(cfg.Source.Dir), log),
		rec:      rec,
	}, nil
}

func (a *app) collector() *collector.Collector {
	return collector.NewCollector(a.pipeline, a.cfg.Source.Path, a.log)
}

func (a *app) chats() []notifier.Notifier {
	if !a.cfg.TelegramEnabled() {
		return nil
	}
	return []notifier.Notifier{
		notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy, a.log),
	}
}

func (a *app) close() {
	if err := a.rec.Close(); err != nil {
		a.log.Warn().Err(err).Msg("close recorder")
	}
}
