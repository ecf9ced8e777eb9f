package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"WeeklyHigh/internal/model"
	"WeeklyHigh/internal/notifier"
	"WeeklyHigh/internal/scheduler"
)

type watchCmd struct {
	overrides
	runOnStart bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "re-run the weekly report on the configured cron schedule" }
func (*watchCmd) Usage() string {
	return `weeklyhigh watch [-file <csv>] [-run-on-start]

  Runs the report on schedule.weekly_cron (seconds field included) until
  interrupted. Digests go to Telegram when credentials are configured.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	c.overrides.register(f)
	f.BoolVar(&c.runOnStart, "run-on-start", os.Getenv("RUN_ON_START") == "true", "Run once immediately")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(c.overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := scheduler.NewScheduler(ctx, a.collector(), notifier.NewConsoleNotifier(os.Stdout), a.chats(), a.rec, a.log)
	if err := s.Register(a.cfg.Schedule.WeeklyCron); err != nil {
		a.log.Error().Err(err).Msg("register cron task")
		return subcommands.ExitUsageError
	}
	s.Start()
	defer s.Stop()

	if c.runOnStart {
		if _, err := s.RunOnce(model.TriggerManual); err != nil {
			a.log.Error().Err(err).Msg("initial run failed")
		}
	}

	a.log.Info().Str("cron", a.cfg.Schedule.WeeklyCron).Msg("watching, press Ctrl+C to stop")
	<-ctx.Done()
	a.log.Info().Msg("shutdown signal received, stopping")
	return subcommands.ExitSuccess
}
