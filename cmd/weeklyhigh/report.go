package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"WeeklyHigh/internal/model"
	"WeeklyHigh/internal/notifier"
	"WeeklyHigh/internal/scheduler"
)

type reportCmd struct {
	overrides
	notify bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print the weekly prices and their 52-week high" }
func (*reportCmd) Usage() string {
	return `weeklyhigh report [-file <csv>] [-date-col n] [-price-col n] [-notify]

  Ingests 52 weekly prices, prints them in date order and reports the
  highest price found by both the iterative and the recursive lookup.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.overrides.register(f)
	f.BoolVar(&c.notify, "notify", false, "Also send the digest to configured chats")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(c.overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer a.close()

	var chats []notifier.Notifier
	if c.notify {
		chats = a.chats()
	}
	s := scheduler.NewScheduler(ctx, a.collector(), notifier.NewConsoleNotifier(os.Stdout), chats, a.rec, a.log)
	if _, err := s.RunOnce(model.TriggerManual); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
