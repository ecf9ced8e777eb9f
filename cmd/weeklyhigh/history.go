package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"WeeklyHigh/internal/recorder"
)

type historyCmd struct {
	limit int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list recorded runs, newest first" }
func (*historyCmd) Usage() string {
	return `weeklyhigh history [-n 10]

  Lists runs stored in database.sqlite_path.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 10, "Number of runs to show")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(overrides{dateCol: -1, priceCol: -1})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer a.close()

	if a.cfg.Database.SQLitePath == "" {
		fmt.Fprintln(os.Stderr, "Error: database.sqlite_path is not configured")
		return subcommands.ExitUsageError
	}
	runs, err := a.rec.RecentRuns(c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printRuns(os.Stdout, runs)
	return subcommands.ExitSuccess
}

func printRuns(w io.Writer, runs []recorder.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "no runs recorded")
		return
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %-9s  %s..%s  high $%.2f on %s  latest $%.2f  %s\n",
			r.RecordedAt.Format("2006-01-02 15:04"), r.Trigger, r.FirstDate, r.LastDate,
			r.HighPrice, r.HighDate, r.LatestPrice, r.RunID)
	}
}
