// Package recorder keeps a history of weekly high runs.
package recorder

import (
	"time"

	"WeeklyHigh/internal/model"
)

// RunSummary is one stored run.
type RunSummary struct {
	RunID       string
	RecordedAt  time.Time
	Trigger     model.Trigger
	Source      string
	Records     int
	FirstDate   string
	LastDate    string
	HighDate    string
	HighPrice   float64
	Low52w      float64
	Position52w float64
	LatestPrice float64
}

// Summarize extracts the stored fields from a report.
func Summarize(rep *model.HighReport) RunSummary {
	return RunSummary{
		RunID:       rep.RunID,
		RecordedAt:  rep.GeneratedAt,
		Trigger:     rep.Trigger,
		Source:      rep.Source,
		Records:     len(rep.Records),
		FirstDate:   rep.FirstDate().Format(model.DateLayout),
		LastDate:    rep.LastDate().Format(model.DateLayout),
		HighDate:    rep.IterativeHigh.Day(),
		HighPrice:   rep.IterativeHigh.Price,
		Low52w:      rep.Low52w,
		Position52w: rep.Position52w,
		LatestPrice: rep.LatestPrice,
	}
}

// Recorder persists run summaries for later review.
type Recorder interface {
	RecordRun(rep *model.HighReport) error
	RecentRuns(limit int) ([]RunSummary, error)
	Close() error
}
