// Package collector runs one ingestion and derives the weekly high report from it.
package collector

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"WeeklyHigh/internal/calculator"
	"WeeklyHigh/internal/model"
)

// ErrFinderMismatch means the iterative and recursive lookups disagreed.
var ErrFinderMismatch = errors.New("iterative and recursive highs differ")

// Collector orchestrates ingestion, high lookup and indicator computation.
type Collector struct {
	Ingester Ingester
	Path     string // empty: let the ingester locate the source
	now      func() time.Time
	log      zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(ing Ingester, path string, log zerolog.Logger) *Collector {
	return &Collector{
		Ingester: ing,
		Path:     path,
		now:      time.Now,
		log:      log.With().Str("component", "collector").Logger(),
	}
}

// Collect ingests the source and builds a report.
func (c *Collector) Collect(trigger model.Trigger) (*model.HighReport, error) {
	seq, source, err := c.Ingester.Ingest(c.Path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	iterative, err := calculator.FindHighIterative(seq)
	if err != nil {
		return nil, fmt.Errorf("iterative high: %w", err)
	}
	recursive, err := calculator.FindHighRecursive(seq)
	if err != nil {
		return nil, fmt.Errorf("recursive high: %w", err)
	}
	if iterative.Price != recursive.Price || !iterative.Date.Equal(recursive.Date) {
		return nil, fmt.Errorf("%w: %s %.2f vs %s %.2f", ErrFinderMismatch,
			iterative.Day(), iterative.Price, recursive.Day(), recursive.Price)
	}

	records := seq.Records()
	latest := records[len(records)-1].Price
	rep := &model.HighReport{
		RunID:         uuid.NewString(),
		Source:        source,
		Trigger:       trigger,
		GeneratedAt:   c.now(),
		Records:       records,
		IterativeHigh: iterative,
		RecursiveHigh: recursive,
		LatestPrice:   latest,
	}

	if h, l, err := calculator.Calculate52WeekRange(records); err != nil {
		c.log.Warn().Err(err).Msg("52-week range calculation failed, using latest price")
		rep.High52w, rep.Low52w = latest, latest
	} else {
		rep.High52w, rep.Low52w = h, l
	}

	if h, l, err := calculator.Calculate4WeekRange(records); err != nil {
		c.log.Warn().Err(err).Msg("4-week range calculation failed, using latest price")
		rep.High4w, rep.Low4w = latest, latest
	} else {
		rep.High4w, rep.Low4w = h, l
	}

	if pos, err := calculator.Calculate52WeekPosition(latest, rep.High52w, rep.Low52w); err != nil {
		c.log.Warn().Err(err).Msg("52-week position calculation failed")
		rep.Position52w = 0.5
	} else {
		rep.Position52w = pos
	}

	if ma, err := calculator.CalculateMA20w(records); err != nil {
		c.log.Warn().Err(err).Msg("MA20w calculation failed, using latest price")
		rep.MA20w = latest
	} else {
		rep.MA20w = ma
	}

	if ma, err := calculator.CalculateMA50w(records); err != nil {
		c.log.Warn().Err(err).Msg("MA50w calculation failed, using latest price")
		rep.MA50w = latest
	} else {
		rep.MA50w = ma
	}

	if rsi, err := calculator.CalculateRSI(records, 14); err != nil {
		c.log.Warn().Err(err).Msg("weekly RSI calculation failed, defaulting to 50")
		rep.WeeklyRSI = 50
	} else {
		rep.WeeklyRSI = rsi
	}

	c.log.Info().
		Str("run_id", rep.RunID).
		Str("source", rep.Source).
		Str("high_date", iterative.Day()).
		Float64("high", iterative.Price).
		Msg("weekly high collected")
	return rep, nil
}
