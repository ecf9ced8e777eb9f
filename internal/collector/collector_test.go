package collector

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WeeklyHigh/internal/model"
	"WeeklyHigh/internal/series"
)

// mockIngester returns a fixed series or error; an empty path resolves to located.
type mockIngester struct {
	seq      *series.Sequence
	err      error
	located  string
	gotPaths []string
}

func (m *mockIngester) Ingest(path string) (*series.Sequence, string, error) {
	m.gotPaths = append(m.gotPaths, path)
	if path == "" {
		path = m.located
	}
	return m.seq, path, m.err
}

func weeklySeries(n int, peakWeek int) *series.Sequence {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := series.New()
	for i := n - 1; i >= 0; i-- {
		p := 100 + float64(i%5)
		if i == peakWeek {
			p = 199.99
		}
		s.Insert(model.Record{Date: start.AddDate(0, 0, 7*i), Price: p})
	}
	return s
}

func TestCollect_WeeklyWindow(t *testing.T) {
	ing := &mockIngester{seq: weeklySeries(52, 29)}
	c := NewCollector(ing, "prices.csv", zerolog.Nop())
	fixed := time.Date(2024, 12, 24, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	rep, err := c.Collect(model.TriggerManual)
	require.NoError(t, err)

	assert.Equal(t, []string{"prices.csv"}, ing.gotPaths)
	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, "prices.csv", rep.Source)
	assert.Equal(t, model.TriggerManual, rep.Trigger)
	assert.Equal(t, fixed, rep.GeneratedAt)
	assert.Len(t, rep.Records, 52)

	assert.Equal(t, "2024-07-22", rep.IterativeHigh.Day())
	assert.InDelta(t, 199.99, rep.IterativeHigh.Price, 1e-9)
	assert.Equal(t, rep.IterativeHigh, rep.RecursiveHigh)

	assert.InDelta(t, 199.99, rep.High52w, 1e-9)
	assert.InDelta(t, 100, rep.Low52w, 1e-9)
	// week 51: 100 + 51%5
	assert.InDelta(t, 101, rep.LatestPrice, 1e-9)
	assert.InDelta(t, 104, rep.High4w, 1e-9)
	assert.Greater(t, rep.MA50w, 0.0)
	assert.Equal(t, "2024-01-01", rep.FirstDate().Format(model.DateLayout))
	assert.Equal(t, "2024-12-23", rep.LastDate().Format(model.DateLayout))
}

func TestCollect_ShortSeriesFallsBack(t *testing.T) {
	rep, err := NewCollector(&mockIngester{seq: weeklySeries(3, 1)}, "", zerolog.Nop()).Collect(model.TriggerScheduled)
	require.NoError(t, err)

	assert.InDelta(t, rep.LatestPrice, rep.MA20w, 1e-9)
	assert.InDelta(t, rep.LatestPrice, rep.MA50w, 1e-9)
	assert.Equal(t, 50.0, rep.WeeklyRSI)
}

func TestCollect_IngestError(t *testing.T) {
	ingErr := errors.New("boom")
	_, err := NewCollector(&mockIngester{err: ingErr}, "", zerolog.Nop()).Collect(model.TriggerManual)
	assert.ErrorIs(t, err, ingErr)
}

func TestCollect_EmptySeries(t *testing.T) {
	_, err := NewCollector(&mockIngester{seq: series.New()}, "", zerolog.Nop()).Collect(model.TriggerManual)
	assert.ErrorIs(t, err, series.ErrEmptySequence)
}

func TestCollect_SourceIsResolvedPath(t *testing.T) {
	ing := &mockIngester{seq: weeklySeries(52, 10), located: "StockPriceCSV/spx.csv"}
	rep, err := NewCollector(ing, "", zerolog.Nop()).Collect(model.TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, ing.gotPaths)
	assert.Equal(t, "StockPriceCSV/spx.csv", rep.Source)
}
