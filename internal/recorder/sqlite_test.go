package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WeeklyHigh/internal/model"
)

func report(runID string, at time.Time, high float64) *model.HighReport {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recs := []model.Record{
		{Date: start, Price: 10},
		{Date: start.AddDate(0, 0, 7), Price: high},
		{Date: start.AddDate(0, 0, 14), Price: 12},
	}
	return &model.HighReport{
		RunID:         runID,
		Source:        "StockPriceCSV/spx.csv",
		Trigger:       model.TriggerScheduled,
		GeneratedAt:   at,
		Records:       recs,
		IterativeHigh: recs[1],
		RecursiveHigh: recs[1],
		LatestPrice:   12,
		Low52w:        10,
		Position52w:   0.25,
	}
}

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "runs.db"), zerolog.Nop())
	require.NoError(t, err)
	defer rec.Close()

	t0 := time.Date(2024, 12, 23, 8, 0, 0, 0, time.UTC)
	require.NoError(t, rec.RecordRun(report("run-1", t0, 18)))
	require.NoError(t, rec.RecordRun(report("run-2", t0.Add(time.Hour), 20)))

	runs, err := rec.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "run-2", runs[0].RunID)
	assert.Equal(t, "run-1", runs[1].RunID)

	got := runs[0]
	assert.True(t, t0.Add(time.Hour).Equal(got.RecordedAt))
	assert.Equal(t, model.TriggerScheduled, got.Trigger)
	assert.Equal(t, "StockPriceCSV/spx.csv", got.Source)
	assert.Equal(t, 3, got.Records)
	assert.Equal(t, "2024-01-01", got.FirstDate)
	assert.Equal(t, "2024-01-15", got.LastDate)
	assert.Equal(t, "2024-01-08", got.HighDate)
	assert.InDelta(t, 20, got.HighPrice, 1e-9)
	assert.InDelta(t, 0.25, got.Position52w, 1e-9)

	limited, err := rec.RecentRuns(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteRecorder_DuplicateRunID(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "runs.db"), zerolog.Nop())
	require.NoError(t, err)
	defer rec.Close()

	now := time.Now()
	require.NoError(t, rec.RecordRun(report("same", now, 18)))
	assert.Error(t, rec.RecordRun(report("same", now, 18)))
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordRun(report("x", time.Now(), 1)))
	runs, err := r.RecentRuns(5)
	assert.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, r.Close())
}
