package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"WeeklyHigh/internal/model"
)

// SQLiteRecorder persists run summaries to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log.With().Str("component", "recorder").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS high_runs (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       TEXT NOT NULL UNIQUE,
			timestamp    INTEGER NOT NULL,
			trigger_type TEXT,
			source       TEXT,
			records      INTEGER,
			first_date   TEXT,
			last_date    TEXT,
			high_date    TEXT,
			high_price   REAL,
			low_52w      REAL,
			position_52w REAL,
			latest_price REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_high_runs_ts ON high_runs(timestamp)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(rep *model.HighReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Summarize(rep)
	_, err := r.db.Exec(`INSERT INTO high_runs
		(run_id, timestamp, trigger_type, source, records, first_date, last_date,
		 high_date, high_price, low_52w, position_52w, latest_price)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		s.RunID, s.RecordedAt.Unix(), string(s.Trigger), s.Source, s.Records,
		s.FirstDate, s.LastDate, s.HighDate, s.HighPrice,
		s.Low52w, s.Position52w, s.LatestPrice,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (r *SQLiteRecorder) RecentRuns(limit int) ([]RunSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT run_id, timestamp, trigger_type, source, records,
		first_date, last_date, high_date, high_price, low_52w, position_52w, latest_price
		FROM high_runs ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			s       RunSummary
			ts      int64
			trigger string
		)
		if err := rows.Scan(&s.RunID, &ts, &trigger, &s.Source, &s.Records,
			&s.FirstDate, &s.LastDate, &s.HighDate, &s.HighPrice,
			&s.Low52w, &s.Position52w, &s.LatestPrice); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		s.RecordedAt = time.Unix(ts, 0)
		s.Trigger = model.Trigger(trigger)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
