// Package ingest loads a weekly price table into an ordered series.
package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"WeeklyHigh/internal/parser"
	"WeeklyHigh/internal/series"
)

// WindowSize is the number of weekly records a load consumes.
const WindowSize = 52

// Default column positions of the exported price table.
const (
	DefaultDateColumn  = 0
	DefaultPriceColumn = 2
)

var (
	// ErrInsufficientHistory is returned when the source holds fewer than WindowSize data lines.
	ErrInsufficientHistory = errors.New("insufficient history")
	// ErrIngestionFailed matches every *IngestionError.
	ErrIngestionFailed     = errors.New("ingestion failed")
)

// IngestionError reports the data line that aborted a load.
type IngestionError struct {
	Line int // 1-based line number in the source, header is line 1
	Err  error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("ingestion failed at line %d: %v", e.Line, e.Err)
}

func (e *IngestionError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrIngestionFailed) true for any IngestionError.
func (e *IngestionError) Is(target error) bool { return target == ErrIngestionFailed }

// Locator supplies a source path when none is given.
type Locator interface {
	Locate() (string, error)
}

// Pipeline parses rows with fixed column positions and builds a series.
type Pipeline struct {
	DateColumn  int
	PriceColumn int
	Locator     Locator
	log         zerolog.Logger
}

// NewPipeline creates a Pipeline. loc may be nil when callers always pass a path.
func NewPipeline(dateCol, priceCol int, loc Locator, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		DateColumn:  dateCol,
		PriceColumn: priceCol,
		Locator:     loc,
		log:         log.With().Str("component", "ingest").Logger(),
	}
}

// Ingest loads path, or the located default source when path is empty.
// It returns the path that was actually read.
func (p *Pipeline) Ingest(path string) (*series.Sequence, string, error) {
	if path == "" {
		if p.Locator == nil {
			return nil, "", errors.New("no source path and no locator configured")
		}
		located, err := p.Locator.Locate()
		if err != nil {
			return nil, "", fmt.Errorf("locate source: %w", err)
		}
		path = located
		p.log.Debug().Str("path", path).Msg("source located")
	}
	seq, err := p.LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	return seq, path, nil
}

// LoadFile reads the table at path.
func (p *Pipeline) LoadFile(path string) (*series.Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	seq, err := p.Load(f)
	if err != nil {
		return nil, err
	}
	p.log.Info().Str("path", path).Int("records", seq.Len()).Msg("source ingested")
	return seq, nil
}

// Load reads a header line followed by at least WindowSize data lines.
// Only the first WindowSize data lines are used.
func (p *Pipeline) Load(r io.Reader) (*series.Sequence, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return p.LoadLines(lines)
}

// LoadLines builds the series from raw lines, the first being the header.
func (p *Pipeline) LoadLines(lines []string) (*series.Sequence, error) {
	var data []string
	if len(lines) > 0 {
		data = lines[1:]
	}
	if len(data) < WindowSize {
		return nil, fmt.Errorf("%w: %d data lines, need %d", ErrInsufficientHistory, len(data), WindowSize)
	}
	if extra := len(data) - WindowSize; extra > 0 {
		p.log.Debug().Int("ignored", extra).Msg("lines beyond the weekly window ignored")
	}

	seq := series.New()
	for i, line := range data[:WindowSize] {
		rec, err := parser.ParseRow(strings.TrimSuffix(line, "\r"), p.DateColumn, p.PriceColumn)
		if err != nil {
			return nil, &IngestionError{Line: i + 2, Err: err}
		}
		seq.Insert(rec)
	}
	return seq, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
