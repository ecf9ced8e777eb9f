package collector

import "WeeklyHigh/internal/series"

// Ingester loads a weekly series from a path; an empty path means the default source.
// The returned string is the path that was actually read.
type Ingester interface {
	Ingest(path string) (*series.Sequence, string, error)
}
