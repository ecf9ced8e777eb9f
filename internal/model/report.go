package model

import "time"

// Trigger indicates what started a run.
type Trigger string

const (
	TriggerManual    Trigger = "MANUAL"
	TriggerScheduled Trigger = "SCHEDULED"
)

// HighReport is the result of one ingestion and maximum lookup.
type HighReport struct {
	RunID       string
	Source      string
	Trigger     Trigger
	GeneratedAt time.Time

	Records       []Record // ascending by date
	IterativeHigh Record
	RecursiveHigh Record

	LatestPrice float64
	High52w     float64
	Low52w      float64
	Position52w float64 // 0.0 ~ 1.0
	High4w      float64
	Low4w       float64
	MA20w       float64
	MA50w       float64
	WeeklyRSI   float64
}

// FirstDate returns the date of the earliest record, or the zero time when empty.
func (r *HighReport) FirstDate() time.Time {
	if len(r.Records) == 0 {
		return time.Time{}
	}
	return r.Records[0].Date
}

// LastDate returns the date of the latest record, or the zero time when empty.
func (r *HighReport) LastDate() time.Time {
	if len(r.Records) == 0 {
		return time.Time{}
	}
	return r.Records[len(r.Records)-1].Date
}
