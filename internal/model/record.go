package model

import "time"

// DateLayout is the canonical day format used for display and storage.
const DateLayout = "2006-01-02"

// Record is one week's closing price.
type Record struct {
	Date  time.Time
	Price float64
}

// Day returns the record date formatted as YYYY-MM-DD.
func (r Record) Day() string { return r.Date.Format(DateLayout) }
