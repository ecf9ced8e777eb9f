package calculator

import (
	"errors"
	"math"

	"WeeklyHigh/internal/model"
)

var (
	ErrNoRecords     = errors.New("no records provided")
	ErrInvertedRange = errors.New("high must be >= low")
)

// CalculateRange returns the highest and lowest price among the most recent
// periods records. records must be in ascending date order.
func CalculateRange(records []model.Record, periods int) (high, low float64, err error) {
	if periods <= 0 {
		return 0, 0, ErrPeriod
	}
	if len(records) == 0 {
		return 0, 0, ErrNoRecords
	}
	start := max(len(records)-periods, 0)
	high, low = math.Inf(-1), math.Inf(1)
	for _, r := range records[start:] {
		high = math.Max(high, r.Price)
		low = math.Min(low, r.Price)
	}
	return high, low, nil
}

// Calculate52WeekRange covers the whole weekly window.
func Calculate52WeekRange(records []model.Record) (high, low float64, err error) {
	return CalculateRange(records, 52)
}

// Calculate4WeekRange covers roughly the last month.
func Calculate4WeekRange(records []model.Record) (high, low float64, err error) {
	return CalculateRange(records, 4)
}

// Calculate52WeekPosition returns where current sits within [low, high], clamped to 0.0~1.0.
func Calculate52WeekPosition(current, high, low float64) (float64, error) {
	switch {
	case high < low:
		return 0, ErrInvertedRange
	case high == low:
		return 0.5, nil
	}
	pos := (current - low) / (high - low)
	return math.Min(math.Max(pos, 0), 1), nil
}
