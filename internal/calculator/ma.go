package calculator

import (
	"errors"

	"WeeklyHigh/internal/model"
)

var (
	ErrPeriod        = errors.New("period must be positive")
	ErrNotEnoughData = errors.New("not enough data")
)

// CalculateSMA averages the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrPeriod
	}
	if len(prices) < period {
		return 0, ErrNotEnoughData
	}
	var sum float64
	for _, p := range prices[len(prices)-period:] {
		sum += p
	}
	return sum / float64(period), nil
}

// CalculateMA20w is the 20-week simple moving average.
func CalculateMA20w(records []model.Record) (float64, error) {
	return CalculateSMA(Prices(records), 20)
}

// CalculateMA50w is the 50-week simple moving average.
func CalculateMA50w(records []model.Record) (float64, error) {
	return CalculateSMA(Prices(records), 50)
}

// Prices extracts the price column.
func Prices(records []model.Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Price
	}
	return out
}
