package calculator

import "WeeklyHigh/internal/model"

// CalculateRSI computes the Wilder-smoothed RSI of the closing prices.
// It needs period+1 records; with fewer it reports ErrNotEnoughData.
func CalculateRSI(records []model.Record, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrPeriod
	}
	if len(records) < period+1 {
		return 0, ErrNotEnoughData
	}

	var avgGain, avgLoss float64
	for i := 1; i < len(records); i++ {
		gain, loss := split(records[i].Price - records[i-1].Price)
		if i <= period {
			avgGain += gain / float64(period)
			avgLoss += loss / float64(period)
			continue
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100, nil
	}
	return 100 - 100/(1+avgGain/avgLoss), nil
}

func split(change float64) (gain, loss float64) {
	if change > 0 {
		return change, 0
	}
	return 0, -change
}
