package calculator

import (
	"errors"

	"WarrantSentinel/internal/model"
)

// CalculateSMA computes the simple moving average of the given prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// CalculateReturn computes the simple return over the most recent lookback
// bars: last close relative to the close lookback bars earlier.
func CalculateReturn(bars []model.OHLCV, lookback int) (float64, error) {
	if lookback <= 0 {
		return 0, errors.New("lookback must be positive")
	}
	if len(bars) < lookback+1 {
		return 0, errors.New("not enough data for return calculation")
	}
	base := bars[len(bars)-1-lookback].Close
	if base == 0 {
		return 0, errors.New("zero base close in return calculation")
	}
	return bars[len(bars)-1].Close/base - 1.0, nil
}

// ExtractCloses copies the close column out of a bar series.
func ExtractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
