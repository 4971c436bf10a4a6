package calculator

import (
	"errors"
	"math"

	"WarrantSentinel/internal/model"
)

// CalculateRangePct returns the traded range of the most recent lookback
// bars as a fraction of the last close: (highest high - lowest low) / close.
// A value near zero marks a sideways market.
func CalculateRangePct(bars []model.OHLCV, lookback int) (float64, error) {
	if lookback <= 0 {
		return 0, errors.New("lookback must be positive")
	}
	if len(bars) == 0 {
		return 0, errors.New("no bars provided")
	}
	n := len(bars)
	start := n - lookback
	if start < 0 {
		start = 0
	}
	high := math.Inf(-1)
	low := math.Inf(1)
	for i := start; i < n; i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	lastClose := bars[n-1].Close
	if lastClose <= 0 {
		return 0, errors.New("last close must be positive")
	}
	return (high - low) / lastClose, nil
}
