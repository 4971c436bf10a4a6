package calculator

import (
	"errors"
	"math"

	"WarrantSentinel/internal/model"
)

// CalculateRecentVolPct computes the sample standard deviation of the
// daily percentage returns over the last `window` returns, expressed in
// percent. Quiet tapes score well below 1.0, active ones above.
func CalculateRecentVolPct(bars []model.OHLCV, window int) (float64, error) {
	if window <= 1 {
		return 0, errors.New("window must be greater than 1")
	}
	if len(bars) < window+1 {
		return 0, errors.New("not enough data for volatility calculation")
	}

	returns := make([]float64, 0, window)
	for i := len(bars) - window; i < len(bars); i++ {
		prev := bars[i-1].Close
		if prev == 0 {
			return 0, errors.New("zero close in volatility calculation")
		}
		returns = append(returns, bars[i].Close/prev-1.0)
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns) - 1)

	return math.Sqrt(variance) * 100.0, nil
}
