package calculator

import (
	"errors"
	"math"

	"WarrantSentinel/internal/model"
)

// CalculateATR computes the average true range as the plain mean of the
// last `period` true ranges. The first bar has no prior close, so its
// true range is just high minus low.
func CalculateATR(bars []model.OHLCV, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < period {
		return 0, errors.New("not enough data for ATR calculation")
	}

	trs := trueRanges(bars)
	sum := 0.0
	for i := len(trs) - period; i < len(trs); i++ {
		sum += trs[i]
	}
	return sum / float64(period), nil
}

func trueRanges(bars []model.OHLCV) []float64 {
	trs := make([]float64, len(bars))
	for i, b := range bars {
		if i == 0 {
			trs[i] = b.High - b.Low
			continue
		}
		prevClose := bars[i-1].Close
		tr := b.High - b.Low
		if hc := math.Abs(b.High - prevClose); hc > tr {
			tr = hc
		}
		if lc := math.Abs(b.Low - prevClose); lc > tr {
			tr = lc
		}
		trs[i] = tr
	}
	return trs
}
