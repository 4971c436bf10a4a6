package calculator

import (
	"errors"
	"fmt"
	"math"

	"WarrantSentinel/internal/model"
)

// SnapshotWindows bundles the indicator window sizes for one snapshot run.
type SnapshotWindows struct {
	SMAShort   int
	SMALong    int
	RSI        int
	ATR        int
	ATRShort   int
	Volatility int
	Range      int
	Volume     int
	Momentum   int
}

// BuildSnapshot computes every indicator the underlying scorer reads from
// a single bar series. Bars must be in chronological order.
func BuildSnapshot(bars []model.OHLCV, w SnapshotWindows) (*model.IndicatorSnapshot, error) {
	if len(bars) == 0 {
		return nil, errors.New("no bars provided")
	}

	closes := ExtractCloses(bars)
	lastClose := closes[len(closes)-1]
	if lastClose <= 0 {
		return nil, errors.New("last close must be positive")
	}

	smaShort, err := CalculateSMA(closes, w.SMAShort)
	if err != nil {
		return nil, fmt.Errorf("sma short: %w", err)
	}
	smaLong, err := CalculateSMA(closes, w.SMALong)
	if err != nil {
		return nil, fmt.Errorf("sma long: %w", err)
	}
	rsi, err := CalculateRSI(bars, w.RSI)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}
	atr, err := CalculateATR(bars, w.ATR)
	if err != nil {
		return nil, fmt.Errorf("atr: %w", err)
	}
	atrShort, err := CalculateATR(bars, w.ATRShort)
	if err != nil {
		return nil, fmt.Errorf("atr short: %w", err)
	}
	recentVol, err := CalculateRecentVolPct(bars, w.Volatility)
	if err != nil {
		return nil, fmt.Errorf("recent volatility: %w", err)
	}
	rangePct, err := CalculateRangePct(bars, w.Range)
	if err != nil {
		return nil, fmt.Errorf("range: %w", err)
	}

	volume := bars[len(bars)-1].Volume
	volumeMean := 0.0
	if w.Volume > 0 && len(bars) >= w.Volume {
		sum := 0.0
		for i := len(bars) - w.Volume; i < len(bars); i++ {
			sum += bars[i].Volume
		}
		volumeMean = sum / float64(w.Volume)
	}

	// Close `momentum` bars back; short histories fall back to the first bar.
	backIdx := len(bars) - 1 - w.Momentum
	if backIdx < 0 {
		backIdx = 0
	}

	return &model.IndicatorSnapshot{
		Close:        roundTo(lastClose, 4),
		SMAShort:     smaShort,
		SMALong:      smaLong,
		RSI:          roundTo(rsi, 3),
		ATR:          roundTo(atr, 4),
		ATRPct:       roundTo(atr/lastClose, 6),
		ATRShort:     roundTo(atrShort, 4),
		RecentVolPct: roundTo(recentVol, 4),
		RangePct:     rangePct,
		Volume:       volume,
		VolumeMean:   volumeMean,
		CloseBack:    bars[backIdx].Close,
	}, nil
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
