package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WarrantSentinel/internal/model"
)

func barsFromCloses(closes ...float64) []model.OHLCV {
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

// --- SMA ---

func TestCalculateSMA(t *testing.T) {
	sma, err := CalculateSMA([]float64{1, 2, 3, 4, 5}, 5)
	require.NoError(t, err)
	assert.Equal(t, 3.0, sma)

	sma, err = CalculateSMA([]float64{1, 2, 3, 4, 5}, 2)
	require.NoError(t, err)
	assert.Equal(t, 4.5, sma)

	_, err = CalculateSMA([]float64{1, 2}, 5)
	assert.Error(t, err)

	_, err = CalculateSMA([]float64{1, 2}, 0)
	assert.Error(t, err)
}

// --- RSI ---

func TestCalculateRSIFlatSeries(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100.0
	}
	rsi, err := CalculateRSI(barsFromCloses(closes...), 14)
	require.NoError(t, err)
	assert.Equal(t, 50.0, rsi)
}

func TestCalculateRSIOnlyGains(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100.0 + float64(i)
	}
	rsi, err := CalculateRSI(barsFromCloses(closes...), 14)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rsi)
}

func TestCalculateRSIKnownSequence(t *testing.T) {
	// Changes +1, -1, +2 seed the averages; the final +1 is Wilder-smoothed:
	// avgGain = 1, avgLoss = 2/9, RS = 4.5.
	rsi, err := CalculateRSI(barsFromCloses(100, 101, 100, 102, 103), 3)
	require.NoError(t, err)
	assert.InDelta(t, 81.818, rsi, 0.01)
}

func TestCalculateRSIShortSeriesDefaults(t *testing.T) {
	rsi, err := CalculateRSI(barsFromCloses(100, 101), 14)
	require.NoError(t, err)
	assert.Equal(t, 50.0, rsi)
}

// --- ATR ---

func TestCalculateATR(t *testing.T) {
	bars := []model.OHLCV{
		{High: 10, Low: 8, Close: 9},
		{High: 12, Low: 10, Close: 11}, // gap over prior close: TR = 3
		{High: 11, Low: 9, Close: 10},
	}
	atr, err := CalculateATR(bars, 2)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, atr, 1e-9)

	atr, err = CalculateATR(bars, 3)
	require.NoError(t, err)
	assert.InDelta(t, 7.0/3.0, atr, 1e-9)

	_, err = CalculateATR(bars, 4)
	assert.Error(t, err)
}

// --- recent volatility ---

func TestCalculateRecentVolPct(t *testing.T) {
	vol, err := CalculateRecentVolPct(barsFromCloses(100, 101, 99, 102), 3)
	require.NoError(t, err)
	assert.InDelta(t, 2.5201, vol, 0.001)

	// Flat tape has zero realized volatility.
	vol, err = CalculateRecentVolPct(barsFromCloses(100, 100, 100, 100), 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, vol)

	_, err = CalculateRecentVolPct(barsFromCloses(100, 101), 3)
	assert.Error(t, err)
}

// --- range ---

func TestCalculateRangePct(t *testing.T) {
	bars := barsFromCloses(100, 104, 102)
	// Highest high 105, lowest low 99, last close 102.
	pct, err := CalculateRangePct(bars, 3)
	require.NoError(t, err)
	assert.InDelta(t, 6.0/102.0, pct, 1e-9)

	// Lookback longer than the series clamps to what is there.
	pct, err = CalculateRangePct(bars, 50)
	require.NoError(t, err)
	assert.InDelta(t, 6.0/102.0, pct, 1e-9)
}

// --- return ---

func TestCalculateReturn(t *testing.T) {
	bars := barsFromCloses(100, 102, 104, 110)
	ret, err := CalculateReturn(bars, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.10, ret, 1e-9)

	_, err = CalculateReturn(bars, 10)
	assert.Error(t, err)
}

// --- snapshot ---

func TestBuildSnapshot(t *testing.T) {
	bars := barsFromCloses(100, 101, 102, 103, 104, 105, 106, 107)
	w := SnapshotWindows{
		SMAShort:   3,
		SMALong:    5,
		RSI:        3,
		ATR:        3,
		ATRShort:   2,
		Volatility: 3,
		Range:      5,
		Volume:     3,
		Momentum:   10,
	}

	snap, err := BuildSnapshot(bars, w)
	require.NoError(t, err)

	assert.Equal(t, 107.0, snap.Close)
	assert.InDelta(t, 106.0, snap.SMAShort, 1e-9)
	assert.InDelta(t, 105.0, snap.SMALong, 1e-9)
	assert.InDelta(t, snap.ATR/snap.Close, snap.ATRPct, 1e-6)
	assert.Equal(t, 1000.0, snap.Volume)
	assert.InDelta(t, 1000.0, snap.VolumeMean, 1e-9)

	// Momentum lookback longer than the series falls back to the first bar.
	assert.Equal(t, 100.0, snap.CloseBack)
}

func TestBuildSnapshotInsufficientData(t *testing.T) {
	bars := barsFromCloses(100, 101)
	_, err := BuildSnapshot(bars, SnapshotWindows{
		SMAShort: 20, SMALong: 50, RSI: 14, ATR: 14, ATRShort: 5,
		Volatility: 14, Range: 15, Volume: 20, Momentum: 10,
	})
	assert.Error(t, err)
}
