package collector

import (
	"context"
	"time"

	"WarrantSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price    float64
	Bars     []model.OHLCV
	Currency string
	Err      error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_ context.Context, symbol, _, _ string) (*model.PriceSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	bars := m.Bars
	if bars == nil {
		bars = GenerateMockBars(m.Price, 120)
	}
	currency := m.Currency
	if currency == "" {
		currency = "USD"
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Bars:      bars,
		Currency:  currency,
		ShortName: symbol,
		FetchedAt: time.Now(),
	}, nil
}

// GenerateMockBars builds a gently rising series around basePrice.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
