package collector

import (
	"context"
	"errors"

	"WarrantSentinel/internal/model"
)

// ErrInsufficientData marks a series too short for indicator work. The
// pipeline skips such tickers instead of failing the run.
var ErrInsufficientData = errors.New("insufficient history")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchSeries(ctx context.Context, symbol, period, interval string) (*model.PriceSeries, error)
	Name() string
}
