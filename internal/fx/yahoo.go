package fx

import (
	"context"
	"fmt"

	"WarrantSentinel/internal/collector"
)

// YahooRateSource reads FX rates from Yahoo currency pair tickers such as
// EURUSD=X, reusing whatever fetcher the pipeline already runs (including
// its throttling and circuit breaker).
type YahooRateSource struct {
	Fetcher collector.Fetcher
}

func (y *YahooRateSource) Rate(ctx context.Context, from, to string) (float64, error) {
	pair := fmt.Sprintf("%s%s=X", from, to)
	series, err := y.Fetcher.FetchSeries(ctx, pair, "5d", "1d")
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", pair, err)
	}
	if len(series.Bars) == 0 {
		return 0, fmt.Errorf("no bars for %s", pair)
	}
	return series.Bars[len(series.Bars)-1].Close, nil
}
