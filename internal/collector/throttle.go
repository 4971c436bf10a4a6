package collector

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"WarrantSentinel/internal/model"
)

// ThrottledFetcher spaces requests to the data source. All pipeline
// workers share one limiter, so worker count never multiplies the
// request rate.
type ThrottledFetcher struct {
	inner   Fetcher
	limiter *rate.Limiter
}

// NewThrottledFetcher allows `rps` requests per second with the given burst.
func NewThrottledFetcher(inner Fetcher, rps float64, burst int) *ThrottledFetcher {
	return &ThrottledFetcher{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (f *ThrottledFetcher) Name() string { return f.inner.Name() }

func (f *ThrottledFetcher) FetchSeries(ctx context.Context, symbol, period, interval string) (*model.PriceSeries, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return f.inner.FetchSeries(ctx, symbol, period, interval)
}
