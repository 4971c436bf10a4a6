package collector

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"WarrantSentinel/internal/model"
)

// BreakerFetcher wraps a Fetcher with a circuit breaker so a dead data
// source fails fast for the rest of the run instead of stalling every
// remaining ticker on timeouts.
type BreakerFetcher struct {
	inner   Fetcher
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerFetcher wraps the given fetcher. The breaker opens after five
// consecutive failures and probes again after 30 seconds.
func NewBreakerFetcher(inner Fetcher) *BreakerFetcher {
	settings := gobreaker.Settings{
		Name:    inner.Name(),
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("fetcher", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("market data circuit breaker state change")
		},
	}
	return &BreakerFetcher{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (f *BreakerFetcher) Name() string { return f.inner.Name() }

// State exposes the current breaker state.
func (f *BreakerFetcher) State() gobreaker.State { return f.breaker.State() }

func (f *BreakerFetcher) FetchSeries(ctx context.Context, symbol, period, interval string) (*model.PriceSeries, error) {
	res, err := f.breaker.Execute(func() (interface{}, error) {
		return f.inner.FetchSeries(ctx, symbol, period, interval)
	})
	if err != nil {
		return nil, err
	}
	return res.(*model.PriceSeries), nil
}
