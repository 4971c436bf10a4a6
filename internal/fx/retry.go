package fx

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryingRateSource wraps a RateSource with the same bounded fixed-delay
// retries the listing queries use.
type RetryingRateSource struct {
	inner      RateSource
	maxRetries int
	delay      time.Duration
}

// NewRetryingRateSource allows up to maxRetries attempts per pair.
func NewRetryingRateSource(inner RateSource, maxRetries int, delay time.Duration) *RetryingRateSource {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RetryingRateSource{inner: inner, maxRetries: maxRetries, delay: delay}
}

func (r *RetryingRateSource) Rate(ctx context.Context, from, to string) (float64, error) {
	var lastErr error
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		rate, err := r.inner.Rate(ctx, from, to)
		if err == nil {
			return rate, nil
		}
		lastErr = err
		log.Warn().
			Err(err).
			Str("pair", from+to).
			Int("attempt", attempt).
			Msg("fx rate lookup failed")

		if attempt < r.maxRetries {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(r.delay):
			}
		}
	}
	return 0, fmt.Errorf("fx rate lookup failed after %d attempts: %w", r.maxRetries, lastErr)
}
