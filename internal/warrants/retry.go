package warrants

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"WarrantSentinel/internal/model"
)

// RetryingSource wraps a Source with bounded, fixed-delay retries. The
// delay stays constant between attempts; backing off further would just
// push a struggling scan past its schedule.
type RetryingSource struct {
	inner      Source
	maxRetries int
	delay      time.Duration
}

// NewRetryingSource allows up to maxRetries attempts per query.
func NewRetryingSource(inner Source, maxRetries int, delay time.Duration) *RetryingSource {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RetryingSource{inner: inner, maxRetries: maxRetries, delay: delay}
}

func (r *RetryingSource) Search(ctx context.Context, req SearchRequest) ([]model.InstrumentCandidate, error) {
	var lastErr error
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		candidates, err := r.inner.Search(ctx, req)
		if err == nil {
			return candidates, nil
		}
		lastErr = err
		log.Warn().
			Err(err).
			Str("name", req.Name).
			Str("variant", req.Label).
			Int("attempt", attempt).
			Msg("listing query failed")

		if attempt < r.maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.delay):
			}
		}
	}
	return nil, fmt.Errorf("listing query failed after %d attempts: %w", r.maxRetries, lastErr)
}
