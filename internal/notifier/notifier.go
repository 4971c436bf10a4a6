package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// retryBaseDelay is the backoff unit; attempt i waits baseDelay << i.
var retryBaseDelay = time.Second

// Notifier delivers a finished report to one sink.
type Notifier interface {
	Name() string
	Send(text string) error
}

// SendWithRetry sends through a sink with exponential backoff.
func SendWithRetry(ctx context.Context, n Notifier, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := n.Send(text); err != nil {
			lastErr = err
			backoff := retryBaseDelay << uint(i)
			log.Warn().
				Err(err).
				Str("sink", n.Name()).
				Int("attempt", i+1).
				Int("max", maxRetries+1).
				Dur("backoff", backoff).
				Msg("notification send failed")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
