package fx

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// RateSource resolves a spot conversion rate between two currencies.
type RateSource interface {
	Rate(ctx context.Context, from, to string) (float64, error)
}

type cachedRate struct {
	rate    float64
	fetched time.Time
}

// Converter caches rates from a RateSource. Identical currencies convert
// at 1.0 without ever touching the source.
type Converter struct {
	source RateSource
	ttl    time.Duration

	mu    sync.Mutex
	cache map[string]cachedRate
}

// NewConverter creates a converter; resolved rates stay valid for ttl.
func NewConverter(source RateSource, ttl time.Duration) *Converter {
	return &Converter{
		source: source,
		ttl:    ttl,
		cache:  make(map[string]cachedRate),
	}
}

// Rate returns the conversion rate from one currency to another.
func (c *Converter) Rate(ctx context.Context, from, to string) (float64, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == "" || to == "" {
		return 0, fmt.Errorf("fx: missing currency (from=%q, to=%q)", from, to)
	}
	if from == to {
		return 1.0, nil
	}

	key := from + to

	c.mu.Lock()
	if entry, ok := c.cache[key]; ok && time.Since(entry.fetched) < c.ttl {
		c.mu.Unlock()
		return entry.rate, nil
	}
	c.mu.Unlock()

	rate, err := c.source.Rate(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("fx rate %s: %w", key, err)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("fx rate %s: non-positive rate %f", key, rate)
	}

	c.mu.Lock()
	c.cache[key] = cachedRate{rate: rate, fetched: time.Now()}
	c.mu.Unlock()

	return rate, nil
}

// Convert converts an amount between currencies.
func (c *Converter) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	rate, err := c.Rate(ctx, from, to)
	if err != nil {
		return 0, err
	}
	return amount * rate, nil
}
