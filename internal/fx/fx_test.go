package fx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	rate  float64
	err   error
	calls int
}

func (s *countingSource) Rate(_ context.Context, _, _ string) (float64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.rate, nil
}

func TestSameCurrencySkipsSource(t *testing.T) {
	src := &countingSource{rate: 1.08}
	conv := NewConverter(src, time.Hour)

	rate, err := conv.Rate(context.Background(), "EUR", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
	assert.Equal(t, 0, src.calls)

	// Case and whitespace do not defeat the short circuit.
	rate, err = conv.Rate(context.Background(), " eur ", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
	assert.Equal(t, 0, src.calls)
}

func TestRateCachedWithinTTL(t *testing.T) {
	src := &countingSource{rate: 1.08}
	conv := NewConverter(src, time.Hour)

	for i := 0; i < 3; i++ {
		rate, err := conv.Rate(context.Background(), "USD", "EUR")
		require.NoError(t, err)
		assert.Equal(t, 1.08, rate)
	}
	assert.Equal(t, 1, src.calls)
}

func TestRateErrorPropagates(t *testing.T) {
	src := &countingSource{err: errors.New("pair not found")}
	conv := NewConverter(src, time.Hour)

	_, err := conv.Rate(context.Background(), "USD", "CHF")
	assert.Error(t, err)
	assert.Equal(t, 1, src.calls)
}

func TestNonPositiveRateRejected(t *testing.T) {
	src := &countingSource{rate: 0}
	conv := NewConverter(src, time.Hour)

	_, err := conv.Rate(context.Background(), "USD", "EUR")
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	src := &countingSource{rate: 0.92}
	conv := NewConverter(src, time.Hour)

	amount, err := conv.Convert(context.Background(), 100, "USD", "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 92.0, amount, 1e-9)
}

type flakySource struct {
	errs  int
	rate  float64
	calls int
}

func (s *flakySource) Rate(_ context.Context, _, _ string) (float64, error) {
	s.calls++
	if s.errs > 0 {
		s.errs--
		return 0, errors.New("backend unavailable")
	}
	return s.rate, nil
}

func TestRetryingRateSourceRecovers(t *testing.T) {
	inner := &flakySource{errs: 1, rate: 1.08}
	r := NewRetryingRateSource(inner, 3, 0)

	rate, err := r.Rate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 1.08, rate)
	assert.Equal(t, 2, inner.calls)
}

func TestRetryingRateSourceBoundedAttempts(t *testing.T) {
	inner := &flakySource{errs: 99}
	r := NewRetryingRateSource(inner, 3, 0)

	_, err := r.Rate(context.Background(), "USD", "EUR")
	require.Error(t, err)
	assert.Equal(t, 3, inner.calls)
}
