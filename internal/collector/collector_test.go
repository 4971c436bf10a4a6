package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartResponse = `{
  "chart": {
    "result": [
      {
        "meta": {"currency": "EUR", "symbol": "SAP.DE", "shortName": "SAP SE", "longName": "SAP SE"},
        "timestamp": [1735776000, 1735862400, 1735948800],
        "indicators": {
          "quote": [
            {
              "open":   [100.0, null, 102.0],
              "high":   [101.0, null, 103.5],
              "low":    [99.0,  null, 101.0],
              "close":  [100.5, null, 102.5],
              "volume": [1000,  null, 1200]
            }
          ]
        }
      }
    ],
    "error": null
  }
}`

func TestYahooFetchSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v8/finance/chart/SAP.DE")
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "6mo", r.URL.Query().Get("range"))
		_, _ = w.Write([]byte(chartResponse))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL

	series, err := f.FetchSeries(context.Background(), "SAP.DE", "6mo", "1d")
	require.NoError(t, err)

	assert.Equal(t, "SAP.DE", series.Symbol)
	assert.Equal(t, "EUR", series.Currency)
	assert.Equal(t, "SAP SE", series.ShortName)

	// The null bar in the middle is dropped.
	require.Len(t, series.Bars, 2)
	assert.Equal(t, 100.5, series.Bars[0].Close)
	assert.Equal(t, 102.5, series.Bars[1].Close)
	assert.True(t, series.Bars[0].Time.Before(series.Bars[1].Time))
}

func TestYahooFetchSeriesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL

	_, err := f.FetchSeries(context.Background(), "NOPE", "6mo", "1d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestYahooFetchSeriesBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL

	_, err := f.FetchSeries(context.Background(), "AAPL", "6mo", "1d")
	assert.Error(t, err)
}

func TestMockFetcherGeneratesSeries(t *testing.T) {
	m := &MockFetcher{Price: 100}
	series, err := m.FetchSeries(context.Background(), "TEST", "6mo", "1d")
	require.NoError(t, err)
	assert.Equal(t, "TEST", series.Symbol)
	assert.Equal(t, "USD", series.Currency)
	assert.Len(t, series.Bars, 120)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &MockFetcher{Err: errors.New("upstream down")}
	f := NewBreakerFetcher(inner)

	for i := 0; i < 5; i++ {
		_, err := f.FetchSeries(context.Background(), "AAPL", "6mo", "1d")
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, f.State())

	_, err := f.FetchSeries(context.Background(), "AAPL", "6mo", "1d")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestThrottledFetcherDelegates(t *testing.T) {
	inner := &MockFetcher{Price: 50}
	f := NewThrottledFetcher(inner, 100, 1)

	series, err := f.FetchSeries(context.Background(), "MSFT", "6mo", "1d")
	require.NoError(t, err)
	assert.Equal(t, "MSFT", series.Symbol)
	assert.Equal(t, "mock", f.Name())
}
