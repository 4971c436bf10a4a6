package telemetry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WarrantSentinel/internal/model"
)

func testReport() *model.RunReport {
	return &model.RunReport{
		StartedAt:      time.Date(2026, 8, 25, 18, 0, 0, 0, time.UTC),
		FinishedAt:     time.Date(2026, 8, 25, 18, 0, 42, 0, time.UTC),
		TickersScanned: 10,
		TickersSkipped: 2,
		Eligible:       3,
		Underlyings: []model.UnderlyingReport{
			{Discovered: 5},
			{Discovered: 7},
		},
	}
}

func TestObserveRun(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveRun(testReport())
	m.ObserveRun(testReport())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ScansTotal))
	assert.Equal(t, 20.0, testutil.ToFloat64(m.TickersScanned))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.TickersSkipped))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.EligibleUnderlyings), "gauge holds the last run")
	assert.Equal(t, 24.0, testutil.ToFloat64(m.CandidatesDiscovered))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveRun(testReport())
	m.ObserveFetchError()
}

func TestServerEndpoints(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.ObserveRun(testReport())

	srv := httptest.NewServer(NewServer(":0", reg).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "warrantsentinel_scans_total 1")
	assert.Contains(t, string(body), "warrantsentinel_eligible_underlyings 3")
}
