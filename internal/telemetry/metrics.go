package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"WarrantSentinel/internal/model"
)

// Metrics holds the Prometheus metrics of the scanner. All methods are
// nil-safe so one-shot scans can run without telemetry.
type Metrics struct {
	ScansTotal           prometheus.Counter
	ScanDuration         prometheus.Histogram
	TickersScanned       prometheus.Counter
	TickersSkipped       prometheus.Counter
	FetchErrors          prometheus.Counter
	EligibleUnderlyings  prometheus.Gauge
	CandidatesDiscovered prometheus.Counter
	LastRunTimestamp     prometheus.Gauge
}

// NewMetrics creates and registers all scanner metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ScansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warrantsentinel_scans_total",
			Help: "Total number of completed scan runs",
		}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "warrantsentinel_scan_duration_seconds",
			Help:    "Duration of scan runs in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		}),
		TickersScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warrantsentinel_tickers_scanned_total",
			Help: "Total number of tickers analyzed across all runs",
		}),
		TickersSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warrantsentinel_tickers_skipped_total",
			Help: "Total number of tickers skipped due to data problems",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warrantsentinel_fetch_errors_total",
			Help: "Total number of market data fetch failures",
		}),
		EligibleUnderlyings: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "warrantsentinel_eligible_underlyings",
			Help: "Eligible underlyings in the most recent run",
		}),
		CandidatesDiscovered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warrantsentinel_candidates_discovered_total",
			Help: "Total number of warrant candidates surviving the prefilter",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "warrantsentinel_last_run_timestamp_seconds",
			Help: "Unix timestamp of the most recent completed run",
		}),
	}

	reg.MustRegister(
		m.ScansTotal,
		m.ScanDuration,
		m.TickersScanned,
		m.TickersSkipped,
		m.FetchErrors,
		m.EligibleUnderlyings,
		m.CandidatesDiscovered,
		m.LastRunTimestamp,
	)
	return m
}

// ObserveRun records the counters of one finished run.
func (m *Metrics) ObserveRun(report *model.RunReport) {
	if m == nil {
		return
	}
	m.ScansTotal.Inc()
	m.ScanDuration.Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())
	m.TickersScanned.Add(float64(report.TickersScanned))
	m.TickersSkipped.Add(float64(report.TickersSkipped))
	m.EligibleUnderlyings.Set(float64(report.Eligible))
	m.LastRunTimestamp.Set(float64(report.FinishedAt.Unix()))

	discovered := 0
	for _, u := range report.Underlyings {
		discovered += u.Discovered
	}
	m.CandidatesDiscovered.Add(float64(discovered))
}

// ObserveFetchError counts one failed market data fetch.
func (m *Metrics) ObserveFetchError() {
	if m == nil {
		return
	}
	m.FetchErrors.Inc()
}
