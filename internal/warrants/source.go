package warrants

import (
	"context"
	"math"

	"WarrantSentinel/internal/config"
	"WarrantSentinel/internal/model"
)

// Source finds warrant candidates for one underlying name.
type Source interface {
	Search(ctx context.Context, req SearchRequest) ([]model.InstrumentCandidate, error)
}

// DetailSource resolves per-instrument details the finder listing lacks.
type DetailSource interface {
	Details(ctx context.Context, wkn string) (*InstrumentDetails, error)
}

// InstrumentDetails carries the detail-page fields of one warrant.
type InstrumentDetails struct {
	Ratio         float64
	Currency      string
	RemainingDays int
}

// SearchRequest is one listing query.
type SearchRequest struct {
	Label     string // query plan step, for logging
	Name      string
	Type      model.WarrantType
	StrikeMin float64
	StrikeMax float64
	DaysMin   int
	DaysMax   int
	BrokerID  int // 0 queries all brokers
}

// Widening factor of the last-resort strike window.
const wideStrikeFactor = 0.15

// BuildQueryPlan returns the ordered queries for one underlying, from the
// strictest to the loosest. Discovery stops at the first query that
// yields candidates.
func BuildQueryPlan(name string, typ model.WarrantType, targetStrike float64, sc *config.ScraperConfig) []SearchRequest {
	narrowMin := math.Floor(targetStrike * (1 - sc.StrikeWindowPct))
	narrowMax := math.Floor(targetStrike * (1 + sc.StrikeWindowPct))
	wideMin := math.Floor(targetStrike * (1 - wideStrikeFactor))
	wideMax := math.Floor(targetStrike * (1 + wideStrikeFactor))

	return []SearchRequest{
		{
			Label: "Standard", Name: name, Type: typ,
			StrikeMin: narrowMin, StrikeMax: narrowMax,
			DaysMin: sc.DaysMin, DaysMax: sc.DaysMax,
			BrokerID: sc.BrokerID,
		},
		{
			Label: "Erweitert", Name: name, Type: typ,
			StrikeMin: narrowMin, StrikeMax: narrowMax,
			DaysMin: sc.DaysMin, DaysMax: sc.DaysMax,
		},
		{
			Label: "Fallback", Name: name, Type: typ,
			StrikeMin: narrowMin, StrikeMax: narrowMax,
			DaysMin: sc.DaysMinWide, DaysMax: sc.DaysMaxWide,
		},
		{
			Label: "Erweiterte Strikes", Name: name, Type: typ,
			StrikeMin: wideMin, StrikeMax: wideMax,
			DaysMin: sc.DaysMinWide, DaysMax: sc.DaysMaxWide,
		},
	}
}
