package strategy

import (
	"math"

	"WarrantSentinel/internal/config"
	"WarrantSentinel/internal/model"
)

// strikeATRFactor spaces the strike targets off the last close by this
// many short-horizon ATRs.
const strikeATRFactor = 1.5

// Input bundles everything the underlying scorer reads for one ticker.
type Input struct {
	Ticker      string
	Currency    string
	Snapshot    *model.IndicatorSnapshot
	RelStrength model.RelativeStrength

	// ForecastUpside is the analyst-target upside as a fraction of the
	// close; nil when no target was available.
	ForecastUpside *float64
}

// Engine scores underlyings against the configured thresholds.
type Engine struct {
	scoring  *config.ScoringConfig
	forecast *config.ForecastConfig
}

// NewEngine creates an engine reading the given config sections.
func NewEngine(scoring *config.ScoringConfig, forecast *config.ForecastConfig) *Engine {
	return &Engine{scoring: scoring, forecast: forecast}
}

// Evaluate computes the full verdict for one underlying. The same input
// always yields the same result.
func (e *Engine) Evaluate(in Input) *model.UnderlyingResult {
	snap := in.Snapshot
	score := 0
	reasons := make([]string, 0, 8)

	add := func(points int, reason string) {
		score += points
		reasons = append(reasons, reason)
	}

	add(scoreTrend(snap))
	add(scoreMomentum(snap))
	add(scoreVolatility(snap, e.scoring))
	add(scoreVolume(snap))
	add(scoreRange(snap, e.scoring))
	add(scoreRelativeStrength(in.RelStrength))
	add(scoreForecast(in.ForecastUpside, e.forecast))

	// Eligibility is gated on the hard filters, not just the sum: the
	// ATR band and the range floor must hold on their own.
	eligible := score >= e.scoring.MinScore &&
		snap.ATRPct >= e.scoring.ATRPctMin && snap.ATRPct <= e.scoring.ATRPctMax &&
		snap.RangePct >= e.scoring.RangeMin

	if eligible {
		reasons = append(reasons, "✅ OPTIONS-SCHEIN-TAUGLICH")
	} else {
		reasons = append(reasons, "❌ Nicht optionsschein-tauglich")
	}

	var upsidePct *float64
	if in.ForecastUpside != nil {
		pct := *in.ForecastUpside * 100
		upsidePct = &pct
	}

	return &model.UnderlyingResult{
		Ticker:            in.Ticker,
		Close:             snap.Close,
		Currency:          in.Currency,
		Score:             score,
		Eligible:          eligible,
		Reasons:           reasons,
		LongStrike:        round2(snap.Close + strikeATRFactor*snap.ATRShort),
		ShortStrike:       round2(snap.Close - strikeATRFactor*snap.ATRShort),
		Snapshot:          *snap,
		RelStrength:       in.RelStrength,
		ForecastUpsidePct: upsidePct,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
