package model

// IndicatorSnapshot holds all technical indicators for one ticker,
// computed from the same PriceSeries at the latest bar.
type IndicatorSnapshot struct {
	Close        float64 `json:"close"`
	SMAShort     float64 `json:"sma_short"`
	SMALong      float64 `json:"sma_long"`
	RSI          float64 `json:"rsi"`
	ATR          float64 `json:"atr"`
	ATRPct       float64 `json:"atr_pct"`        // ATR / close
	ATRShort     float64 `json:"atr_short"`      // short-horizon ATR used for strike targets
	RecentVolPct float64 `json:"recent_vol_pct"` // std dev of daily returns over the volatility window, in percent
	RangePct     float64 `json:"range_pct"`      // (max high - min low) / close over the range lookback
	Volume       float64 `json:"volume"`
	VolumeMean   float64 `json:"volume_mean"` // trailing 20-bar mean volume
	CloseBack    float64 `json:"close_back"`  // close `momentum_lookback` bars ago
}

// RelStrengthTier classifies a ticker's performance against the benchmark.
type RelStrengthTier string

const (
	TierStrong       RelStrengthTier = "strong"
	TierModerate     RelStrengthTier = "moderate"
	TierUnderperform RelStrengthTier = "underperform"
	// TierNeutral is used when benchmark data is missing; contributes zero.
	TierNeutral RelStrengthTier = "neutral"
)

// RelativeStrength is the outcome of comparing a ticker against the benchmark.
type RelativeStrength struct {
	Value  float64         `json:"value"` // stock return minus benchmark return over the lookback
	Tier   RelStrengthTier `json:"tier"`
	Points int             `json:"points"`
}

// UnderlyingResult is the underlying scorer's verdict for one ticker.
// Created once per ticker per run; never mutated after creation.
type UnderlyingResult struct {
	Ticker      string            `json:"ticker"`
	Close       float64           `json:"close"`
	Currency    string            `json:"currency"`
	Score       int               `json:"score"`
	Eligible    bool              `json:"eligible"`
	Reasons     []string          `json:"reasons"`
	LongStrike  float64           `json:"long_strike"`
	ShortStrike float64           `json:"short_strike"`
	Snapshot    IndicatorSnapshot `json:"snapshot"`
	RelStrength RelativeStrength  `json:"rel_strength"`

	// ForecastUpsidePct is the analyst-target upside in percent; nil when
	// no target was available.
	ForecastUpsidePct *float64 `json:"forecast_upside_pct,omitempty"`
}
