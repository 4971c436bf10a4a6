package model

// WarrantType distinguishes call and put warrants.
type WarrantType string

const (
	WarrantCall WarrantType = "call"
	WarrantPut  WarrantType = "put"
)

// InstrumentCandidate is one warrant returned by the listing source.
// Produced by discovery, enriched in place by the currency normalizer,
// then read-only for the scorer.
type InstrumentCandidate struct {
	WKN            string      `json:"wkn"`
	Name           string      `json:"name"`
	Issuer         string      `json:"issuer"`
	Type           WarrantType `json:"type"`
	Strike         float64     `json:"strike"`
	Maturity       string      `json:"maturity"`         // raw maturity from the source, usually DD.MM.YYYY
	DaysToMaturity int         `json:"days_to_maturity"` // 0 when unknown
	Bid            float64     `json:"bid"`
	Ask            float64     `json:"ask"`
	Mid            float64     `json:"mid"`
	SpreadPct      float64     `json:"spread_pct"`
	SpreadAbs      float64     `json:"spread_abs"`
	Leverage       float64     `json:"leverage"`
	Omega          float64     `json:"omega"`
	ImpliedVol     float64     `json:"implied_vol"` // in percent points
	PremiumPct     float64     `json:"premium_pct"` // Aufgeld
	SourceTheta    float64     `json:"source_theta,omitempty"` // raw theta from the listing, 0 when absent
	Currency       string      `json:"currency"`               // quote currency of bid/ask
	Ratio          float64     `json:"ratio"`                  // subscription ratio, 0 when unknown

	// Derived fields, set by the normalizer. The currency-dependent ones
	// are nil when the FX rate could not be resolved; a missing rate is
	// never treated as 1.
	PremiumUnderlying *float64 `json:"premium_underlying,omitempty"`
	Intrinsic         *float64 `json:"intrinsic,omitempty"`
	Extrinsic         *float64 `json:"extrinsic,omitempty"`
	ExtrinsicPct      *float64 `json:"extrinsic_pct,omitempty"`
	Breakeven         *float64 `json:"breakeven,omitempty"`
	MoveNeededPct     *float64 `json:"move_needed_pct,omitempty"`
	ThetaPerDay       *float64 `json:"theta_per_day,omitempty"`
	ThetaPctPerDay    *float64 `json:"theta_pct_per_day,omitempty"`
}

// FactorScores holds the eight per-factor sub-scores of one instrument.
type FactorScores struct {
	Spread    int `json:"spread"`
	Omega     int `json:"omega"`
	Strike    int `json:"strike"`
	Theta     int `json:"theta"`
	Vola      int `json:"vola"`
	Premium   int `json:"premium"`
	Breakeven int `json:"breakeven"`
	Leverage  int `json:"leverage"`
}

// Total sums all eight sub-scores.
func (f FactorScores) Total() int {
	return f.Spread + f.Omega + f.Strike + f.Theta + f.Vola + f.Premium + f.Breakeven + f.Leverage
}

// Position is the fixed-budget sizing for one instrument.
type Position struct {
	Pieces int     `json:"pieces"`
	Cost   float64 `json:"cost"`
	Stop   float64 `json:"stop"`
	Risk   float64 `json:"risk"`
}

// ScoredInstrument is the terminal entity of the pipeline: a candidate
// plus its score breakdown and sizing. Only produced, never mutated.
type ScoredInstrument struct {
	Underlying string              `json:"underlying"`
	Candidate  InstrumentCandidate `json:"candidate"`
	Factors    FactorScores        `json:"factors"`
	TotalScore int                 `json:"total_score"`
	Rank       int                 `json:"rank"` // 1-based rank within the selection
	Position   Position            `json:"position"`
}
