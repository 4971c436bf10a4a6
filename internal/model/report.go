package model

import "time"

// UnderlyingReport groups one eligible underlying with its top instruments.
type UnderlyingReport struct {
	Result     UnderlyingResult   `json:"result"`
	Discovered int                `json:"discovered"` // candidates surviving the prefilter
	Top        []ScoredInstrument `json:"top"`
}

// RunReport is the complete outcome of one scan run.
type RunReport struct {
	RunID          string             `json:"run_id"`
	StartedAt      time.Time          `json:"started_at"`
	FinishedAt     time.Time          `json:"finished_at"`
	WarrantType    WarrantType        `json:"warrant_type"`
	TickersScanned int                `json:"tickers_scanned"`
	TickersSkipped int                `json:"tickers_skipped"`
	Eligible       int                `json:"eligible"`
	Underlyings    []UnderlyingReport `json:"underlyings"`
	GlobalTop      []ScoredInstrument `json:"global_top"`
}
