package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds raw price data for one ticker, ascending by time.
// Immutable once fetched; owned by the pipeline run.
type PriceSeries struct {
	Symbol    string
	Bars      []OHLCV
	Currency  string
	ShortName string
	LongName  string
	FetchedAt time.Time
}
