package universe

import "WarrantSentinel/internal/config"

// Resolve returns the tickers a run should scan: the configured list
// when one is set, the default universe otherwise, truncated to the
// configured limit when that is positive.
func Resolve(cfg *config.UniverseConfig) []string {
	tickers := cfg.Tickers
	if len(tickers) == 0 {
		tickers = DefaultTickers()
	}
	out := make([]string, len(tickers))
	copy(out, tickers)
	if cfg.Limit > 0 && len(out) > cfg.Limit {
		out = out[:cfg.Limit]
	}
	return out
}

// DefaultTickers returns the built-in scan universe: the major indices
// first, then German, US and European large caps with liquid warrant
// coverage.
func DefaultTickers() []string {
	return []string{
		// Indizes
		"^GDAXI", "^NDX", "^GSPC", "^STOXX50E", "^DJI", "^FTSE", "^N225",

		// Deutschland
		"SAP.DE", "SIE.DE", "IFX.DE", "ASML.AS", "SY1.DE", "BC8.DE",
		"BAYN.DE", "MRK.DE", "FRE.DE", "CBK.DE", "SRT3.DE", "QIA.DE",
		"RWE.DE", "EOAN.DE", "VOW3.DE", "P911.DE", "PAH3.DE", "RHM.DE",
		"MTX.DE", "HEI.DE", "DHER.DE", "HEN3.DE", "ALV.DE", "DBK.DE",
		"MUV2.DE", "HNR1.DE", "TKA.DE", "BMW.DE", "MBG.DE", "ADS.DE",
		"PUM.DE", "DHL.DE", "BEI.DE", "ZAL.DE", "ENR.DE",
		"BAS.DE", "LIN.DE", "1COV.DE", "HFG.DE", "WCH.DE",

		// USA: Tech & Software
		"AAPL", "MSFT", "GOOGL", "GOOG", "NVDA", "META", "AMZN", "ORCL",
		"IBM", "SHOP", "INTC", "AMD", "QCOM", "AVGO", "MU", "LRCX",
		"TXN", "AMAT", "ARM", "NXPI", "ADI", "MCHP", "ON", "ADBE",
		"CRM", "NFLX", "CSCO", "WDAY", "VEEV", "NOW", "PANW", "SNOW",
		"PLTR", "CRWD", "DDOG", "MDB",

		// USA: Healthcare
		"JNJ", "PFE", "UNH", "MRK", "ABBV", "AMGN", "LLY", "NVO",
		"BMY", "GILD", "VRTX", "REGN", "TMO", "EW", "BSX", "ABT",
		"ISRG", "MDT", "SYK", "ZBH",

		// USA: Financials
		"JPM", "BAC", "WFC", "C", "GS", "MS", "BLK", "SCHW",
		"USB", "PNC", "BK", "BRK-B", "AIG", "ALL", "PGR", "TRV", "CB",

		// USA: Energy & Industrie
		"XOM", "CVX", "COP", "MPC", "PSX", "SLB", "EOG", "KMI", "OKE",
		"BA", "CAT", "MMM", "RTX", "GE", "HON", "DE", "ETN", "EMR", "NOC",

		// USA: Konsum
		"TSLA", "MCD", "NKE", "TJX", "COST", "HD", "BKNG", "SBUX",
		"LOW", "CMG", "MAR", "RCL", "PG", "KO", "MO", "PM", "WMT",
		"PEP", "CL", "MDLZ", "GIS", "KHC", "KMB",

		// USA: Rohstoffe & Chemie
		"NEM", "FCX", "APD", "LYB", "DOW", "DD", "ECL",

		// USA: Telekom & Medien
		"T", "VZ", "DIS", "CMCSA", "CHTR", "TMUS", "WBD", "PARA",

		// USA: Versorger & REITs
		"NEE", "DUK", "SO", "EXC", "D", "AEP", "SRE", "XEL",
		"PLD", "AMT", "CCI", "EQIX", "PSA", "O", "SPG", "WELL",

		// Europa
		"MC.PA", "AIR.PA", "SU.PA", "SAN.PA", "TTE.PA", "RMS.PA",
		"OR.PA", "BNP.PA", "DG.PA", "AI.PA",
		"SHEL", "NESN.SW", "NOVN.SW", "ROG.SW",
		"ULVR.L", "AZN.L", "GSK.L", "HSBA.L", "RIO.L", "BP.L",
	}
}
