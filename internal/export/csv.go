package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"WarrantSentinel/internal/model"
)

// csvHeader is the flat column set of the CSV artifact, one row per
// instrument in the global selection. Domain columns keep the German
// vocabulary of the listing source.
var csvHeader = []string{
	"ticker", "asset_score", "asset_close", "asset_currency",
	"wkn", "name", "basispreis", "laufzeit",
	"bid", "ask", "mid", "hebel", "omega", "impl_vola",
	"spread_pct", "aufgeld_pct", "emittent", "quote_currency",
	"bezugsverhaeltnis", "days_to_maturity",
	"theta_per_day", "theta_pct_per_day",
	"breakeven", "move_needed_pct",
	"intrinsic_value", "extrinsic_value", "extrinsic_pct",
	"score_spread", "score_omega", "score_strike", "score_theta",
	"score_vola", "score_aufgeld", "score_breakeven", "score_hebel",
	"total_score", "rank",
}

// WriteCSV writes the global selection of a run as a flat CSV file.
func WriteCSV(path string, report *model.RunReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	byTicker := underlyingIndex(report)
	for _, s := range report.GlobalTop {
		if err := w.Write(csvRow(s, byTicker[s.Underlying])); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func underlyingIndex(report *model.RunReport) map[string]*model.UnderlyingResult {
	idx := make(map[string]*model.UnderlyingResult, len(report.Underlyings))
	for i := range report.Underlyings {
		idx[report.Underlyings[i].Result.Ticker] = &report.Underlyings[i].Result
	}
	return idx
}

func csvRow(s model.ScoredInstrument, u *model.UnderlyingResult) []string {
	c := s.Candidate

	ticker, assetScore, assetClose, assetCcy := s.Underlying, "", "", ""
	if u != nil {
		ticker = u.Ticker
		assetScore = strconv.Itoa(u.Score)
		assetClose = formatFloat(u.Close)
		assetCcy = u.Currency
	}

	return []string{
		ticker, assetScore, assetClose, assetCcy,
		c.WKN, c.Name, formatFloat(c.Strike), c.Maturity,
		formatFloat(c.Bid), formatFloat(c.Ask), formatFloat(c.Mid),
		formatFloat(c.Leverage), formatFloat(c.Omega), formatFloat(c.ImpliedVol),
		formatFloat(c.SpreadPct), formatFloat(c.PremiumPct),
		c.Issuer, c.Currency,
		formatFloat(c.Ratio), strconv.Itoa(c.DaysToMaturity),
		formatPtr(c.ThetaPerDay), formatPtr(c.ThetaPctPerDay),
		formatPtr(c.Breakeven), formatPtr(c.MoveNeededPct),
		formatPtr(c.Intrinsic), formatPtr(c.Extrinsic), formatPtr(c.ExtrinsicPct),
		strconv.Itoa(s.Factors.Spread), strconv.Itoa(s.Factors.Omega),
		strconv.Itoa(s.Factors.Strike), strconv.Itoa(s.Factors.Theta),
		strconv.Itoa(s.Factors.Vola), strconv.Itoa(s.Factors.Premium),
		strconv.Itoa(s.Factors.Breakeven), strconv.Itoa(s.Factors.Leverage),
		strconv.Itoa(s.TotalScore), strconv.Itoa(s.Rank),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatPtr keeps unresolved derived fields as empty cells instead of
// writing a misleading zero.
func formatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
