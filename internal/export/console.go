package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"WarrantSentinel/internal/model"
)

// RenderTop prints the global selection as a console table, one row per
// ranked warrant.
func RenderTop(out io.Writer, report *model.RunReport) {
	if len(report.GlobalTop) == 0 {
		fmt.Fprintln(out, "Keine Optionsscheine im Ranking.")
		return
	}

	table := tablewriter.NewWriter(out)
	table.Header("#", "WKN", "Basiswert", "Typ", "Strike", "Tage", "Ask", "Spread%", "Omega", "Hebel", "Score", "Stück", "Einsatz", "Risiko")

	for _, s := range report.GlobalTop {
		c := s.Candidate
		table.Append(
			fmt.Sprintf("%d", s.Rank),
			c.WKN,
			s.Underlying,
			strings.ToUpper(string(c.Type)),
			fmt.Sprintf("%.2f", c.Strike),
			fmt.Sprintf("%d", c.DaysToMaturity),
			fmt.Sprintf("%.2f %s", c.Ask, c.Currency),
			fmt.Sprintf("%.2f", c.SpreadPct),
			fmt.Sprintf("%.1f", c.Omega),
			fmt.Sprintf("%.1f", c.Leverage),
			fmt.Sprintf("%d", s.TotalScore),
			fmt.Sprintf("%d", s.Position.Pieces),
			humanize.CommafWithDigits(s.Position.Cost, 2),
			humanize.CommafWithDigits(s.Position.Risk, 2),
		)
	}

	table.Render()

	fmt.Fprintln(out, "  Einsatz/Risiko = Stückzahl zum Ask bei festem Budget, Risiko bis zum Stop")
}

// RenderSummary prints the run counters in one line.
func RenderSummary(out io.Writer, report *model.RunReport) {
	took := report.FinishedAt.Sub(report.StartedAt).Round(time.Second)
	fmt.Fprintf(out, "Scan %s (%s): %d Ticker geprüft, %d übersprungen, %d geeignet, %d Scheine im Ranking, Dauer %s\n",
		report.RunID,
		report.WarrantType,
		report.TickersScanned,
		report.TickersSkipped,
		report.Eligible,
		len(report.GlobalTop),
		took,
	)
}

// RenderUnderlyings prints the per-ticker verdicts with their reasons,
// eligible tickers first.
func RenderUnderlyings(out io.Writer, report *model.RunReport) {
	for _, ur := range report.Underlyings {
		r := ur.Result
		fmt.Fprintf(out, "%s  Score %d  Close %.2f %s\n", r.Ticker, r.Score, r.Close, r.Currency)
		for _, reason := range r.Reasons {
			fmt.Fprintf(out, "    %s\n", reason)
		}
	}
}
