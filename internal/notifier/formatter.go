package notifier

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"WarrantSentinel/internal/model"
)

// FormatRunReport renders the run outcome as a Telegram HTML message.
func FormatRunReport(report *model.RunReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🎯 <b>WarrantSentinel</b> | %s\n\n", report.FinishedAt.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Typ: %s | Geprüft: %d | Geeignet: %d\n",
		strings.ToUpper(string(report.WarrantType)), report.TickersScanned, report.Eligible))

	if len(report.GlobalTop) == 0 {
		b.WriteString("\n❌ Keine Optionsscheine im Ranking.\n")
		return b.String()
	}

	b.WriteString("\n🏆 <b>Top Optionsscheine:</b>\n")
	for _, s := range report.GlobalTop {
		c := s.Candidate
		b.WriteString(fmt.Sprintf("\n%d. <b>%s</b> | %s %s (%s)\n",
			s.Rank, c.WKN, s.Underlying, strings.ToUpper(string(c.Type)), c.Issuer))
		b.WriteString(fmt.Sprintf("   Score %d | Basispreis %.2f | %d Tage\n",
			s.TotalScore, c.Strike, c.DaysToMaturity))
		b.WriteString(fmt.Sprintf("   Ask %.2f %s | Spread %.2f%% | Omega %.1f | Hebel %.1f\n",
			c.Ask, c.Currency, c.SpreadPct, c.Omega, c.Leverage))
		if s.Position.Pieces > 0 {
			b.WriteString(fmt.Sprintf("   %d Stück für %s € | Stop %.3f | Risiko %s €\n",
				s.Position.Pieces,
				humanize.CommafWithDigits(s.Position.Cost, 2),
				s.Position.Stop,
				humanize.CommafWithDigits(s.Position.Risk, 2)))
		}
	}
	return b.String()
}

// FormatStatus renders the last-run summary for the /status command.
func FormatStatus(report *model.RunReport) string {
	if report == nil {
		return "Noch kein Scan gelaufen."
	}
	return fmt.Sprintf("📊 <b>Letzter Scan</b>\n\nRun: %s\nAbgeschlossen: %s\nTyp: %s\nGeprüft: %d | Übersprungen: %d | Geeignet: %d\nScheine im Ranking: %d",
		report.RunID,
		report.FinishedAt.Format("2006-01-02 15:04"),
		strings.ToUpper(string(report.WarrantType)),
		report.TickersScanned,
		report.TickersSkipped,
		report.Eligible,
		len(report.GlobalTop))
}
