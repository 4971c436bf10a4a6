package strategy

import (
	"fmt"

	"WarrantSentinel/internal/config"
	"WarrantSentinel/internal/model"
)

// scoreTrend awards +4 for a clean uptrend: close above the short SMA,
// short SMA above the long SMA.
func scoreTrend(snap *model.IndicatorSnapshot) (int, string) {
	if snap.Close > snap.SMAShort && snap.SMAShort > snap.SMALong {
		return 4, "✔ Aufwärtstrend (Close > SMA20 > SMA50)"
	}
	return 0, "✘ Kein sauberer Aufwärtstrend"
}

// scoreMomentum awards +3 when the close gained over the momentum lookback
// and RSI confirms without being overbought, +2 when RSI warns.
func scoreMomentum(snap *model.IndicatorSnapshot) (int, string) {
	momentumUp := snap.Close > snap.CloseBack
	rsiConfirms := snap.RSI > 50 && snap.RSI < 70

	switch {
	case momentumUp && rsiConfirms:
		return 3, fmt.Sprintf("✔ Positives Momentum + RSI(%.0f) bestätigt", snap.RSI)
	case momentumUp:
		return 2, fmt.Sprintf("⚠ Momentum ok aber RSI(%.0f) warnt", snap.RSI)
	default:
		return 0, "✘ Momentum nicht bestätigt"
	}
}

// scoreVolatility awards +3 for ATR inside the tradable band with active
// recent volatility, +2 when the tape has gone quiet, +1 above the band.
func scoreVolatility(snap *model.IndicatorSnapshot, sc *config.ScoringConfig) (int, string) {
	inBand := snap.ATRPct >= sc.ATRPctMin && snap.ATRPct <= sc.ATRPctMax

	switch {
	case inBand && snap.RecentVolPct >= sc.RecentVolActive:
		return 3, fmt.Sprintf("✔ ATR ideal + Recent Vol aktiv (%.1f%%)", snap.RecentVolPct)
	case inBand:
		return 2, fmt.Sprintf("⚠ ATR ok aber Recent Vol niedrig (%.1f%%)", snap.RecentVolPct)
	case snap.ATRPct > sc.ATRPctMax:
		return 1, fmt.Sprintf("⚠ Sehr hohe Volatilität (%.2f%%)", snap.ATRPct*100)
	default:
		return 0, fmt.Sprintf("✘ Zu wenig Volatilität (%.2f%%)", snap.ATRPct*100)
	}
}

// scoreVolume awards +2 when the last volume beats its trailing mean.
func scoreVolume(snap *model.IndicatorSnapshot) (int, string) {
	if snap.VolumeMean > 0 && snap.Volume > snap.VolumeMean {
		return 2, "✔ Volumen über Durchschnitt"
	}
	return 0, "✘ Volumen unter Durchschnitt"
}

// scoreRange penalizes a sideways market with -5; warrants bleed theta
// when the underlying refuses to move.
func scoreRange(snap *model.IndicatorSnapshot, sc *config.ScoringConfig) (int, string) {
	if snap.RangePct < sc.RangeMin {
		return -5, "✘ Seitwärtsmarkt (Theta-Gefahr)"
	}
	return 0, "✔ Genug Range, kein Seitwärtsmarkt"
}

// scoreRelativeStrength maps the already-tiered benchmark comparison to
// its points and reason line.
func scoreRelativeStrength(rel model.RelativeStrength) (int, string) {
	switch rel.Tier {
	case model.TierStrong:
		return rel.Points, fmt.Sprintf("✔ Deutlich stärker als Benchmark (%+.1f%%)", rel.Value*100)
	case model.TierModerate:
		return rel.Points, fmt.Sprintf("✔ Stärker als Benchmark (%+.1f%%)", rel.Value*100)
	case model.TierUnderperform:
		return rel.Points, fmt.Sprintf("✘ Schwächer als Benchmark (%+.1f%%)", rel.Value*100)
	default:
		return 0, "⚠ Benchmark-Vergleich nicht verfügbar"
	}
}

// scoreForecast awards analyst-target upside. A missing target stays
// neutral; forecasts sweeten a setup but never carry it.
func scoreForecast(upside *float64, fc *config.ForecastConfig) (int, string) {
	if upside == nil {
		return 0, "⚠ Kein Analystenziel verfügbar"
	}
	switch {
	case *upside >= fc.UpsideStrong:
		return fc.StrongPoints, fmt.Sprintf("✔ Analystenziel deutlich über Kurs (+%.1f%%)", *upside*100)
	case *upside >= fc.UpsideModerate:
		return fc.ModeratePoints, fmt.Sprintf("✔ Analystenziel über Kurs (+%.1f%%)", *upside*100)
	default:
		return 0, fmt.Sprintf("✘ Kein Kurspotenzial laut Analysten (%+.1f%%)", *upside*100)
	}
}
