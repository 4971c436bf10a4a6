package strategy

import (
	"WarrantSentinel/internal/calculator"
	"WarrantSentinel/internal/config"
	"WarrantSentinel/internal/model"
)

// CompareWithBenchmark tiers a ticker's lookback return against the
// benchmark's. When either series is too short the comparison stays
// neutral and contributes nothing.
func CompareWithBenchmark(assetBars, benchmarkBars []model.OHLCV, rc *config.RelStrengthConfig) model.RelativeStrength {
	assetRet, err := calculator.CalculateReturn(assetBars, rc.LookbackDays)
	if err != nil {
		return model.RelativeStrength{Tier: model.TierNeutral}
	}
	benchRet, err := calculator.CalculateReturn(benchmarkBars, rc.LookbackDays)
	if err != nil {
		return model.RelativeStrength{Tier: model.TierNeutral}
	}

	// Thresholds are strict: a diff exactly at the moderate threshold
	// (default 0) still counts as underperformance.
	diff := assetRet - benchRet
	switch {
	case diff > rc.StrongOutperformance:
		return model.RelativeStrength{Value: diff, Tier: model.TierStrong, Points: rc.StrongPoints}
	case diff > rc.ModerateOutperformance:
		return model.RelativeStrength{Value: diff, Tier: model.TierModerate, Points: rc.ModeratePoints}
	default:
		return model.RelativeStrength{Value: diff, Tier: model.TierUnderperform, Points: rc.UnderperformPoints}
	}
}
