package strategy

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"WarrantSentinel/internal/config"
	"WarrantSentinel/internal/model"
)

func defaultScoring() *config.ScoringConfig {
	return &config.ScoringConfig{
		MinScore:         12,
		ATRPctMin:        0.02,
		ATRPctMax:        0.05,
		RangeMin:         0.025,
		RecentVolActive:  0.8,
		MomentumLookback: 10,
		RelativeStrength: config.RelStrengthConfig{
			Benchmark:              "^GSPC",
			LookbackDays:           20,
			StrongOutperformance:   0.05,
			ModerateOutperformance: 0.0,
			StrongPoints:           2,
			ModeratePoints:         1,
			UnderperformPoints:     0,
		},
	}
}

func defaultForecast() *config.ForecastConfig {
	return &config.ForecastConfig{
		TimeoutSec:     5,
		UpsideStrong:   0.10,
		UpsideModerate: 0.05,
		StrongPoints:   2,
		ModeratePoints: 1,
	}
}

func textbookSnapshot() *model.IndicatorSnapshot {
	return &model.IndicatorSnapshot{
		Close:        100,
		SMAShort:     98,
		SMALong:      95,
		RSI:          60,
		ATR:          3,
		ATRPct:       0.03,
		ATRShort:     2,
		RecentVolPct: 1.2,
		RangePct:     0.03,
		Volume:       2000,
		VolumeMean:   1500,
		CloseBack:    97,
	}
}

func TestEvaluate_TextbookSetup(t *testing.T) {
	e := NewEngine(defaultScoring(), defaultForecast())
	res := e.Evaluate(Input{
		Ticker:      "SAP.DE",
		Currency:    "EUR",
		Snapshot:    textbookSnapshot(),
		RelStrength: model.RelativeStrength{Tier: model.TierNeutral},
	})

	// Trend 4 + momentum 3 + volatility 3 + volume 2, no range penalty,
	// neutral benchmark and missing forecast contribute nothing.
	if res.Score != 12 {
		t.Fatalf("expected score 12, got %d (reasons: %v)", res.Score, res.Reasons)
	}
	if !res.Eligible {
		t.Error("expected eligible result")
	}
	if res.LongStrike != 103.0 {
		t.Errorf("expected long strike 103.00, got %.2f", res.LongStrike)
	}
	if res.ShortStrike != 97.0 {
		t.Errorf("expected short strike 97.00, got %.2f", res.ShortStrike)
	}
	if len(res.Reasons) != 8 {
		t.Errorf("expected 7 factor reasons plus verdict, got %d", len(res.Reasons))
	}
	if res.Reasons[len(res.Reasons)-1] != "✅ OPTIONS-SCHEIN-TAUGLICH" {
		t.Errorf("unexpected verdict line: %s", res.Reasons[len(res.Reasons)-1])
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	e := NewEngine(defaultScoring(), defaultForecast())
	in := Input{
		Ticker:      "AAPL",
		Currency:    "USD",
		Snapshot:    textbookSnapshot(),
		RelStrength: model.RelativeStrength{Value: 0.03, Tier: model.TierModerate, Points: 1},
	}
	a := e.Evaluate(in)
	b := e.Evaluate(in)
	if !reflect.DeepEqual(a, b) {
		t.Error("same input must yield identical results")
	}
}

func TestEvaluate_LowRangeIneligibleDespiteScore(t *testing.T) {
	sc := defaultScoring()
	sc.RelativeStrength.StrongPoints = 6
	fc := defaultForecast()
	fc.StrongPoints = 4

	snap := textbookSnapshot()
	snap.RangePct = 0.01 // below the floor: -5 penalty AND hard gate

	upside := 0.15
	e := NewEngine(sc, fc)
	res := e.Evaluate(Input{
		Ticker:         "NVDA",
		Currency:       "USD",
		Snapshot:       snap,
		RelStrength:    model.RelativeStrength{Value: 0.08, Tier: model.TierStrong, Points: 6},
		ForecastUpside: &upside,
	})

	// 4+3+3+2-5+6+4 = 17, clears min score, still blocked by the gate.
	if res.Score != 17 {
		t.Fatalf("expected score 17, got %d", res.Score)
	}
	if res.Eligible {
		t.Error("low range must be ineligible regardless of score")
	}
}

func TestEvaluate_MomentumRSIWarns(t *testing.T) {
	snap := textbookSnapshot()
	snap.RSI = 75 // overbought: momentum points drop from 3 to 2

	e := NewEngine(defaultScoring(), defaultForecast())
	res := e.Evaluate(Input{Ticker: "X", Currency: "USD", Snapshot: snap,
		RelStrength: model.RelativeStrength{Tier: model.TierNeutral}})

	if res.Score != 11 {
		t.Errorf("expected score 11 with RSI warning, got %d", res.Score)
	}
	found := false
	for _, r := range res.Reasons {
		if strings.Contains(r, "RSI(75) warnt") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected RSI warning reason, got %v", res.Reasons)
	}
}

func TestEvaluate_VolatilityBranches(t *testing.T) {
	e := NewEngine(defaultScoring(), defaultForecast())

	tests := []struct {
		atrPct    float64
		recentVol float64
		points    int
	}{
		{0.03, 1.2, 3}, // in band, active
		{0.03, 0.5, 2}, // in band, quiet
		{0.08, 1.2, 1}, // above band
		{0.01, 1.2, 0}, // below band
	}
	for _, tt := range tests {
		points, _ := scoreVolatility(&model.IndicatorSnapshot{ATRPct: tt.atrPct, RecentVolPct: tt.recentVol}, e.scoring)
		if points != tt.points {
			t.Errorf("atrPct=%.2f recentVol=%.1f: expected %d points, got %d", tt.atrPct, tt.recentVol, tt.points, points)
		}
	}
}

func TestEvaluate_StrikeRounding(t *testing.T) {
	snap := textbookSnapshot()
	snap.ATRShort = 1.337

	e := NewEngine(defaultScoring(), defaultForecast())
	res := e.Evaluate(Input{Ticker: "X", Currency: "USD", Snapshot: snap,
		RelStrength: model.RelativeStrength{Tier: model.TierNeutral}})

	if res.LongStrike != 102.01 {
		t.Errorf("expected long strike 102.01, got %v", res.LongStrike)
	}
	if res.ShortStrike != 97.99 {
		t.Errorf("expected short strike 97.99, got %v", res.ShortStrike)
	}
}

func barsRising(start, end float64, n int) []model.OHLCV {
	t0 := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, n)
	for i := 0; i < n; i++ {
		c := start + (end-start)*float64(i)/float64(n-1)
		bars[i] = model.OHLCV{Time: t0.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1}
	}
	return bars
}

func TestCompareWithBenchmark_Tiers(t *testing.T) {
	rc := &defaultScoring().RelativeStrength

	rel := CompareWithBenchmark(barsRising(100, 110, 21), barsRising(100, 102, 21), rc)
	if rel.Tier != model.TierStrong || rel.Points != 2 {
		t.Errorf("expected strong tier with 2 points, got %s/%d", rel.Tier, rel.Points)
	}

	rel = CompareWithBenchmark(barsRising(100, 102, 21), barsRising(100, 101.5, 21), rc)
	if rel.Tier != model.TierModerate || rel.Points != 1 {
		t.Errorf("expected moderate tier with 1 point, got %s/%d", rel.Tier, rel.Points)
	}

	rel = CompareWithBenchmark(barsRising(100, 95, 21), barsRising(100, 100, 21), rc)
	if rel.Tier != model.TierUnderperform || rel.Points != 0 {
		t.Errorf("expected underperform tier with 0 points, got %s/%d", rel.Tier, rel.Points)
	}

	// Benchmark history too short: neutral, zero points.
	rel = CompareWithBenchmark(barsRising(100, 110, 21), barsRising(100, 101, 3), rc)
	if rel.Tier != model.TierNeutral || rel.Points != 0 {
		t.Errorf("expected neutral tier for short benchmark, got %s/%d", rel.Tier, rel.Points)
	}
}
