package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "6mo", cfg.Yahoo.Period)
	assert.Equal(t, "1d", cfg.Yahoo.Interval)
	assert.Equal(t, 80, cfg.Yahoo.MinDataPoints)
	assert.Equal(t, 20, cfg.Indicators.SMAShort)
	assert.Equal(t, 50, cfg.Indicators.SMALong)
	assert.Equal(t, 12, cfg.Scoring.MinScore)
	assert.Equal(t, 0.02, cfg.Scoring.ATRPctMin)
	assert.Equal(t, 0.05, cfg.Scoring.ATRPctMax)
	assert.Equal(t, "^GSPC", cfg.Scoring.RelativeStrength.Benchmark)
	assert.Equal(t, 0.05, cfg.Scoring.RelativeStrength.StrongOutperformance)
	assert.Zero(t, cfg.Scoring.RelativeStrength.ModerateOutperformance)
	assert.Equal(t, 3.0, cfg.Scraper.SpreadMaxPct)
	assert.Equal(t, 9, cfg.Scraper.DaysMin)
	assert.Equal(t, 16, cfg.Scraper.DaysMax)
	assert.Equal(t, 4, cfg.Scraper.BrokerID)
	assert.Equal(t, 3, cfg.Selection.TopN)
	assert.Equal(t, 4, cfg.Pipeline.Workers)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
yahoo:
  period: "1y"
  min_data_points: 120
scoring:
  min_score: 14
scraper:
  max_retries: 5
universe:
  tickers: ["AAPL", "SAP.DE"]
  limit: 1
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "1y", cfg.Yahoo.Period)
	assert.Equal(t, 120, cfg.Yahoo.MinDataPoints)
	assert.Equal(t, 14, cfg.Scoring.MinScore)
	assert.Equal(t, 5, cfg.Scraper.MaxRetries)
	assert.Equal(t, []string{"AAPL", "SAP.DE"}, cfg.Universe.Tickers)
	assert.Equal(t, 1, cfg.Universe.Limit)

	// Untouched sections still fall back to defaults.
	assert.Equal(t, "1d", cfg.Yahoo.Interval)
	assert.Equal(t, 2.0, cfg.Scraper.PoliteDelaySec)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token-from-env")
	t.Setenv("TELEGRAM_CHAT_ID", "chat-from-env")
	t.Setenv("SQLITE_PATH", "/tmp/scanner.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "token-from-env", cfg.Telegram.BotToken)
	assert.Equal(t, "chat-from-env", cfg.Telegram.ChatID)
	assert.Equal(t, "/tmp/scanner.db", cfg.Database.SQLitePath)
}

func TestValidateRejectsBadRanges(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Scoring.ATRPctMin = 0.06
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Yahoo.MinDataPoints = 10
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Scraper.DaysMax = 3
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Selection.StopLossPct = 1.5
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Yahoo.RequestsPerSec = -1
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Scoring.Warrant.SpreadBands = []Band{{UpTo: 1.2, Points: 20}, {UpTo: 0.8, Points: 25}}
	assert.Error(t, cfg.Validate())
}

func TestDefaultWarrantScoringIsValid(t *testing.T) {
	w := DefaultWarrantScoring()
	assert.NoError(t, w.validate())

	// Best bucket of every table, summed, is the ceiling of the scorer.
	max := w.SpreadBands[0].Points + w.OmegaWindows[0].Points + w.StrikeBands[0].Points +
		w.ThetaBands[0].Points + w.VolaWindows[0].Points + w.PremiumBands[0].Points +
		w.BreakevenBands[0].Points + w.LeverageElse
	assert.Equal(t, 115, max)
}
