package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Loaded once at startup,
// read-only afterwards; every component receives the sections it needs.
type Config struct {
	Yahoo      YahooConfig      `yaml:"yahoo"`
	Indicators IndicatorConfig  `yaml:"indicators"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Forecast   ForecastConfig   `yaml:"forecast"`
	Scraper    ScraperConfig    `yaml:"scraper"`
	FX         FXConfig         `yaml:"fx"`
	Selection  SelectionConfig  `yaml:"selection"`
	Universe   UniverseConfig   `yaml:"universe"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Export     ExportConfig     `yaml:"export"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	Database   DatabaseConfig   `yaml:"database"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Proxy      string           `yaml:"proxy"`
}

// YahooConfig controls market-data retrieval.
type YahooConfig struct {
	Period         string  `yaml:"period"`
	Interval       string  `yaml:"interval"`
	MinDataPoints  int     `yaml:"min_data_points"`
	RequestsPerSec float64 `yaml:"requests_per_sec"`
}

// IndicatorConfig holds the indicator window parameters.
type IndicatorConfig struct {
	SMAShort         int `yaml:"sma_short"`
	SMALong          int `yaml:"sma_long"`
	RSIWindow        int `yaml:"rsi_window"`
	ATRWindow        int `yaml:"atr_window"`
	ATRShortWindow   int `yaml:"atr_short_window"`
	VolatilityWindow int `yaml:"volatility_window"`
	RangeLookback    int `yaml:"range_lookback"`
	VolumeWindow     int `yaml:"volume_window"`
}

// RelStrengthConfig controls the benchmark comparison.
type RelStrengthConfig struct {
	Benchmark              string  `yaml:"benchmark"`
	LookbackDays           int     `yaml:"lookback_days"`
	StrongOutperformance   float64 `yaml:"strong_outperformance"`
	ModerateOutperformance float64 `yaml:"moderate_outperformance"`
	StrongPoints           int     `yaml:"strong_points"`
	ModeratePoints         int     `yaml:"moderate_points"`
	UnderperformPoints     int     `yaml:"underperform_points"`
}

// ScoringConfig holds underlying-eligibility thresholds and the warrant
// factor tables.
type ScoringConfig struct {
	MinScore         int               `yaml:"min_score"`
	ATRPctMin        float64           `yaml:"atr_pct_min"`
	ATRPctMax        float64           `yaml:"atr_pct_max"`
	RangeMin         float64           `yaml:"range_min"`
	RecentVolActive  float64           `yaml:"recent_vol_active"`
	MomentumLookback int               `yaml:"momentum_lookback"`
	RelativeStrength RelStrengthConfig `yaml:"relative_strength"`
	Warrant          WarrantScoring    `yaml:"warrant"`
}

// Band maps values less than or equal to UpTo onto Points. Tables are
// evaluated in order; the first matching band wins.
type Band struct {
	UpTo   float64 `yaml:"up_to"`
	Points int     `yaml:"points"`
}

// Window maps values inside [From, To] onto Points, first match wins.
type Window struct {
	From   float64 `yaml:"from"`
	To     float64 `yaml:"to"`
	Points int     `yaml:"points"`
}

// WarrantScoring holds the eight factor tables of the instrument scorer.
// Each Else value is the catch-all bucket when no band matches.
type WarrantScoring struct {
	SpreadBands    []Band   `yaml:"spread_bands"`
	SpreadElse     int      `yaml:"spread_else"`
	OmegaWindows   []Window `yaml:"omega_windows"`
	OmegaElse      int      `yaml:"omega_else"`
	StrikeBands    []Band   `yaml:"strike_bands"` // distance to target strike, percent
	StrikeElse     int      `yaml:"strike_else"`
	ThetaBands     []Band   `yaml:"theta_bands"` // decay per day, percent of price
	ThetaElse      int      `yaml:"theta_else"`
	VolaWindows    []Window `yaml:"vola_windows"` // implied vol band, percent points
	VolaElse       int      `yaml:"vola_else"`
	PremiumBands   []Band   `yaml:"premium_bands"`
	PremiumElse    int      `yaml:"premium_else"`
	BreakevenBands []Band   `yaml:"breakeven_bands"` // abs. move needed, percent
	BreakevenElse  int      `yaml:"breakeven_else"`
	LeverageBands  []Band   `yaml:"leverage_bands"` // leverage/premium ratio
	LeverageElse   int      `yaml:"leverage_else"`
}

// ForecastConfig controls the analyst-target upside contribution.
type ForecastConfig struct {
	TimeoutSec     int     `yaml:"timeout_sec"`
	UpsideStrong   float64 `yaml:"upside_strong"`
	UpsideModerate float64 `yaml:"upside_moderate"`
	StrongPoints   int     `yaml:"strong_points"`
	ModeratePoints int     `yaml:"moderate_points"`
}

// Timeout returns the forecast request timeout.
func (c ForecastConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// ScraperConfig controls the instrument listing source.
type ScraperConfig struct {
	BaseURL         string  `yaml:"base_url"`
	PoliteDelaySec  float64 `yaml:"polite_delay_sec"`
	TimeoutSec      int     `yaml:"timeout_sec"`
	RetryDelaySec   float64 `yaml:"retry_delay_sec"`
	MaxRetries      int     `yaml:"max_retries"`
	SpreadMinPct    float64 `yaml:"spread_min_pct"`
	SpreadMaxPct    float64 `yaml:"spread_max_pct"`
	OmegaMin        float64 `yaml:"omega_min"`
	DaysMin         int     `yaml:"days_min"`
	DaysMax         int     `yaml:"days_max"`
	DaysMinWide     int     `yaml:"days_min_wide"`
	DaysMaxWide     int     `yaml:"days_max_wide"`
	StrikeWindowPct float64 `yaml:"strike_window_pct"`
	BrokerID        int     `yaml:"broker_id"`
	MappingFile     string  `yaml:"mapping_file"`
}

// PoliteDelay is the pause enforced between distinct listing queries.
func (c ScraperConfig) PoliteDelay() time.Duration {
	return time.Duration(c.PoliteDelaySec * float64(time.Second))
}

// Timeout is the per-request timeout for listing queries.
func (c ScraperConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// RetryDelay is the fixed pause between retry attempts of one query.
func (c ScraperConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySec * float64(time.Second))
}

// FXConfig controls the currency normalizer.
type FXConfig struct {
	CacheTTLSec int `yaml:"cache_ttl_sec"`
}

// CacheTTL returns how long a resolved FX rate stays valid.
func (c FXConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSec) * time.Second
}

// SelectionConfig controls top-N selection and position sizing.
type SelectionConfig struct {
	TopN        int     `yaml:"top_n"`
	BudgetEUR   float64 `yaml:"budget_eur"`
	StopLossPct float64 `yaml:"stop_loss_pct"`
}

// UniverseConfig selects the tickers to scan. An empty list means the
// compiled-in default universe.
type UniverseConfig struct {
	Tickers []string `yaml:"tickers"`
	Limit   int      `yaml:"limit"`
}

// PipelineConfig controls run parallelism.
type PipelineConfig struct {
	Workers int `yaml:"workers"`
}

// ExportConfig controls the file sinks.
type ExportConfig struct {
	CSVPath  string `yaml:"csv_path"`
	JSONPath string `yaml:"json_path"`
}

// TelegramConfig holds notification credentials.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
}

// SMTPConfig holds mail notification settings.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// DatabaseConfig controls the optional run ledger.
type DatabaseConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// ScheduleConfig controls watch mode.
type ScheduleConfig struct {
	Cron string `yaml:"cron"`
}

// TelemetryConfig controls the watch-mode HTTP endpoints.
type TelemetryConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; defaults and
// the environment carry a full configuration.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("SCRAPER_BASE_URL"); v != "" {
		cfg.Scraper.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		cfg.Schedule.Cron = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Yahoo.Period == "" {
		cfg.Yahoo.Period = "6mo"
	}
	if cfg.Yahoo.Interval == "" {
		cfg.Yahoo.Interval = "1d"
	}
	if cfg.Yahoo.MinDataPoints == 0 {
		cfg.Yahoo.MinDataPoints = 80
	}
	if cfg.Yahoo.RequestsPerSec == 0 {
		cfg.Yahoo.RequestsPerSec = 2.0
	}

	ind := &cfg.Indicators
	if ind.SMAShort == 0 {
		ind.SMAShort = 20
	}
	if ind.SMALong == 0 {
		ind.SMALong = 50
	}
	if ind.RSIWindow == 0 {
		ind.RSIWindow = 14
	}
	if ind.ATRWindow == 0 {
		ind.ATRWindow = 14
	}
	if ind.ATRShortWindow == 0 {
		ind.ATRShortWindow = 5
	}
	if ind.VolatilityWindow == 0 {
		ind.VolatilityWindow = 14
	}
	if ind.RangeLookback == 0 {
		ind.RangeLookback = 15
	}
	if ind.VolumeWindow == 0 {
		ind.VolumeWindow = 20
	}

	sc := &cfg.Scoring
	if sc.MinScore == 0 {
		sc.MinScore = 12
	}
	if sc.ATRPctMin == 0 {
		sc.ATRPctMin = 0.02
	}
	if sc.ATRPctMax == 0 {
		sc.ATRPctMax = 0.05
	}
	if sc.RangeMin == 0 {
		sc.RangeMin = 0.025
	}
	if sc.RecentVolActive == 0 {
		sc.RecentVolActive = 0.8
	}
	if sc.MomentumLookback == 0 {
		sc.MomentumLookback = 10
	}

	rs := &sc.RelativeStrength
	if rs.Benchmark == "" {
		rs.Benchmark = "^GSPC"
	}
	if rs.LookbackDays == 0 {
		rs.LookbackDays = 20
	}
	if rs.StrongOutperformance == 0 {
		rs.StrongOutperformance = 0.05
	}
	// ModerateOutperformance stays 0: any edge over the benchmark is
	// already moderate strength.
	if rs.StrongPoints == 0 {
		rs.StrongPoints = 2
	}
	if rs.ModeratePoints == 0 {
		rs.ModeratePoints = 1
	}

	if len(sc.Warrant.SpreadBands) == 0 {
		sc.Warrant = DefaultWarrantScoring()
	}

	fc := &cfg.Forecast
	if fc.TimeoutSec == 0 {
		fc.TimeoutSec = 5
	}
	if fc.UpsideStrong == 0 {
		fc.UpsideStrong = 0.10
	}
	if fc.UpsideModerate == 0 {
		fc.UpsideModerate = 0.05
	}
	if fc.StrongPoints == 0 {
		fc.StrongPoints = 2
	}
	if fc.ModeratePoints == 0 {
		fc.ModeratePoints = 1
	}

	sr := &cfg.Scraper
	if sr.BaseURL == "" {
		sr.BaseURL = "https://www.onvista.de/derivate/Optionsscheine"
	}
	if sr.PoliteDelaySec == 0 {
		sr.PoliteDelaySec = 2.0
	}
	if sr.TimeoutSec == 0 {
		sr.TimeoutSec = 15
	}
	if sr.RetryDelaySec == 0 {
		sr.RetryDelaySec = 1.0
	}
	if sr.MaxRetries == 0 {
		sr.MaxRetries = 3
	}
	if sr.SpreadMinPct == 0 {
		sr.SpreadMinPct = 0.3
	}
	if sr.SpreadMaxPct == 0 {
		sr.SpreadMaxPct = 3.0
	}
	if sr.OmegaMin == 0 {
		sr.OmegaMin = 2.0
	}
	if sr.DaysMin == 0 {
		sr.DaysMin = 9
	}
	if sr.DaysMax == 0 {
		sr.DaysMax = 16
	}
	if sr.DaysMinWide == 0 {
		sr.DaysMinWide = 8
	}
	if sr.DaysMaxWide == 0 {
		sr.DaysMaxWide = 20
	}
	if sr.StrikeWindowPct == 0 {
		sr.StrikeWindowPct = 0.10
	}
	if sr.BrokerID == 0 {
		sr.BrokerID = 4
	}
	if sr.MappingFile == "" {
		sr.MappingFile = "data/listing_names.json"
	}

	if cfg.FX.CacheTTLSec == 0 {
		cfg.FX.CacheTTLSec = 3600
	}

	sel := &cfg.Selection
	if sel.TopN == 0 {
		sel.TopN = 3
	}
	if sel.BudgetEUR == 0 {
		sel.BudgetEUR = 200
	}
	if sel.StopLossPct == 0 {
		sel.StopLossPct = 0.10
	}

	if cfg.Pipeline.Workers == 0 {
		cfg.Pipeline.Workers = 4
	}

	if cfg.Export.CSVPath == "" {
		cfg.Export.CSVPath = "top_warrants.csv"
	}

	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}

	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = "0 0 18 * * 1-5"
	}
	if cfg.Telemetry.ListenAddr == "" {
		cfg.Telemetry.ListenAddr = ":9100"
	}
}

// DefaultWarrantScoring returns the compiled-in factor tables.
func DefaultWarrantScoring() WarrantScoring {
	return WarrantScoring{
		SpreadBands: []Band{
			{UpTo: 0.8, Points: 25},
			{UpTo: 1.2, Points: 20},
			{UpTo: 1.8, Points: 15},
			{UpTo: 2.5, Points: 10},
		},
		SpreadElse: 5,
		OmegaWindows: []Window{
			{From: 6, To: 10, Points: 25},
			{From: 4, To: 12, Points: 20},
			{From: 3, To: 15, Points: 15},
		},
		OmegaElse: 5,
		StrikeBands: []Band{
			{UpTo: 2, Points: 20},
			{UpTo: 5, Points: 15},
			{UpTo: 10, Points: 10},
		},
		StrikeElse: 5,
		ThetaBands: []Band{
			{UpTo: 5, Points: 15},
			{UpTo: 8, Points: 12},
			{UpTo: 10, Points: 8},
		},
		ThetaElse: 3,
		VolaWindows: []Window{
			{From: 20, To: 40, Points: 10},
			{From: 15, To: 50, Points: 7},
		},
		VolaElse: 4,
		PremiumBands: []Band{
			{UpTo: 2, Points: 5},
			{UpTo: 5, Points: 3},
		},
		PremiumElse: 1,
		BreakevenBands: []Band{
			{UpTo: 3, Points: 10},
			{UpTo: 5, Points: 8},
			{UpTo: 8, Points: 5},
		},
		BreakevenElse: 2,
		LeverageBands: []Band{
			{UpTo: 0.3, Points: 2},
			{UpTo: 0.5, Points: 4},
		},
		LeverageElse: 5,
	}
}

// Validate checks that all required fields are consistent. Any error here
// is fatal at startup, before per-ticker work begins.
func (c *Config) Validate() error {
	ind := c.Indicators
	for name, w := range map[string]int{
		"indicators.sma_short":         ind.SMAShort,
		"indicators.sma_long":          ind.SMALong,
		"indicators.rsi_window":        ind.RSIWindow,
		"indicators.atr_window":        ind.ATRWindow,
		"indicators.atr_short_window":  ind.ATRShortWindow,
		"indicators.volatility_window": ind.VolatilityWindow,
		"indicators.range_lookback":    ind.RangeLookback,
		"indicators.volume_window":     ind.VolumeWindow,
	} {
		if w <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}

	maxWindow := ind.SMAShort
	for _, w := range []int{ind.SMALong, ind.RSIWindow, ind.ATRWindow, ind.VolatilityWindow, ind.RangeLookback, ind.VolumeWindow, c.Scoring.MomentumLookback} {
		if w > maxWindow {
			maxWindow = w
		}
	}
	if c.Yahoo.MinDataPoints < maxWindow+1 {
		return fmt.Errorf("yahoo.min_data_points must be at least %d (largest window + 1)", maxWindow+1)
	}
	if c.Yahoo.RequestsPerSec <= 0 {
		return fmt.Errorf("yahoo.requests_per_sec must be positive")
	}

	sc := c.Scoring
	if sc.ATRPctMin <= 0 || sc.ATRPctMax <= 0 || sc.ATRPctMin >= sc.ATRPctMax {
		return fmt.Errorf("scoring.atr_pct_min must be positive and below scoring.atr_pct_max")
	}
	if sc.RangeMin <= 0 {
		return fmt.Errorf("scoring.range_min must be positive")
	}
	rs := sc.RelativeStrength
	if rs.Benchmark == "" {
		return fmt.Errorf("scoring.relative_strength.benchmark is required")
	}
	if rs.LookbackDays <= 0 {
		return fmt.Errorf("scoring.relative_strength.lookback_days must be positive")
	}
	if rs.StrongPoints < rs.ModeratePoints || rs.ModeratePoints < rs.UnderperformPoints {
		return fmt.Errorf("scoring.relative_strength points must be non-increasing from strong to underperform")
	}

	if err := c.Scoring.Warrant.validate(); err != nil {
		return err
	}

	sr := c.Scraper
	if sr.MaxRetries < 1 {
		return fmt.Errorf("scraper.max_retries must be at least 1")
	}
	if sr.PoliteDelaySec < 0 || sr.RetryDelaySec < 0 {
		return fmt.Errorf("scraper delays must not be negative")
	}
	if sr.SpreadMaxPct <= 0 || sr.SpreadMinPct < 0 || sr.SpreadMinPct >= sr.SpreadMaxPct {
		return fmt.Errorf("scraper spread range is inconsistent")
	}
	if sr.DaysMin <= 0 || sr.DaysMax < sr.DaysMin {
		return fmt.Errorf("scraper.days_min/days_max range is inconsistent")
	}

	sel := c.Selection
	if sel.TopN < 1 {
		return fmt.Errorf("selection.top_n must be at least 1")
	}
	if sel.BudgetEUR <= 0 {
		return fmt.Errorf("selection.budget_eur must be positive")
	}
	if sel.StopLossPct <= 0 || sel.StopLossPct >= 1 {
		return fmt.Errorf("selection.stop_loss_pct must be between 0 and 1")
	}

	if c.Pipeline.Workers < 1 {
		return fmt.Errorf("pipeline.workers must be at least 1")
	}

	return nil
}

func (w WarrantScoring) validate() error {
	for name, bands := range map[string][]Band{
		"spread_bands":    w.SpreadBands,
		"strike_bands":    w.StrikeBands,
		"theta_bands":     w.ThetaBands,
		"premium_bands":   w.PremiumBands,
		"breakeven_bands": w.BreakevenBands,
		"leverage_bands":  w.LeverageBands,
	} {
		if len(bands) == 0 {
			return fmt.Errorf("scoring.warrant.%s must not be empty", name)
		}
		for i := 1; i < len(bands); i++ {
			if bands[i].UpTo <= bands[i-1].UpTo {
				return fmt.Errorf("scoring.warrant.%s must have ascending bounds", name)
			}
		}
	}
	for name, windows := range map[string][]Window{
		"omega_windows": w.OmegaWindows,
		"vola_windows":  w.VolaWindows,
	} {
		if len(windows) == 0 {
			return fmt.Errorf("scoring.warrant.%s must not be empty", name)
		}
		for _, win := range windows {
			if win.From > win.To {
				return fmt.Errorf("scoring.warrant.%s has a window with from > to", name)
			}
		}
	}
	return nil
}
