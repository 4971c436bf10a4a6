package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"WarrantSentinel/internal/collector"
	"WarrantSentinel/internal/config"
	"WarrantSentinel/internal/forecast"
	"WarrantSentinel/internal/fx"
	"WarrantSentinel/internal/notifier"
	"WarrantSentinel/internal/pipeline"
	"WarrantSentinel/internal/recorder"
	"WarrantSentinel/internal/scoring"
	"WarrantSentinel/internal/selector"
	"WarrantSentinel/internal/strategy"
	"WarrantSentinel/internal/telemetry"
	"WarrantSentinel/internal/warrants"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// buildPipeline wires the full scan stack: throttled, breaker-guarded
// market data, the listing client behind its retry wrapper, FX
// normalization and the warrant scorer.
func buildPipeline(cfg *config.Config, metrics *telemetry.Metrics) (*pipeline.Pipeline, error) {
	fetcher := collector.NewBreakerFetcher(
		collector.NewThrottledFetcher(collector.NewYahooFetcher(cfg.Proxy), cfg.Yahoo.RequestsPerSec, 1))
	log.Info().Str("source", fetcher.Name()).Msg("market data source ready")

	mapping, err := warrants.LoadNameMapping(cfg.Scraper.MappingFile)
	if err != nil {
		return nil, fmt.Errorf("load name mapping: %w", err)
	}

	client := warrants.NewClient(&cfg.Scraper, cfg.Proxy)
	source := warrants.NewRetryingSource(client, cfg.Scraper.MaxRetries, cfg.Scraper.RetryDelay())
	discover := warrants.NewDiscoverer(source, client, mapping, &cfg.Scraper)

	// FX rates ride the same fetcher, so they share its throttle and
	// circuit breaker, plus the listing retry policy on top.
	rates := fx.NewRetryingRateSource(&fx.YahooRateSource{Fetcher: fetcher},
		cfg.Scraper.MaxRetries, cfg.Scraper.RetryDelay())
	converter := fx.NewConverter(rates, cfg.FX.CacheTTL())
	targets := forecast.NewYahooTargets(time.Duration(cfg.Forecast.TimeoutSec)*time.Second, cfg.Proxy)

	return pipeline.New(cfg, pipeline.Deps{
		Fetcher:   fetcher,
		Targets:   targets,
		Discover:  discover,
		Normalize: scoring.NewNormalizer(converter),
		Scorer:    scoring.NewScorer(&cfg.Scoring.Warrant),
		Engine:    strategy.NewEngine(&cfg.Scoring, &cfg.Forecast),
		Selector:  selector.New(&cfg.Selection),
		Metrics:   metrics,
	}), nil
}

// buildRecorder opens the SQLite run ledger, falling back to noop when no
// path is configured or the open fails.
func buildRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Warn().Err(err).Msg("sqlite recorder unavailable, falling back to noop")
		return recorder.NewNoopRecorder()
	}
	return rec
}

// buildSinks assembles the configured notification sinks. The Telegram
// notifier is also returned separately because watch mode polls it for
// commands.
func buildSinks(cfg *config.Config) ([]notifier.Notifier, *notifier.TelegramNotifier) {
	var sinks []notifier.Notifier
	var tg *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tg = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sinks = append(sinks, tg)
	}
	if cfg.SMTP.Host != "" {
		sinks = append(sinks, notifier.NewSMTPNotifier(&cfg.SMTP))
	}
	if len(sinks) == 0 {
		log.Warn().Msg("no notification sinks configured, reports stay local")
		sinks = append(sinks, notifier.NewNoop())
	}
	return sinks, tg
}
