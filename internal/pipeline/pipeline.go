package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"WarrantSentinel/internal/calculator"
	"WarrantSentinel/internal/collector"
	"WarrantSentinel/internal/config"
	"WarrantSentinel/internal/forecast"
	"WarrantSentinel/internal/model"
	"WarrantSentinel/internal/scoring"
	"WarrantSentinel/internal/selector"
	"WarrantSentinel/internal/strategy"
	"WarrantSentinel/internal/telemetry"
	"WarrantSentinel/internal/universe"
	"WarrantSentinel/internal/warrants"
)

// Deps bundles the pipeline's collaborators.
type Deps struct {
	Fetcher   collector.Fetcher
	Targets   forecast.TargetProvider
	Discover  *warrants.Discoverer
	Normalize *scoring.Normalizer
	Scorer    *scoring.Scorer
	Engine    *strategy.Engine
	Selector  *selector.Selector
	Metrics   *telemetry.Metrics
}

// Pipeline runs one full scan: analyze the universe, discover warrants
// for the eligible underlyings, score and rank them.
type Pipeline struct {
	cfg  *config.Config
	deps Deps
}

// New creates a pipeline.
func New(cfg *config.Config, deps Deps) *Pipeline {
	return &Pipeline{cfg: cfg, deps: deps}
}

// tickerOutcome is one worker's verdict for one ticker.
type tickerOutcome struct {
	ticker    string
	result    *model.UnderlyingResult
	shortName string
	longName  string
	err       error
}

// Run executes one scan of the configured universe. Per-ticker failures
// are logged and counted, never fatal; the error return covers only a
// cancelled context.
func (p *Pipeline) Run(ctx context.Context, typ model.WarrantType) (*model.RunReport, error) {
	started := time.Now()
	runID := uuid.New().String()[:8]
	tickers := universe.Resolve(&p.cfg.Universe)

	log.Info().
		Str("run", runID).
		Str("type", string(typ)).
		Int("tickers", len(tickers)).
		Msg("scan started")

	benchBars := p.fetchBenchmark(ctx)
	outcomes := p.analyzeAll(ctx, tickers, benchBars)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &model.RunReport{
		RunID:          runID,
		StartedAt:      started,
		WarrantType:    typ,
		TickersScanned: len(tickers),
	}

	var all []model.ScoredInstrument
	for _, ticker := range tickers {
		out := outcomes[ticker]
		if out.err != nil {
			log.Warn().Err(out.err).Str("ticker", ticker).Msg("ticker skipped")
			report.TickersSkipped++
			continue
		}
		res := out.result
		log.Info().
			Str("ticker", ticker).
			Int("score", res.Score).
			Bool("eligible", res.Eligible).
			Msg("ticker analyzed")
		if !res.Eligible {
			continue
		}
		report.Eligible++

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		names := warrants.NameVariants(ticker, out.shortName, out.longName)
		candidates, _, err := p.deps.Discover.Discover(ctx, res, typ, names)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn().Err(err).Str("ticker", ticker).Msg("discovery failed")
		}

		scored := make([]model.ScoredInstrument, 0, len(candidates))
		for i := range candidates {
			p.deps.Normalize.Enrich(ctx, &candidates[i], res)
			scored = append(scored, p.deps.Scorer.Score(&candidates[i], res))
		}

		report.Underlyings = append(report.Underlyings, model.UnderlyingReport{
			Result:     *res,
			Discovered: len(candidates),
			Top:        p.deps.Selector.Top(scored),
		})
		all = append(all, scored...)
	}

	report.GlobalTop = p.deps.Selector.Top(all)
	report.FinishedAt = time.Now()
	p.deps.Metrics.ObserveRun(report)

	log.Info().
		Str("run", runID).
		Int("eligible", report.Eligible).
		Int("skipped", report.TickersSkipped).
		Int("ranked", len(report.GlobalTop)).
		Dur("took", report.FinishedAt.Sub(started)).
		Msg("scan finished")
	return report, nil
}

// fetchBenchmark loads the benchmark series once per run. A failure only
// costs the relative-strength factor, so it degrades to neutral.
func (p *Pipeline) fetchBenchmark(ctx context.Context) []model.OHLCV {
	bench := p.cfg.Scoring.RelativeStrength.Benchmark
	if bench == "" {
		return nil
	}
	series, err := p.deps.Fetcher.FetchSeries(ctx, bench, p.cfg.Yahoo.Period, p.cfg.Yahoo.Interval)
	if err != nil {
		p.deps.Metrics.ObserveFetchError()
		log.Warn().Err(err).Str("benchmark", bench).Msg("benchmark fetch failed, relative strength neutral")
		return nil
	}
	return series.Bars
}

// analyzeAll fans the tickers out over the configured worker count.
func (p *Pipeline) analyzeAll(ctx context.Context, tickers []string, benchBars []model.OHLCV) map[string]tickerOutcome {
	workers := p.cfg.Pipeline.Workers
	if workers < 1 {
		workers = 1
	}

	workCh := make(chan string, len(tickers))
	resultCh := make(chan tickerOutcome, len(tickers))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ticker := range workCh {
				resultCh <- p.analyzeTicker(ctx, ticker, benchBars)
			}
		}()
	}

	for _, t := range tickers {
		workCh <- t
	}
	close(workCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	outcomes := make(map[string]tickerOutcome, len(tickers))
	for out := range resultCh {
		outcomes[out.ticker] = out
	}
	return outcomes
}

func (p *Pipeline) analyzeTicker(ctx context.Context, ticker string, benchBars []model.OHLCV) tickerOutcome {
	series, err := p.deps.Fetcher.FetchSeries(ctx, ticker, p.cfg.Yahoo.Period, p.cfg.Yahoo.Interval)
	if err != nil {
		p.deps.Metrics.ObserveFetchError()
		return tickerOutcome{ticker: ticker, err: fmt.Errorf("fetch series: %w", err)}
	}
	if len(series.Bars) < p.cfg.Yahoo.MinDataPoints {
		return tickerOutcome{ticker: ticker, err: fmt.Errorf("%w: %d bars, need %d",
			collector.ErrInsufficientData, len(series.Bars), p.cfg.Yahoo.MinDataPoints)}
	}

	snap, err := calculator.BuildSnapshot(series.Bars, p.snapshotWindows())
	if err != nil {
		return tickerOutcome{ticker: ticker, err: fmt.Errorf("indicators: %w", err)}
	}

	rel := strategy.CompareWithBenchmark(series.Bars, benchBars, &p.cfg.Scoring.RelativeStrength)

	var upside *float64
	if p.deps.Targets != nil && snap.Close > 0 {
		if target, err := p.deps.Targets.TargetMeanPrice(ctx, ticker); err != nil {
			log.Debug().Err(err).Str("ticker", ticker).Msg("no analyst target")
		} else {
			u := (target - snap.Close) / snap.Close
			upside = &u
		}
	}

	result := p.deps.Engine.Evaluate(strategy.Input{
		Ticker:         ticker,
		Currency:       series.Currency,
		Snapshot:       snap,
		RelStrength:    rel,
		ForecastUpside: upside,
	})
	return tickerOutcome{
		ticker:    ticker,
		result:    result,
		shortName: series.ShortName,
		longName:  series.LongName,
	}
}

func (p *Pipeline) snapshotWindows() calculator.SnapshotWindows {
	ind := p.cfg.Indicators
	return calculator.SnapshotWindows{
		SMAShort:   ind.SMAShort,
		SMALong:    ind.SMALong,
		RSI:        ind.RSIWindow,
		ATR:        ind.ATRWindow,
		ATRShort:   ind.ATRShortWindow,
		Volatility: ind.VolatilityWindow,
		Range:      ind.RangeLookback,
		Volume:     ind.VolumeWindow,
		Momentum:   p.cfg.Scoring.MomentumLookback,
	}
}
