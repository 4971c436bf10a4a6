package warrants

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"WarrantSentinel/internal/config"
	"WarrantSentinel/internal/model"
)

// Discoverer runs the search cascade for one eligible underlying: the
// remembered name first, then every name variant against every query
// variant, stopping at the first non-empty result.
type Discoverer struct {
	source  Source
	details DetailSource
	mapping *NameMapping
	limiter *rate.Limiter
	cfg     *config.ScraperConfig
}

// NewDiscoverer wires the cascade. One limiter paces both finder queries
// and detail lookups at the configured polite delay.
func NewDiscoverer(source Source, details DetailSource, mapping *NameMapping, cfg *config.ScraperConfig) *Discoverer {
	return &Discoverer{
		source:  source,
		details: details,
		mapping: mapping,
		limiter: rate.NewLimiter(rate.Every(cfg.PoliteDelay()), 1),
		cfg:     cfg,
	}
}

// Discover returns the prefiltered candidates for one underlying and the
// listing name that produced them. No match anywhere returns an empty
// slice and no error.
func (d *Discoverer) Discover(ctx context.Context, u *model.UnderlyingResult, typ model.WarrantType, names []string) ([]model.InstrumentCandidate, string, error) {
	target := u.LongStrike
	if typ == model.WarrantPut {
		target = u.ShortStrike
	}
	if target <= 0 {
		return nil, "", fmt.Errorf("no strike target for %s", u.Ticker)
	}

	if cached, ok := d.mapping.Get(u.Ticker); ok {
		names = dedupeFold(append([]string{cached}, names...))
	}

	for _, name := range names {
		for _, q := range BuildQueryPlan(name, typ, target, d.cfg) {
			if err := d.limiter.Wait(ctx); err != nil {
				return nil, "", err
			}
			candidates, err := d.source.Search(ctx, q)
			if err != nil {
				// The retry wrapper already spent its attempts here.
				log.Debug().
					Err(err).
					Str("ticker", u.Ticker).
					Str("name", name).
					Str("variant", q.Label).
					Msg("query variant exhausted")
				continue
			}
			candidates = Prefilter(candidates, d.cfg)
			if len(candidates) == 0 {
				continue
			}
			log.Info().
				Str("ticker", u.Ticker).
				Str("name", name).
				Str("variant", q.Label).
				Int("candidates", len(candidates)).
				Msg("listing search hit")
			d.mapping.Put(u.Ticker, name)
			d.enrichDetails(ctx, candidates)
			return candidates, name, nil
		}
	}
	return nil, "", nil
}

// enrichDetails fills ratio, quote currency and remaining runtime from
// the detail endpoint. A failed lookup leaves the candidate as the
// finder delivered it.
func (d *Discoverer) enrichDetails(ctx context.Context, candidates []model.InstrumentCandidate) {
	if d.details == nil {
		return
	}
	for i := range candidates {
		if err := d.limiter.Wait(ctx); err != nil {
			return
		}
		detail, err := d.details.Details(ctx, candidates[i].WKN)
		if err != nil {
			log.Warn().Err(err).Str("wkn", candidates[i].WKN).Msg("detail lookup failed")
			continue
		}
		if detail.Ratio > 0 {
			candidates[i].Ratio = detail.Ratio
		}
		if detail.Currency != "" {
			candidates[i].Currency = detail.Currency
		}
		if detail.RemainingDays > 0 {
			candidates[i].DaysToMaturity = detail.RemainingDays
		}
	}
}
