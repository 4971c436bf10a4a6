package scoring

import (
	"context"
	"math"
	"time"

	"WarrantSentinel/internal/model"
)

// Converter converts amounts between currencies.
type Converter interface {
	Convert(ctx context.Context, amount float64, from, to string) (float64, error)
}

// Normalizer fills the derived candidate fields before scoring: premium
// in underlying terms, breakeven, intrinsic and extrinsic value, theta.
type Normalizer struct {
	fx  Converter
	now func() time.Time
}

// NewNormalizer creates a normalizer using the given currency converter.
func NewNormalizer(fx Converter) *Normalizer {
	return &Normalizer{fx: fx, now: time.Now}
}

// Enrich computes the derived fields of one candidate in place. Fields
// depending on an unresolvable FX rate stay nil.
func (n *Normalizer) Enrich(ctx context.Context, c *model.InstrumentCandidate, u *model.UnderlyingResult) {
	ratio := c.Ratio
	if ratio <= 0 {
		ratio = 1.0
	}

	// Premium seen from the underlying's currency.
	if c.Ask > 0 {
		if c.Currency != "" && u.Currency != "" && c.Currency != u.Currency {
			if converted, err := n.fx.Convert(ctx, c.Ask, c.Currency, u.Currency); err == nil {
				c.PremiumUnderlying = &converted
			}
		} else {
			ask := c.Ask
			c.PremiumUnderlying = &ask
		}
	}

	// Breakeven level in the underlying's currency.
	if c.Breakeven == nil && c.PremiumUnderlying != nil && c.Strike > 0 {
		var be float64
		if c.Type == model.WarrantPut {
			be = c.Strike - *c.PremiumUnderlying/ratio
		} else {
			be = c.Strike + *c.PremiumUnderlying/ratio
		}
		c.Breakeven = &be
	}

	// Move the underlying must make before the position breaks even.
	if c.Breakeven != nil && u.Close > 0 {
		var move float64
		if c.Type == model.WarrantPut {
			move = (u.Close - *c.Breakeven) / u.Close * 100
		} else {
			move = (*c.Breakeven - u.Close) / u.Close * 100
		}
		c.MoveNeededPct = &move
	}

	// Intrinsic value per warrant, expressed in the quote currency.
	if u.Currency != "" {
		var intrinsic float64
		if c.Type == model.WarrantPut {
			intrinsic = math.Max(0, c.Strike-u.Close) * ratio
		} else {
			intrinsic = math.Max(0, u.Close-c.Strike) * ratio
		}
		if c.Currency != "" && c.Currency != u.Currency {
			if converted, err := n.fx.Convert(ctx, intrinsic, u.Currency, c.Currency); err == nil {
				c.Intrinsic = &converted
			}
		} else {
			c.Intrinsic = &intrinsic
		}
	}

	if c.Intrinsic != nil {
		ext := math.Max(0, c.Ask-*c.Intrinsic)
		c.Extrinsic = &ext
		if c.Ask > 0 {
			pct := ext / c.Ask * 100
			c.ExtrinsicPct = &pct
		}
	}

	days := DaysToMaturity(c, n.now())
	c.DaysToMaturity = days

	// Theta: the source value wins; otherwise spread the extrinsic value
	// over the remaining days, front-loaded toward expiry.
	if c.SourceTheta != 0 {
		perDay := math.Abs(c.SourceTheta)
		c.ThetaPerDay = &perDay
		pct := 0.0
		if c.Mid > 0 {
			pct = perDay / c.Mid * 100
		}
		c.ThetaPctPerDay = &pct
	} else if days > 0 && c.Extrinsic != nil {
		accel := math.Sqrt(math.Max(1, float64(days-1))) / math.Sqrt(float64(days))
		perDay := *c.Extrinsic / float64(days) * accel
		c.ThetaPerDay = &perDay
		pct := 0.0
		if c.Mid > 0 {
			pct = perDay / c.Mid * 100
		}
		c.ThetaPctPerDay = &pct
	}
}
