package scoring

import (
	"math"

	"WarrantSentinel/internal/config"
	"WarrantSentinel/internal/model"
)

// Scorer grades enriched candidates with the configured factor tables.
type Scorer struct {
	tables *config.WarrantScoring
}

// NewScorer creates a scorer reading the given tables.
func NewScorer(tables *config.WarrantScoring) *Scorer {
	return &Scorer{tables: tables}
}

// Score grades one candidate against its underlying. Pure: the same
// candidate and underlying always produce the same breakdown.
func (s *Scorer) Score(c *model.InstrumentCandidate, u *model.UnderlyingResult) model.ScoredInstrument {
	t := s.tables
	factors := model.FactorScores{
		Spread:    evalBands(t.SpreadBands, c.SpreadPct, t.SpreadElse),
		Omega:     evalWindows(t.OmegaWindows, c.Omega, t.OmegaElse),
		Strike:    s.scoreStrike(c, u),
		Theta:     s.scoreTheta(c),
		Vola:      evalWindows(t.VolaWindows, c.ImpliedVol, t.VolaElse),
		Premium:   evalBands(t.PremiumBands, c.PremiumPct, t.PremiumElse),
		Breakeven: s.scoreBreakeven(c),
		Leverage:  s.scoreLeverage(c),
	}
	return model.ScoredInstrument{
		Underlying: u.Ticker,
		Candidate:  *c,
		Factors:    factors,
		TotalScore: factors.Total(),
	}
}

// scoreStrike grades the distance between the candidate's strike and the
// ATR-derived target of the underlying. Calls aim at the long strike,
// puts at the short strike.
func (s *Scorer) scoreStrike(c *model.InstrumentCandidate, u *model.UnderlyingResult) int {
	target := u.LongStrike
	if c.Type == model.WarrantPut {
		target = u.ShortStrike
	}
	distPct := 100.0 // unknown target counts as maximally off
	if target > 0 {
		distPct = math.Abs(c.Strike-target) / target * 100
	}
	return evalBands(s.tables.StrikeBands, distPct, s.tables.StrikeElse)
}

func (s *Scorer) scoreTheta(c *model.InstrumentCandidate) int {
	if c.ThetaPctPerDay == nil {
		return s.tables.ThetaElse
	}
	return evalBands(s.tables.ThetaBands, *c.ThetaPctPerDay, s.tables.ThetaElse)
}

// scoreBreakeven grades the absolute move needed to break even. Without
// an FX rate there is no move figure, and the factor contributes nothing.
func (s *Scorer) scoreBreakeven(c *model.InstrumentCandidate) int {
	if c.MoveNeededPct == nil {
		return 0
	}
	return evalBands(s.tables.BreakevenBands, math.Abs(*c.MoveNeededPct), s.tables.BreakevenElse)
}

// scoreLeverage grades leverage per unit of premium.
func (s *Scorer) scoreLeverage(c *model.InstrumentCandidate) int {
	r := 0.0
	if c.Ask > 0 {
		r = c.Leverage / (c.Ask * 100)
	}
	return evalBands(s.tables.LeverageBands, r, s.tables.LeverageElse)
}
