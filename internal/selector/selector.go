package selector

import (
	"sort"

	"WarrantSentinel/internal/config"
	"WarrantSentinel/internal/model"
)

// Selector ranks scored instruments and sizes the winners against the
// configured fixed budget.
type Selector struct {
	cfg *config.SelectionConfig
}

// New creates a selector from the selection config.
func New(cfg *config.SelectionConfig) *Selector {
	return &Selector{cfg: cfg}
}

// Top returns the configured number of best instruments, ranked and
// sized. The input slice is left untouched.
func (s *Selector) Top(instruments []model.ScoredInstrument) []model.ScoredInstrument {
	top := SelectTop(instruments, s.cfg.TopN)
	for i := range top {
		top[i].Position = Size(top[i].Candidate.Ask, s.cfg.BudgetEUR, s.cfg.StopLossPct)
	}
	return top
}

// SelectTop orders instruments best-first and returns the leading n with
// 1-based ranks. Equal scores prefer the tighter spread, then the higher
// omega; the stable sort keeps discovery order beyond that.
func SelectTop(instruments []model.ScoredInstrument, n int) []model.ScoredInstrument {
	out := make([]model.ScoredInstrument, len(instruments))
	copy(out, instruments)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore > out[j].TotalScore
		}
		if out[i].Candidate.SpreadPct != out[j].Candidate.SpreadPct {
			return out[i].Candidate.SpreadPct < out[j].Candidate.SpreadPct
		}
		return out[i].Candidate.Omega > out[j].Candidate.Omega
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Size computes the whole-piece position a fixed budget buys at the ask,
// with the stop price and the money at risk down to the stop.
func Size(ask, budget, stopLossPct float64) model.Position {
	if ask <= 0 || budget <= 0 {
		return model.Position{}
	}
	pieces := int(budget / ask)
	cost := float64(pieces) * ask
	return model.Position{
		Pieces: pieces,
		Cost:   cost,
		Stop:   ask * (1 - stopLossPct),
		Risk:   cost * stopLossPct,
	}
}
