package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WarrantSentinel/internal/config"
	"WarrantSentinel/internal/model"
)

func scored(wkn string, score int, spread, omega float64) model.ScoredInstrument {
	return model.ScoredInstrument{
		Candidate:  model.InstrumentCandidate{WKN: wkn, SpreadPct: spread, Omega: omega, Ask: 4.0},
		TotalScore: score,
	}
}

func TestSelectTopOrdersAndRanks(t *testing.T) {
	in := []model.ScoredInstrument{
		scored("AA1111", 80, 1.5, 6),
		scored("BB2222", 95, 1.0, 7),
		scored("CC3333", 80, 0.9, 5),
		scored("DD4444", 60, 0.5, 9),
	}

	top := SelectTop(in, 3)
	require.Len(t, top, 3)

	assert.Equal(t, "BB2222", top[0].Candidate.WKN)
	assert.Equal(t, "CC3333", top[1].Candidate.WKN, "equal score, tighter spread first")
	assert.Equal(t, "AA1111", top[2].Candidate.WKN)

	for i, s := range top {
		assert.Equal(t, i+1, s.Rank)
	}
}

func TestSelectTopOmegaBreaksFullTie(t *testing.T) {
	in := []model.ScoredInstrument{
		scored("AA1111", 70, 1.0, 5),
		scored("BB2222", 70, 1.0, 8),
	}

	top := SelectTop(in, 2)
	assert.Equal(t, "BB2222", top[0].Candidate.WKN)
	assert.Equal(t, "AA1111", top[1].Candidate.WKN)
}

func TestSelectTopShortInput(t *testing.T) {
	in := []model.ScoredInstrument{scored("AA1111", 50, 1.0, 5)}

	top := SelectTop(in, 3)
	require.Len(t, top, 1)
	assert.Equal(t, 1, top[0].Rank)
}

func TestSelectTopLeavesInputUntouched(t *testing.T) {
	in := []model.ScoredInstrument{
		scored("AA1111", 10, 1.0, 5),
		scored("BB2222", 90, 1.0, 5),
	}

	_ = SelectTop(in, 1)
	assert.Equal(t, "AA1111", in[0].Candidate.WKN)
	assert.Equal(t, 0, in[0].Rank)
}

func TestSize(t *testing.T) {
	p := Size(4.25, 200, 0.10)
	assert.Equal(t, 47, p.Pieces)
	assert.InDelta(t, 199.75, p.Cost, 1e-9)
	assert.InDelta(t, 3.825, p.Stop, 1e-9)
	assert.InDelta(t, 19.975, p.Risk, 1e-9)
}

func TestSizeAskAboveBudget(t *testing.T) {
	p := Size(250, 200, 0.10)
	assert.Equal(t, 0, p.Pieces)
	assert.Zero(t, p.Cost)
	assert.Zero(t, p.Risk)
}

func TestSizeRejectsBadInput(t *testing.T) {
	assert.Equal(t, model.Position{}, Size(0, 200, 0.10))
	assert.Equal(t, model.Position{}, Size(4.25, 0, 0.10))
}

func TestTopAppliesSizing(t *testing.T) {
	s := New(&config.SelectionConfig{TopN: 2, BudgetEUR: 200, StopLossPct: 0.10})

	top := s.Top([]model.ScoredInstrument{
		scored("AA1111", 80, 1.0, 5),
		scored("BB2222", 90, 1.0, 5),
		scored("CC3333", 70, 1.0, 5),
	})

	require.Len(t, top, 2)
	assert.Equal(t, "BB2222", top[0].Candidate.WKN)
	assert.Equal(t, 50, top[0].Position.Pieces)
	assert.InDelta(t, 200.0, top[0].Position.Cost, 1e-9)
}
