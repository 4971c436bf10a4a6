package warrants

import (
	"WarrantSentinel/internal/config"
	"WarrantSentinel/internal/model"
)

// wknLength is the fixed length of a German securities identifier.
const wknLength = 6

// Prefilter drops structurally unusable rows before any scoring work:
// malformed WKNs, missing strike or ask, spreads over the cap and omegas
// under the floor. Duplicate WKNs keep the tighter spread.
func Prefilter(candidates []model.InstrumentCandidate, sc *config.ScraperConfig) []model.InstrumentCandidate {
	keep := make([]model.InstrumentCandidate, 0, len(candidates))
	seen := make(map[string]int, len(candidates))

	for _, c := range candidates {
		if len(c.WKN) != wknLength {
			continue
		}
		if c.Strike <= 0 || c.Ask <= 0 {
			continue
		}
		// The spread cap is inclusive: a spread exactly at the limit stays.
		if c.SpreadPct > sc.SpreadMaxPct {
			continue
		}
		if c.Omega < sc.OmegaMin {
			continue
		}
		if idx, ok := seen[c.WKN]; ok {
			if c.SpreadPct < keep[idx].SpreadPct {
				keep[idx] = c
			}
			continue
		}
		seen[c.WKN] = len(keep)
		keep = append(keep, c)
	}
	return keep
}
