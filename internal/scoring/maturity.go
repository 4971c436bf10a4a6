package scoring

import (
	"regexp"
	"strings"
	"time"

	"WarrantSentinel/internal/model"
)

var maturityPattern = regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`)

// DaysToMaturity resolves the remaining runtime of a candidate: the
// source's own day count when present, otherwise parsed from the raw
// maturity date. Unparseable dates yield 0, past dates clamp to 0.
func DaysToMaturity(c *model.InstrumentCandidate, now time.Time) int {
	if c.DaysToMaturity > 0 {
		return c.DaysToMaturity
	}
	raw := strings.TrimSpace(c.Maturity)
	if raw == "" {
		return 0
	}
	for _, layout := range []string{"02.01.2006", "02.01.06"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return remainingDays(ts, now)
		}
	}
	// Some rows embed the date in surrounding text.
	if m := maturityPattern.FindString(raw); m != "" {
		if ts, err := time.Parse("02.01.2006", m); err == nil {
			return remainingDays(ts, now)
		}
	}
	return 0
}

func remainingDays(maturity, now time.Time) int {
	m := time.Date(maturity.Year(), maturity.Month(), maturity.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(m.Sub(n).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
