package warrants

import (
	"regexp"
	"strings"
)

// maxNameVariants caps how many names discovery probes per underlying.
const maxNameVariants = 8

// indexNames maps index tickers to their listing names; those never match
// by company name.
var indexNames = map[string][]string{
	"^GDAXI": {"DAX"},
	"^NDX":   {"NASDAQ-100"},
	"^GSPC":  {"S-P-500"},
}

var (
	legalSuffixPattern = regexp.MustCompile(`(?i)\b(Inc|Incorporated|Corp|Corporation|Company|PLC|N\.V\.|AG|SE|S\.A\.|Ltd|Limited|Holdings?)\b\.?`)
	multiDashPattern   = regexp.MustCompile(`-{2,}`)
)

// NameVariants builds the ordered names discovery will try for a ticker,
// strongest candidates first. Provider names come from the price series
// metadata; the bare ticker is the last resort.
func NameVariants(ticker, shortName, longName string) []string {
	variants := make([]string, 0, maxNameVariants)
	if mapped, ok := indexNames[ticker]; ok {
		variants = append(variants, mapped...)
	}

	for _, name := range []string{shortName, longName} {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		variants = append(variants, name, Slugify(name))
		if stripped := stripLegalSuffix(name); stripped != "" && stripped != name {
			variants = append(variants, stripped, Slugify(stripped))
		}
	}

	variants = dedupeFold(variants)
	if len(variants) > maxNameVariants {
		variants = variants[:maxNameVariants]
	}
	if len(variants) == 0 {
		variants = []string{BaseTicker(ticker)}
	}
	return variants
}

// BaseTicker strips the exchange suffix used by the market data source.
func BaseTicker(ticker string) string {
	ticker = strings.TrimSuffix(ticker, ".DE")
	ticker = strings.TrimSuffix(ticker, ".US")
	return ticker
}

// Slugify turns a company name into the URL form of the listing source.
func Slugify(name string) string {
	s := strings.ReplaceAll(name, "&", " and ")
	for _, ch := range []string{"/", ",", ".", "'", "’"} {
		s = strings.ReplaceAll(s, ch, " ")
	}
	s = strings.Join(strings.Fields(s), "-")
	s = multiDashPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func stripLegalSuffix(name string) string {
	stripped := legalSuffixPattern.ReplaceAllString(name, " ")
	return strings.Join(strings.Fields(stripped), " ")
}

func dedupeFold(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}
