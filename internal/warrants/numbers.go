package warrants

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var numberCleanPattern = regexp.MustCompile(`[^\d,.\-]`)

// ParseGermanNumber converts German-formatted figures ("1.234,56") to a
// float. When a comma is present the dots are thousands separators;
// plain decimal-point numbers pass through unchanged.
func ParseGermanNumber(s string) (float64, error) {
	cleaned := numberCleanPattern.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, fmt.Errorf("no number in %q", s)
	}
	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	return f, nil
}

// parseNumber reads a JSON value that may arrive as a number or as a
// German-formatted string.
func parseNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := ParseGermanNumber(n)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// detectCurrency finds a currency marker inside a quote string.
func detectCurrency(s string) string {
	switch {
	case strings.Contains(s, "€") || strings.Contains(s, "EUR"):
		return "EUR"
	case strings.Contains(s, "$") || strings.Contains(s, "USD"):
		return "USD"
	default:
		return ""
	}
}
