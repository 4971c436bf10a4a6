package scoring

import "WarrantSentinel/internal/config"

// evalBands returns the points of the first band that covers v; bands
// carry ascending inclusive upper bounds.
func evalBands(bands []config.Band, v float64, fallback int) int {
	for _, b := range bands {
		if v <= b.UpTo {
			return b.Points
		}
	}
	return fallback
}

// evalWindows returns the points of the first window containing v, both
// ends inclusive.
func evalWindows(windows []config.Window, v float64, fallback int) int {
	for _, w := range windows {
		if v >= w.From && v <= w.To {
			return w.Points
		}
	}
	return fallback
}
