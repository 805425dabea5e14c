package rewards

import "strings"

// Stars returns the 1-3 star rating for a session accuracy (0.0-1.0).
func Stars(accuracy float64) int {
	switch {
	case accuracy >= 0.90:
		return 3
	case accuracy >= 0.60:
		return 2
	default:
		return 1
	}
}

// StarLine renders a rating as filled and empty stars, e.g. "★★☆".
func StarLine(stars int) string {
	stars = min(max(stars, 0), 3)
	return strings.Repeat("★", stars) + strings.Repeat("☆", 3-stars)
}
