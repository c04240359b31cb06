package types

import (
	"regexp"
	"strconv"
)

var griftRatingPattern = regexp.MustCompile(`(?i)(?:###\s*)?Grift Rating:?\**\s*(\d+(?:\.\d+)?)\s*/\s*10`)

// ParseGriftRating extracts the "Grift Rating: N/10" score from an analysis.
// It is display-only; a missing or out-of-range rating reports false.
func ParseGriftRating(analysis string) (float64, bool) {
	m := griftRatingPattern.FindStringSubmatch(analysis)
	if m == nil {
		return 0, false
	}
	rating, err := strconv.ParseFloat(m[1], 64)
	if err != nil || rating < 0 || rating > 10 {
		return 0, false
	}
	return rating, true
}
