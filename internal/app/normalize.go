package app

import (
	"math"
	"strconv"
	"strings"

	"pitchside/internal/domain"
)

// coerceScore turns a raw form value into a category score. Accepts plain
// integers and decimal strings (comma or dot separator); anything absent
// or unparseable coerces to 0. No range or sign validation is applied.
func coerceScore(raw string) int {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(math.Round(f))
	}
	return 0
}

// normalizeRatings builds the strict Ratings record from loose input.
func normalizeRatings(p domain.ReviewPayload) domain.Ratings {
	return domain.Ratings{
		Bathrooms: coerceScore(p.Bathrooms),
		Food:      coerceScore(p.Food),
		Parking:   coerceScore(p.Parking),
		Fields:    coerceScore(p.Fields),
	}
}

// normalizeAuthor falls back to the anonymous sentinel on blank input.
func normalizeAuthor(author string) string {
	if strings.TrimSpace(author) == "" {
		return domain.AnonymousAuthor
	}
	return author
}
