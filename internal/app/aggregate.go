package app

import (
	"math"

	"pitchside/internal/domain"
)

// AverageRatings computes the per-category rating averages for a venue.
// Each category is summed across all reviews and divided by the review
// count (floored at 1 so an unreviewed venue yields all zeros), then
// rounded half away from zero. Pure; recomputed on every read, never
// stored on the venue.
func AverageRatings(v domain.Venue) domain.Ratings {
	var sums struct{ bathrooms, food, parking, fields int }
	for _, r := range v.Reviews {
		sums.bathrooms += r.Ratings.Bathrooms
		sums.food += r.Ratings.Food
		sums.parking += r.Ratings.Parking
		sums.fields += r.Ratings.Fields
	}
	n := len(v.Reviews)
	if n == 0 {
		n = 1
	}
	avg := func(sum int) int {
		return int(math.Round(float64(sum) / float64(n)))
	}
	return domain.Ratings{
		Bathrooms: avg(sums.bathrooms),
		Food:      avg(sums.food),
		Parking:   avg(sums.parking),
		Fields:    avg(sums.fields),
	}
}
