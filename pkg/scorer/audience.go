package scorer

import (
	"math"
)

// MinRating and MaxRating bound a valid user rating.
const (
	MinRating = 1
	MaxRating = 5
)

// Bucket is one star level of the rating distribution.
type Bucket struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// AudienceSummary is the canonical audience score and star distribution.
// OK is false, and Distribution nil, when no rating was valid.
type AudienceSummary struct {
	MeanOn100    float64        `json:"mean_on_100"`
	Distribution map[int]Bucket `json:"distribution"`
	Valid        int            `json:"valid_ratings"`
	OK           bool           `json:"ok"`
}

// AudienceScore summarizes 1..5 user ratings. Ratings outside the range are
// ignored rather than clamped; fractional ratings count toward the nearest star.
func AudienceScore(ratings []float64) (summary AudienceSummary) {
	counts := make(map[int]int, MaxRating)
	var sum float64

	for _, r := range ratings {
		if math.IsNaN(r) || r < MinRating || r > MaxRating {
			continue
		}
		counts[int(math.Round(r))]++
		sum += r
		summary.Valid++
	}

	if summary.Valid == 0 {
		return summary
	}

	summary.OK = true
	summary.MeanOn100 = clamp(sum / float64(summary.Valid) / MaxRating * 100)
	summary.Distribution = make(map[int]Bucket, MaxRating)

	for star := MinRating; star <= MaxRating; star++ {
		summary.Distribution[star] = Bucket{
			Count:      counts[star],
			Percentage: float64(counts[star]) / float64(summary.Valid) * 100,
		}
	}

	return summary
}
