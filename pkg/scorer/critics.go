package scorer

import (
	"github.com/nikogura/reviewrank/pkg/catalog"
)

// CriticScore combines critic reviews into one canonical score: the weighted mean
// of every review that normalizes. ok is false when no review normalizes, so an
// unscored product is never reported as scoring zero.
func (s *Scorer) CriticScore(reviews []catalog.CriticReview) (score float64, ok bool) {
	score, ok = aggregate(s.CriticBreakdown(reviews))
	return score, ok
}

// CriticBreakdown returns the normalized value and weight of every usable review.
func (s *Scorer) CriticBreakdown(reviews []catalog.CriticReview) (contributions []ReviewContribution) {
	contributions = make([]ReviewContribution, 0, len(reviews))

	for _, r := range reviews {
		normalized, ok := Normalize(r.Score, r.Scale)
		if !ok {
			continue
		}

		contributions = append(contributions, ReviewContribution{
			Publication: r.Publication,
			Normalized:  normalized,
			Weight:      s.weights.Weight(r.Publication),
		})
	}

	return contributions
}

func aggregate(contributions []ReviewContribution) (score float64, ok bool) {
	switch len(contributions) {
	case 0:
		return score, false
	case 1:
		// Weight only matters relative to other reviews.
		score = contributions[0].Normalized
		return score, true
	}

	var weighted, total float64
	for _, c := range contributions {
		weighted += c.Normalized * c.Weight
		total += c.Weight
	}

	score = clamp(weighted / total)

	return score, true
}
