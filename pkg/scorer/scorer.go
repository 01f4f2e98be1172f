// Package scorer turns critic reviews and user ratings into canonical 0..100 scores.
package scorer

import (
	"github.com/nikogura/reviewrank/pkg/catalog"
)

// Scorer calculates canonical scores from review data.
type Scorer struct {
	weights WeightTable
}

// ReviewContribution records how one critic review entered the aggregate.
type ReviewContribution struct {
	Publication string  `json:"publication"`
	Normalized  float64 `json:"normalized"`
	Weight      float64 `json:"weight"`
}

// ProductScores holds every canonical score for one product.
type ProductScores struct {
	ProductID   string               `json:"product_id"`
	Critic      float64              `json:"critic"`
	HasCritic   bool                 `json:"has_critic"`
	Reviews     []ReviewContribution `json:"reviews"`
	Audience    AudienceSummary      `json:"audience"`
	Unscoreable int                  `json:"unscoreable_reviews"`
}

// NewScorer creates a scorer that weights publications with the given table.
func NewScorer(weights WeightTable) (scorer *Scorer) {
	scorer = &Scorer{weights: weights}
	return scorer
}

// Score computes critic and audience scores for a product.
func (s *Scorer) Score(product catalog.Product) (scores ProductScores) {
	contributions := s.CriticBreakdown(product.CriticReviews)
	critic, hasCritic := aggregate(contributions)

	scores = ProductScores{
		ProductID:   product.ID,
		Critic:      critic,
		HasCritic:   hasCritic,
		Reviews:     contributions,
		Audience:    AudienceScore(product.Ratings()),
		Unscoreable: len(product.CriticReviews) - len(contributions),
	}

	return scores
}
