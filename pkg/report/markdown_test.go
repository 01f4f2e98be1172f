package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikogura/reviewrank/pkg/catalog"
	"github.com/nikogura/reviewrank/pkg/criteria"
	"github.com/nikogura/reviewrank/pkg/recommend"
	"github.com/nikogura/reviewrank/pkg/scorer"
)

func TestRecommendationExact(t *testing.T) {
	result := recommend.Result{
		Category: "TVs",
		Sort:     recommend.SortPriceAsc,
		ExactMatches: []recommend.RankedProduct{
			{Product: catalog.Product{ID: "tv-1", Name: "Bravia | 65", Brand: "Sony"}, SortPrice: 1200, HasPrice: true},
		},
		CloseMatches: []recommend.RankedProduct{
			{
				Product:        catalog.Product{ID: "tv-2", Brand: "LG"},
				FailedCriteria: []criteria.Failure{{QuestionID: "brand-preference", Label: "Brand"}},
			},
		},
		Excluded: []recommend.RankedProduct{{Product: catalog.Product{ID: "tv-3"}}},
	}
	scores := map[string]scorer.ProductScores{
		"tv-1": {ProductID: "tv-1", Critic: 84, HasCritic: true, Audience: scorer.AudienceScore([]float64{5, 4})},
	}

	content := Recommendation(result, scores)

	for _, want := range []string{
		"# Recommendations: TVs",
		"Sorted by: Price Asc",
		"## Exact Matches",
		`| 1 | Bravia \| 65 | Sony | $1200.00 | 84 | 90 |  |`,
		"## Close Matches",
		"| 1 | tv-2 | LG | - | - | - | Brand |",
		"1 product(s) excluded",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Expected report to contain %q, got:\n%s", want, content)
		}
	}
}

func TestRecommendationCloseFallback(t *testing.T) {
	result := recommend.Result{
		Category:         "Laptops",
		Sort:             recommend.SortRelevance,
		UsedCloseMatches: true,
		CloseMatches: []recommend.RankedProduct{
			{Product: catalog.Product{ID: "lap-1"}, FailedCriteria: []criteria.Failure{{Label: "Brand"}, {Label: "Memory"}}},
		},
	}

	content := Recommendation(result, nil)

	if !strings.Contains(content, "Showing close matches") {
		t.Errorf("Expected close match notice, got:\n%s", content)
	}
	if strings.Contains(content, "## Exact Matches") {
		t.Error("Expected no exact match section")
	}
	if !strings.Contains(content, "Brand, Memory") {
		t.Errorf("Expected failed criteria, got:\n%s", content)
	}
}

func TestRecommendationEmpty(t *testing.T) {
	content := Recommendation(recommend.Result{Category: "TVs", Sort: recommend.SortBrand}, nil)
	if !strings.Contains(content, "No products matched.") {
		t.Errorf("Expected empty notice, got:\n%s", content)
	}
}

func TestScores(t *testing.T) {
	content := Scores([]scorer.ProductScores{
		{
			ProductID:   "tv-1",
			Critic:      83.3,
			HasCritic:   true,
			Reviews:     []scorer.ReviewContribution{{Publication: "RTINGS", Normalized: 85, Weight: 1}},
			Unscoreable: 1,
			Audience:    scorer.AudienceScore([]float64{5, 5, 4, 1}),
		},
		{ProductID: "tv-2"},
	})

	for _, want := range []string{
		"## tv-1",
		"Critics: 83.3 / 100 from 1 review(s)",
		"Unscoreable reviews: 1",
		"- RTINGS: 85.0 (weight 1.00)",
		"Audience: 75.0 / 100 from 4 rating(s)",
		"- 5 star: 2 (50.0%)",
		"- 1 star: 1 (25.0%)",
		"## tv-2",
		"Critics: no score",
		"Audience: no ratings",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Expected scores to contain %q, got:\n%s", want, content)
		}
	}
}

func TestWriteMarkdown(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "nested", "report.md")
	testContent := "# Recommendations\n"

	err := WriteMarkdown(testContent, testFile)
	if err != nil {
		t.Fatalf("Failed to write markdown: %v", err)
	}

	data, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}

	if string(data) != testContent {
		t.Errorf("Expected content '%s', got '%s'", testContent, string(data))
	}
}
