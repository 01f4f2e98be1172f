// Package report renders recommendation results and product scores as markdown.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nikogura/reviewrank/pkg/recommend"
	"github.com/nikogura/reviewrank/pkg/scorer"
)

// Recommendation renders a result. Scores are optional and keyed by product id.
func Recommendation(result recommend.Result, scores map[string]scorer.ProductScores) (content string) {
	var b strings.Builder
	title := cases.Title(language.English)

	fmt.Fprintf(&b, "# Recommendations: %s\n\n", result.Category)
	fmt.Fprintf(&b, "Sorted by: %s\n\n", title.String(strings.ReplaceAll(string(result.Sort), "_", " ")))

	switch {
	case len(result.ExactMatches) > 0:
		section(&b, "Exact Matches", result.ExactMatches, scores)
		section(&b, "Close Matches", result.CloseMatches, scores)
	case result.UsedCloseMatches:
		b.WriteString("No product matched every preference. Showing close matches.\n\n")
		section(&b, "Close Matches", result.CloseMatches, scores)
	default:
		b.WriteString("No products matched.\n\n")
	}

	if len(result.Excluded) > 0 {
		fmt.Fprintf(&b, "%d product(s) excluded by essential criteria.\n", len(result.Excluded))
	}

	content = b.String()
	return content
}

func section(b *strings.Builder, heading string, products []recommend.RankedProduct, scores map[string]scorer.ProductScores) {
	if len(products) == 0 {
		return
	}

	fmt.Fprintf(b, "## %s\n\n", heading)
	b.WriteString("| # | Product | Brand | Price | Critics | Audience | Missed |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")

	for i, rp := range products {
		name := rp.Product.Name
		if name == "" {
			name = rp.Product.ID
		}

		critic, audience := "-", "-"
		if s, ok := scores[rp.Product.ID]; ok {
			if s.HasCritic {
				critic = fmt.Sprintf("%.0f", s.Critic)
			}
			if s.Audience.OK {
				audience = fmt.Sprintf("%.0f", s.Audience.MeanOn100)
			}
		}

		fmt.Fprintf(b, "| %d | %s | %s | %s | %s | %s | %s |\n",
			i+1, escape(name), escape(rp.Product.Brand), price(rp), critic, audience, missed(rp))
	}
	b.WriteString("\n")
}

func price(rp recommend.RankedProduct) (s string) {
	s = "-"
	if rp.HasPrice {
		s = fmt.Sprintf("$%.2f", rp.SortPrice)
	}
	return s
}

func missed(rp recommend.RankedProduct) (s string) {
	labels := make([]string, 0, len(rp.FailedCriteria))
	for _, f := range rp.FailedCriteria {
		labels = append(labels, escape(f.Label))
	}
	s = strings.Join(labels, ", ")
	return s
}

// Scores renders critic and audience scores with the star distribution.
func Scores(scores []scorer.ProductScores) (content string) {
	var b strings.Builder

	b.WriteString("# Scores\n\n")

	for _, s := range scores {
		fmt.Fprintf(&b, "## %s\n\n", s.ProductID)

		if s.HasCritic {
			fmt.Fprintf(&b, "Critics: %.1f / 100 from %d review(s)\n", s.Critic, len(s.Reviews))
		} else {
			b.WriteString("Critics: no score\n")
		}
		if s.Unscoreable > 0 {
			fmt.Fprintf(&b, "Unscoreable reviews: %d\n", s.Unscoreable)
		}
		for _, rc := range s.Reviews {
			fmt.Fprintf(&b, "- %s: %.1f (weight %.2f)\n", rc.Publication, rc.Normalized, rc.Weight)
		}
		b.WriteString("\n")

		if !s.Audience.OK {
			b.WriteString("Audience: no ratings\n\n")
			continue
		}

		fmt.Fprintf(&b, "Audience: %.1f / 100 from %d rating(s)\n\n", s.Audience.MeanOn100, s.Audience.Valid)
		for star := scorer.MaxRating; star >= scorer.MinRating; star-- {
			bucket := s.Audience.Distribution[star]
			fmt.Fprintf(&b, "- %d star: %d (%.1f%%)\n", star, bucket.Count, bucket.Percentage)
		}
		b.WriteString("\n")
	}

	content = b.String()
	return content
}

func escape(s string) (escaped string) {
	escaped = strings.ReplaceAll(s, "|", `\|`)
	return escaped
}

// WriteMarkdown writes markdown content to a file.
func WriteMarkdown(content, outputPath string) (err error) {
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	err = os.WriteFile(outputPath, []byte(content), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write markdown file: %s", outputPath)
		return err
	}

	return err
}
