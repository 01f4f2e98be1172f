package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/reviewrank/pkg/catalog"
	"github.com/nikogura/reviewrank/pkg/report"
	"github.com/nikogura/reviewrank/pkg/scorer"
)

//nolint:gochecknoglobals // Cobra boilerplate
var scoreCategory string

//nolint:gochecknoglobals // Cobra boilerplate
var scoreReport string

//nolint:gochecknoglobals // Cobra boilerplate
var scoreCmd = &cobra.Command{
	Use:   "score [product-id...]",
	Short: "Show canonical critic and audience scores",
	Long: `Normalizes every critic review of the given products to 0-100, combines them
with the publication weight table and summarizes user ratings.

With no product ids, every product in the catalog (or in --category) is scored.

Example:
  reviewrank score tv-bravia-7
  reviewrank score --category Laptops --report scores.md`,
	RunE: runScore,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().StringVar(&scoreCategory, "category", "", "Only score products of this category")
	scoreCmd.Flags().StringVar(&scoreReport, "report", "", "Also write the scores as markdown to this path")
}

func runScore(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	var env environment
	env, err = loadEnvironment()
	if err != nil {
		return err
	}

	var data catalog.Catalog
	data, err = catalog.Load(ctx, env.cfg.CatalogLocation)
	if err != nil {
		return err
	}

	var products []catalog.Product
	products, err = selectProducts(data, scoreCategory, args)
	if err != nil {
		return err
	}

	s := scorer.NewScorer(env.weights)
	scores := make([]scorer.ProductScores, 0, len(products))
	for _, p := range products {
		ps := s.Score(p)
		if ps.Unscoreable > 0 {
			env.logger.Warn().Str("product", p.ID).Int("reviews", ps.Unscoreable).Msg("skipped unscoreable critic reviews")
		}
		scores = append(scores, ps)
	}

	content := report.Scores(scores)
	fmt.Print(content)

	if scoreReport != "" {
		err = report.WriteMarkdown(content, scoreReport)
		if err != nil {
			return err
		}
		env.logger.Info().Str("path", scoreReport).Msg("wrote scores report")
	}

	return err
}

func selectProducts(data catalog.Catalog, category string, ids []string) (products []catalog.Product, err error) {
	if len(ids) == 0 {
		if category == "" {
			products = data.Products
			return products, err
		}
		products = data.ByCategory(category)
		if len(products) == 0 {
			err = errors.Errorf("no products in category %s", category)
		}
		return products, err
	}

	for _, id := range ids {
		p, ok := data.Find(id)
		if !ok {
			err = errors.Errorf("product not found: %s", id)
			return products, err
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		products = append(products, p)
	}

	return products, err
}
