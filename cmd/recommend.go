package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/reviewrank/pkg/catalog"
	"github.com/nikogura/reviewrank/pkg/criteria"
	"github.com/nikogura/reviewrank/pkg/pricing"
	"github.com/nikogura/reviewrank/pkg/recommend"
	"github.com/nikogura/reviewrank/pkg/report"
	"github.com/nikogura/reviewrank/pkg/scorer"
)

//nolint:gochecknoglobals // Cobra boilerplate
var recommendCategory string

//nolint:gochecknoglobals // Cobra boilerplate
var recommendAnswers []string

//nolint:gochecknoglobals // Cobra boilerplate
var recommendSort string

//nolint:gochecknoglobals // Cobra boilerplate
var recommendReport string

//nolint:gochecknoglobals // Cobra boilerplate
var recommendJSON bool

//nolint:gochecknoglobals // Cobra boilerplate
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Filter and rank products against preferences",
	Long: `Evaluates every product of a category against the given answers.

Answers are question=value pairs. Separate several values with commas; "any"
leaves a question unrestricted.

Example:
  reviewrank recommend --category TVs --answer screen_size=65-inch --answer brand-preference=Sony,LG
  reviewrank recommend --category Laptops --answer performance=gaming --sort price_asc --report laptops.md`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().StringVar(&recommendCategory, "category", "", "Product category (required)")
	recommendCmd.Flags().StringArrayVar(&recommendAnswers, "answer", nil, "Answer as question=value[,value...] (repeatable)")
	recommendCmd.Flags().StringVar(&recommendSort, "sort", "", "relevance, price_asc, price_desc or brand (default from config)")
	recommendCmd.Flags().StringVar(&recommendReport, "report", "", "Also write the result as markdown to this path")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "Print the result as JSON")
	_ = recommendCmd.MarkFlagRequired("category")
}

func runRecommend(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	var env environment
	env, err = loadEnvironment()
	if err != nil {
		return err
	}

	var answers catalog.AnswerSet
	answers, err = parseAnswers(recommendAnswers)
	if err != nil {
		return err
	}

	sortName := recommendSort
	if sortName == "" {
		sortName = env.cfg.Recommend.Sort
	}

	var data catalog.Catalog
	data, err = catalog.Load(ctx, env.cfg.CatalogLocation)
	if err != nil {
		return err
	}

	engine := recommend.NewEngine(
		criteria.NewEvaluator(env.questions, criteria.DefaultRules()...),
		pricing.NewResolver(pricing.SelectorsFor(env.questions)...),
		recommend.WithLogger(env.logger),
		recommend.WithParallelism(env.cfg.Recommend.Parallelism),
		recommend.WithCache(time.Duration(env.cfg.Recommend.CacheTTLSeconds)*time.Second),
	)

	var result recommend.Result
	result, err = engine.Recommend(ctx, recommend.Request{
		Category: recommendCategory,
		Products: data.Products,
		Answers:  answers,
		Sort:     recommend.SortStrategy(sortName),
	})
	if err != nil {
		err = errors.Wrap(err, "recommendation failed")
		return err
	}

	env.logger.Info().
		Str("category", result.Category).
		Int("exact", len(result.ExactMatches)).
		Int("close", len(result.CloseMatches)).
		Int("excluded", len(result.Excluded)).
		Msg("recommendation ready")

	if recommendJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(result)
		if err != nil {
			err = errors.Wrap(err, "failed to encode result")
			return err
		}
	}

	if !recommendJSON || recommendReport != "" {
		s := scorer.NewScorer(env.weights)
		scores := make(map[string]scorer.ProductScores)
		for _, list := range [][]recommend.RankedProduct{result.ExactMatches, result.CloseMatches} {
			for _, rp := range list {
				scores[rp.Product.ID] = s.Score(rp.Product)
			}
		}

		content := report.Recommendation(result, scores)
		if !recommendJSON {
			fmt.Print(content)
		}

		if recommendReport != "" {
			err = report.WriteMarkdown(content, recommendReport)
			if err != nil {
				return err
			}
			env.logger.Info().Str("path", recommendReport).Msg("wrote recommendation report")
		}
	}

	return err
}

// parseAnswers reads question=value flags. A value with commas becomes a
// multi-select answer.
func parseAnswers(flags []string) (answers catalog.AnswerSet, err error) {
	answers = make(catalog.AnswerSet, 0, len(flags))
	seen := make(map[string]bool, len(flags))

	for _, flag := range flags {
		id, raw, found := strings.Cut(flag, "=")
		id = strings.TrimSpace(id)
		raw = strings.TrimSpace(raw)
		if !found || id == "" || raw == "" {
			err = errors.Errorf("invalid answer %q (expected question=value)", flag)
			return answers, err
		}
		if seen[id] {
			err = errors.Errorf("question %s answered twice", id)
			return answers, err
		}
		seen[id] = true

		var value any = raw
		if strings.Contains(raw, ",") {
			values := make([]string, 0)
			for _, v := range strings.Split(raw, ",") {
				if v = strings.TrimSpace(v); v != "" {
					values = append(values, v)
				}
			}
			value = values
		}

		answers = append(answers, catalog.Answer{QuestionID: id, Value: value})
	}

	return answers, err
}
