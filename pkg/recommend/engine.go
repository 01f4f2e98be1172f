package recommend

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nikogura/reviewrank/pkg/catalog"
	"github.com/nikogura/reviewrank/pkg/criteria"
	"github.com/nikogura/reviewrank/pkg/pricing"
)

// Evaluator decides single criteria. *criteria.Evaluator satisfies it.
type Evaluator interface {
	CheckCategory(category string) error
	Evaluate(product catalog.Product, category, questionID string, value any) (criteria.Result, error)
}

// PriceResolver supplies sort prices. *pricing.Resolver satisfies it.
type PriceResolver interface {
	ResolvePrice(product catalog.Product, answers catalog.AnswerSet) pricing.Price
}

// Engine runs recommendation requests. It holds no per-request state and is
// safe for concurrent use.
type Engine struct {
	evaluator   Evaluator
	resolver    PriceResolver
	logger      zerolog.Logger
	parallelism int
	cache       *cache.Cache
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for state transitions and cache hits.
func WithLogger(logger zerolog.Logger) (opt Option) {
	opt = func(e *Engine) {
		e.logger = logger.With().Str("component", "recommend").Logger()
	}
	return opt
}

// WithParallelism evaluates up to n products concurrently. n < 2 is sequential.
func WithParallelism(n int) (opt Option) {
	opt = func(e *Engine) {
		e.parallelism = n
	}
	return opt
}

// WithCache memoizes results for ttl, keyed by a digest of the request.
func WithCache(ttl time.Duration) (opt Option) {
	opt = func(e *Engine) {
		if ttl > 0 {
			e.cache = cache.New(ttl, 2*ttl)
		}
	}
	return opt
}

// NewEngine creates an engine.
func NewEngine(evaluator Evaluator, resolver PriceResolver, opts ...Option) (engine *Engine) {
	engine = &Engine{
		evaluator:   evaluator,
		resolver:    resolver,
		logger:      zerolog.Nop(),
		parallelism: 1,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// run tracks the progress of one Recommend call.
type run struct {
	state  State
	logger zerolog.Logger
	start  time.Time
}

func (r *run) advance(next State) {
	r.state = next
	r.logger.Debug().
		Str("state", next.String()).
		Dur("elapsed", time.Since(r.start)).
		Msg("recommendation state")
}

// Recommend evaluates every answer against every product of the request's
// category, partitions the products and sorts them. Identical requests yield
// identical results.
func (e *Engine) Recommend(ctx context.Context, req Request) (result Result, err error) {
	req.Sort, err = ParseSort(string(req.Sort))
	if err != nil {
		return result, err
	}

	err = e.evaluator.CheckCategory(req.Category)
	if err != nil {
		return result, err
	}

	r := &run{
		logger: e.logger.With().Str("category", req.Category).Str("sort", string(req.Sort)).Logger(),
		start:  time.Now(),
	}
	r.advance(Initialized)

	key, cacheable := e.cacheKey(req)
	if cacheable {
		if cached, found := e.cache.Get(key); found {
			r.logger.Debug().Str("key", key).Msg("cache hit")
			result = cached.(Result).clone()
			return result, err
		}
	}

	products := inCategory(req.Products, req.Category)

	r.advance(Evaluating)
	ranked, err := e.evaluate(ctx, products, req)
	if err != nil {
		return result, err
	}

	r.advance(Partitioned)
	result = partition(ranked)
	result.Category = req.Category
	result.Sort = req.Sort

	err = sortMatches(&result, req.Sort)
	if err != nil {
		return result, err
	}
	r.advance(Sorted)

	r.logger.Debug().
		Int("products", len(products)).
		Int("exact", len(result.ExactMatches)).
		Int("close", len(result.CloseMatches)).
		Int("excluded", len(result.Excluded)).
		Bool("used_close_matches", result.UsedCloseMatches).
		Msg("recommendation complete")

	if cacheable {
		e.cache.SetDefault(key, result.clone())
	}

	r.advance(Done)

	return result, err
}

func inCategory(products []catalog.Product, category string) (matched []catalog.Product) {
	matched = make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if strings.EqualFold(strings.TrimSpace(p.Category), strings.TrimSpace(category)) {
			matched = append(matched, p)
		}
	}
	return matched
}

// evaluate runs every criterion for every product. Results are written by index,
// so the order never depends on scheduling.
func (e *Engine) evaluate(ctx context.Context, products []catalog.Product, req Request) (ranked []RankedProduct, err error) {
	ranked = make([]RankedProduct, len(products))

	if e.parallelism < 2 {
		for i := range products {
			if err = ctx.Err(); err != nil {
				err = errors.Wrap(err, "recommendation cancelled")
				return nil, err
			}
			ranked[i], err = e.rank(products[i], req)
			if err != nil {
				return nil, err
			}
		}
		return ranked, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)

	for i := range products {
		g.Go(func() (gerr error) {
			if gerr = gctx.Err(); gerr != nil {
				gerr = errors.Wrap(gerr, "recommendation cancelled")
				return gerr
			}
			ranked[i], gerr = e.rank(products[i], req)
			return gerr
		})
	}

	err = g.Wait()
	if err != nil {
		return nil, err
	}

	return ranked, err
}

// rank collects every failed criterion of one product, not just the first.
func (e *Engine) rank(product catalog.Product, req Request) (ranked RankedProduct, err error) {
	ranked = RankedProduct{
		Product:        product,
		FailedCriteria: make([]criteria.Failure, 0),
	}

	for _, answer := range req.Answers {
		var res criteria.Result
		res, err = e.evaluator.Evaluate(product, req.Category, answer.QuestionID, answer.Value)
		if err != nil {
			err = errors.Wrapf(err, "failed to evaluate product %s", product.ID)
			return ranked, err
		}
		if !res.Pass && res.Failure != nil {
			ranked.FailedCriteria = append(ranked.FailedCriteria, *res.Failure)
		}
	}

	price := e.resolver.ResolvePrice(product, req.Answers)
	ranked.SortPrice = price.Amount
	ranked.HasPrice = price.Known

	return ranked, err
}

// partition splits products into exact, close and excluded. A close match failed
// only non-essential criteria.
func partition(ranked []RankedProduct) (result Result) {
	result.ExactMatches = make([]RankedProduct, 0)
	result.CloseMatches = make([]RankedProduct, 0)
	result.Excluded = make([]RankedProduct, 0)

	for _, rp := range ranked {
		switch {
		case len(rp.FailedCriteria) == 0:
			result.ExactMatches = append(result.ExactMatches, rp)
		case rp.Essential():
			result.Excluded = append(result.Excluded, rp)
		default:
			result.CloseMatches = append(result.CloseMatches, rp)
		}
	}

	result.UsedCloseMatches = len(result.ExactMatches) == 0 && len(result.CloseMatches) > 0

	return result
}

// sortMatches orders exact matches by strategy, and close matches by failure
// count first. Ties keep input order.
func sortMatches(result *Result, strategy SortStrategy) (err error) {
	less, err := comparator(strategy)
	if err != nil {
		return err
	}

	exact := result.ExactMatches
	sort.SliceStable(exact, func(i, j int) bool { return less(exact[i], exact[j]) })

	closeMatches := result.CloseMatches
	sort.SliceStable(closeMatches, func(i, j int) bool {
		a, b := closeMatches[i], closeMatches[j]
		if len(a.FailedCriteria) != len(b.FailedCriteria) {
			return len(a.FailedCriteria) < len(b.FailedCriteria)
		}
		return less(a, b)
	})

	return err
}

func comparator(strategy SortStrategy) (less func(a, b RankedProduct) bool, err error) {
	switch strategy {
	case SortRelevance:
		less = func(a, b RankedProduct) bool { return false }
	case SortPriceAsc, SortPriceDesc:
		descending := strategy == SortPriceDesc
		less = func(a, b RankedProduct) bool {
			return pricing.Less(
				pricing.Price{Amount: a.SortPrice, Known: a.HasPrice},
				pricing.Price{Amount: b.SortPrice, Known: b.HasPrice},
				descending,
			)
		}
	case SortBrand:
		less = func(a, b RankedProduct) bool {
			ab := strings.ToLower(strings.TrimSpace(a.Product.Brand))
			bb := strings.ToLower(strings.TrimSpace(b.Product.Brand))
			if (ab == "") != (bb == "") {
				return bb == ""
			}
			return ab < bb
		}
	default:
		err = errors.Wrapf(ErrUnknownSort, "%q", strategy)
	}
	return less, err
}
