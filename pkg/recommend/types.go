// Package recommend filters a category's products against an answer set and
// returns ranked exact matches plus explainable close matches.
package recommend

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/nikogura/reviewrank/pkg/catalog"
	"github.com/nikogura/reviewrank/pkg/criteria"
)

// ErrUnknownSort is returned for an unsupported sort strategy.
var ErrUnknownSort = errors.New("unknown sort strategy")

// SortStrategy orders the matches of a result.
type SortStrategy string

const (
	SortRelevance SortStrategy = "relevance"
	SortPriceAsc  SortStrategy = "price_asc"
	SortPriceDesc SortStrategy = "price_desc"
	SortBrand     SortStrategy = "brand"
)

// ParseSort reads a sort strategy name. An empty name means relevance.
func ParseSort(name string) (strategy SortStrategy, err error) {
	switch SortStrategy(strings.ToLower(strings.TrimSpace(name))) {
	case "", SortRelevance:
		strategy = SortRelevance
	case SortPriceAsc, "price":
		strategy = SortPriceAsc
	case SortPriceDesc:
		strategy = SortPriceDesc
	case SortBrand:
		strategy = SortBrand
	default:
		err = errors.Wrapf(ErrUnknownSort, "%q", name)
	}
	return strategy, err
}

// State is the stage a recommendation run has reached.
type State int

const (
	Initialized State = iota
	Evaluating
	Partitioned
	Sorted
	Done
)

func (s State) String() (name string) {
	switch s {
	case Initialized:
		name = "initialized"
	case Evaluating:
		name = "evaluating"
	case Partitioned:
		name = "partitioned"
	case Sorted:
		name = "sorted"
	case Done:
		name = "done"
	}
	return name
}

// Request is one recommendation call. Products of other categories are ignored.
type Request struct {
	Category string            `json:"category"`
	Products []catalog.Product `json:"products"`
	Answers  catalog.AnswerSet `json:"answers"`
	Sort     SortStrategy      `json:"sort"`
}

// RankedProduct is a product with its resolved sort price and failed criteria.
type RankedProduct struct {
	Product        catalog.Product    `json:"product"`
	SortPrice      float64            `json:"sort_price"`
	HasPrice       bool               `json:"has_price"`
	FailedCriteria []criteria.Failure `json:"failed_criteria"`
}

// Essential reports whether any failed criterion is essential.
func (rp RankedProduct) Essential() (essential bool) {
	for _, f := range rp.FailedCriteria {
		if f.Essential {
			return true
		}
	}
	return essential
}

// Result is the outcome of a recommendation call.
type Result struct {
	Category         string          `json:"category"`
	Sort             SortStrategy    `json:"sort"`
	ExactMatches     []RankedProduct `json:"exact_matches"`
	CloseMatches     []RankedProduct `json:"close_matches"`
	Excluded         []RankedProduct `json:"excluded"`
	UsedCloseMatches bool            `json:"used_close_matches"`
}

// Primary returns the list to present: the exact matches, or the close matches
// when nothing matched exactly.
func (r Result) Primary() (products []RankedProduct) {
	products = r.ExactMatches
	if r.UsedCloseMatches {
		products = r.CloseMatches
	}
	return products
}

func (r Result) clone() (c Result) {
	c = r
	c.ExactMatches = cloneRanked(r.ExactMatches)
	c.CloseMatches = cloneRanked(r.CloseMatches)
	c.Excluded = cloneRanked(r.Excluded)
	return c
}

func cloneRanked(in []RankedProduct) (out []RankedProduct) {
	out = make([]RankedProduct, len(in))
	for i, rp := range in {
		out[i] = rp
		out[i].FailedCriteria = make([]criteria.Failure, len(rp.FailedCriteria))
		copy(out[i].FailedCriteria, rp.FailedCriteria)
	}
	return out
}
