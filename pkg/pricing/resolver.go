// Package pricing resolves one comparable price per product for sorting.
package pricing

import (
	"strings"

	"github.com/nikogura/reviewrank/pkg/catalog"
	"github.com/nikogura/reviewrank/pkg/criteria"
	"github.com/nikogura/reviewrank/pkg/specs"
)

// shorthandVariantKey is the attribute ParsePrices uses for {variant: price} maps.
const shorthandVariantKey = "variant"

// VariantSelector names a question whose answer picks the priced variant, e.g.
// the TV screen size.
type VariantSelector struct {
	Category   string
	QuestionID string
	VariantKey string
	Band       func(answer string) (specs.Band, bool)
}

// Price is a resolved sort price. Known is false when no valid price exists.
type Price struct {
	Amount float64
	Known  bool
}

// Resolver computes sort prices. It is read-only after construction.
type Resolver struct {
	selectors []VariantSelector
}

// variantTolerance widens a bare numeric answer so "13" selects a 13.3 variant.
const variantTolerance = 0.5

// DefaultSelectors returns the selectors of the built-in question definitions.
func DefaultSelectors() (selectors []VariantSelector) {
	selectors = SelectorsFor(catalog.DefaultQuestions())
	return selectors
}

// SelectorsFor builds a selector for every question that declares a variant key.
// Categories with size labels resolve answers through them; others match the
// answer's number.
func SelectorsFor(questions []catalog.Question) (selectors []VariantSelector) {
	selectors = make([]VariantSelector, 0)
	for _, q := range questions {
		if strings.TrimSpace(q.VariantKey) == "" {
			continue
		}

		band := criteria.SizeBand(q.Category)
		if band == nil {
			band = numericBand
		}

		selectors = append(selectors, VariantSelector{
			Category:   q.Category,
			QuestionID: q.ID,
			VariantKey: q.VariantKey,
			Band:       band,
		})
	}
	return selectors
}

func numericBand(answer string) (band specs.Band, ok bool) {
	n, ok := specs.ParseNumeric(answer)
	if !ok {
		return band, ok
	}
	band = specs.Band{Min: n - variantTolerance, Max: n + variantTolerance}
	return band, ok
}

// NewResolver creates a resolver honouring the given variant selectors.
func NewResolver(selectors ...VariantSelector) (resolver *Resolver) {
	resolver = &Resolver{selectors: selectors}
	return resolver
}

// Resolve returns the price to sort product by. When an answer selects a variant
// and the product prices its variants, only variants inside the selected band
// count; if none of them do, the price is unknown. Otherwise the lowest valid
// price is used.
func (r *Resolver) Resolve(product catalog.Product, answers catalog.AnswerSet) (price float64, ok bool) {
	prices := product.Prices()
	if len(prices) == 0 {
		return price, ok
	}

	for _, sel := range r.selectors {
		if !strings.EqualFold(sel.Category, product.Category) || sel.Band == nil {
			continue
		}

		answer, found := answers.Get(sel.QuestionID)
		if !found || answer.Unrestricted() {
			continue
		}

		bands := make([]specs.Band, 0)
		for _, v := range answer.Values() {
			if b, parsed := sel.Band(v); parsed {
				bands = append(bands, b)
			}
		}
		if len(bands) == 0 || !anyKeyed(prices, sel.VariantKey) {
			continue
		}

		price, ok = specs.MinPrice(inBands(prices, sel.VariantKey, bands))
		return price, ok
	}

	price, ok = specs.MinPrice(prices)

	return price, ok
}

// ResolvePrice wraps Resolve as a Price.
func (r *Resolver) ResolvePrice(product catalog.Product, answers catalog.AnswerSet) (price Price) {
	price.Amount, price.Known = r.Resolve(product, answers)
	return price
}

// Less orders a before b. Unknown prices always sort last, whichever the direction.
func Less(a, b Price, descending bool) (less bool) {
	switch {
	case a.Known != b.Known:
		less = a.Known
	case !a.Known:
		less = false
	case descending:
		less = a.Amount > b.Amount
	default:
		less = a.Amount < b.Amount
	}
	return less
}

func variantAttribute(vp specs.VariantPrice, key string) (value any, ok bool) {
	if key != "" {
		if value, ok = vp.Attribute(key); ok {
			return value, ok
		}
	}
	value, ok = vp.Attribute(shorthandVariantKey)
	return value, ok
}

func anyKeyed(prices []specs.VariantPrice, key string) (ok bool) {
	for _, vp := range prices {
		if _, found := variantAttribute(vp, key); found {
			return true
		}
	}
	return ok
}

func inBands(prices []specs.VariantPrice, key string, bands []specs.Band) (matched []specs.VariantPrice) {
	for _, vp := range prices {
		attr, found := variantAttribute(vp, key)
		if !found {
			continue
		}
		size, parsed := specs.ParseNumeric(attr)
		if !parsed {
			continue
		}
		for _, b := range bands {
			if b.Contains(size) {
				matched = append(matched, vp)
				break
			}
		}
	}
	return matched
}
