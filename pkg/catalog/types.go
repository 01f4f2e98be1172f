package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nikogura/reviewrank/pkg/specs"
)

// AnySentinel is the answer value that expresses no restriction.
const AnySentinel = "any"

// Catalog is the content store export the engine consumes.
type Catalog struct {
	Products []Product `json:"products" validate:"dive"`
}

// Product is an immutable product record owned by the content store.
type Product struct {
	ID             string         `json:"id" validate:"required"`
	Name           string         `json:"name"`
	Brand          string         `json:"brand"`
	Category       string         `json:"category" validate:"required"`
	Price          any            `json:"price,omitempty"`
	Specifications map[string]any `json:"specifications"`
	CriticReviews  []CriticReview `json:"critic_reviews" validate:"dive"`
	UserRatings    []any          `json:"user_ratings,omitempty"`
}

// CriticReview is one third-party review. Score and Scale arrive as numbers or strings.
type CriticReview struct {
	Publication string `json:"publication"`
	Score       any    `json:"score"`
	Scale       any    `json:"scale"`
	Summary     string `json:"summary,omitempty"`
}

// AnswerDomain describes which answers a question accepts.
type AnswerDomain string

const (
	DomainSingle AnswerDomain = "single"
	DomainMulti  AnswerDomain = "multi"
	DomainAny    AnswerDomain = "any"
)

// Accepts reports whether the answer fits the question's domain. A single-choice
// question takes one value; multi and any take any number. Unrestricted answers
// are always accepted.
func (q Question) Accepts(answer Answer) (ok bool) {
	if q.AnswerDomain != DomainSingle || answer.Unrestricted() {
		return true
	}

	count := 0
	for _, v := range answer.Values() {
		if v != "" {
			count++
		}
	}
	ok = count <= 1

	return ok
}

// MissingDataPolicy decides a criterion when the product lacks the referenced data.
type MissingDataPolicy string

const (
	MissingPass    MissingDataPolicy = "pass"
	MissingExclude MissingDataPolicy = "exclude"
)

// Question is a category-scoped question definition.
type Question struct {
	ID            string            `json:"id" yaml:"id" validate:"required"`
	Category      string            `json:"category" yaml:"category" validate:"required"`
	Text          string            `json:"text,omitempty" yaml:"text,omitempty"`
	FilterLabel   string            `json:"filter_label,omitempty" yaml:"filter_label,omitempty"`
	AnswerDomain  AnswerDomain      `json:"answer_domain,omitempty" yaml:"answer_domain,omitempty" validate:"omitempty,oneof=single multi any"`
	ProductField  string            `json:"product_field,omitempty" yaml:"product_field,omitempty"`
	Essential     bool              `json:"essential,omitempty" yaml:"essential,omitempty"`
	OnMissingData MissingDataPolicy `json:"on_missing_data,omitempty" yaml:"on_missing_data,omitempty" validate:"omitempty,oneof=pass exclude"`
	VariantKey    string            `json:"variant_key,omitempty" yaml:"variant_key,omitempty"`
}

// Label returns the text shown when a product fails this question.
func (q Question) Label() (label string) {
	switch {
	case q.FilterLabel != "":
		label = q.FilterLabel
	case q.Text != "":
		label = q.Text
	default:
		label = q.ID
	}
	return label
}

// MissingPolicy returns the question's missing-data policy, defaulting to pass.
func (q Question) MissingPolicy() (policy MissingDataPolicy) {
	policy = q.OnMissingData
	if policy == "" {
		policy = MissingPass
	}
	return policy
}

// Field returns the product field the question constrains, defaulting to its id.
func (q Question) Field() (field string) {
	field = q.ProductField
	if field == "" {
		field = q.ID
	}
	return field
}

// Answer is the user's choice for one question.
type Answer struct {
	QuestionID string `json:"question_id" yaml:"question_id"`
	Value      any    `json:"value" yaml:"value"`
}

// AnswerSet is an ordered list of answers for one recommendation session.
type AnswerSet []Answer

// Get returns the answer for a question id.
func (s AnswerSet) Get(questionID string) (answer Answer, ok bool) {
	for _, a := range s {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return answer, ok
}

// Values flattens the answer into strings: a single choice yields one element,
// a multi-select one per selection.
func (a Answer) Values() (values []string) {
	values = make([]string, 0)

	switch v := a.Value.(type) {
	case nil:
	case string:
		values = append(values, strings.TrimSpace(v))
	case []string:
		for _, s := range v {
			values = append(values, strings.TrimSpace(s))
		}
	case []any:
		for _, e := range v {
			values = append(values, Answer{Value: e}.Values()...)
		}
	case bool:
		values = append(values, strconv.FormatBool(v))
	case float64:
		values = append(values, strconv.FormatFloat(v, 'f', -1, 64))
	default:
		values = append(values, fmt.Sprint(v))
	}

	return values
}

// Unrestricted reports whether the answer places no constraint on products:
// nil, the "any" sentinel (alone or inside a multi-select) or an empty selection.
func (a Answer) Unrestricted() (ok bool) {
	values := a.Values()
	if len(values) == 0 {
		return true
	}

	nonEmpty := 0
	for _, v := range values {
		if strings.EqualFold(v, AnySentinel) {
			return true
		}
		if v != "" {
			nonEmpty++
		}
	}

	ok = nonEmpty == 0

	return ok
}

// Field returns a product attribute by key. Specification keys are matched
// ignoring case and "_", "-", " " separators; brand, name, category and price
// resolve to the top-level fields.
func (p Product) Field(key string) (value any, ok bool) {
	switch foldKey(key) {
	case "brand":
		if p.Brand != "" {
			return p.Brand, true
		}
	case "name":
		if p.Name != "" {
			return p.Name, true
		}
	case "category":
		return p.Category, p.Category != ""
	case "price":
		if p.Price != nil {
			return p.Price, true
		}
	}

	if v, exact := p.Specifications[key]; exact {
		return v, v != nil
	}

	// Sorted so that near-duplicate keys resolve the same way on every call.
	want := foldKey(key)
	keys := make([]string, 0, len(p.Specifications))
	for k := range p.Specifications {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if foldKey(k) == want {
			v := p.Specifications[k]
			return v, v != nil
		}
	}

	return value, ok
}

// Spec parses the first present field among keys into a canonical value.
func (p Product) Spec(unit specs.Unit, keys ...string) (value specs.Value) {
	for _, k := range keys {
		raw, ok := p.Field(k)
		if !ok {
			continue
		}
		value = specs.Parse(raw, unit)
		if !value.Missing() {
			return value
		}
	}
	return value
}

// Ratings returns the user ratings that carry a number. Nulls and text without
// a number are dropped; range checks are left to the scorer.
func (p Product) Ratings() (ratings []float64) {
	ratings = make([]float64, 0, len(p.UserRatings))
	for _, raw := range p.UserRatings {
		if r, ok := specs.ParseNumber(raw); ok {
			ratings = append(ratings, r)
		}
	}
	return ratings
}

// Prices returns every priced variant of the product.
func (p Product) Prices() (prices []specs.VariantPrice) {
	raw, _ := p.Field("price")
	prices = specs.ParsePrices(raw)
	return prices
}

func foldKey(key string) (folded string) {
	folded = strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(key))
	return folded
}
