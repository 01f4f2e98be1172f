package criteria

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/nikogura/reviewrank/pkg/catalog"
	"github.com/nikogura/reviewrank/pkg/specs"
)

// sharedRules handles the questions that mean the same thing in every category.
func sharedRules(q catalog.Question, answer catalog.Answer, p catalog.Product) (verdict Verdict) {
	switch ruleKey(q.ID) {
	case "brand_preference", "brand", "preferred_brand":
		verdict = brandVerdict(answer, p)
	case "budget", "price", "price_range":
		verdict = budgetVerdict(answer, p)
	}
	return verdict
}

func brandVerdict(answer catalog.Answer, p catalog.Product) (verdict Verdict) {
	if strings.TrimSpace(p.Brand) == "" {
		return NoData
	}

	brand := fold(p.Brand)
	for _, v := range answer.Values() {
		if v != "" && fold(v) == brand {
			return Pass
		}
	}

	return Fail
}

// budgetVerdict passes when any priced variant lies inside any requested band.
func budgetVerdict(answer catalog.Answer, p catalog.Product) (verdict Verdict) {
	bands := make([]specs.Band, 0)
	for _, v := range answer.Values() {
		if band, ok := specs.ParseBand(v); ok {
			bands = append(bands, band)
		}
	}
	if len(bands) == 0 {
		return Unhandled
	}

	prices := p.Prices()
	if len(prices) == 0 {
		return NoData
	}

	for _, vp := range prices {
		for _, b := range bands {
			if b.Contains(vp.Price) {
				return Pass
			}
		}
	}

	return Fail
}

// fold applies Unicode case folding for case-insensitive comparison.
func fold(s string) (folded string) {
	folded = cases.Fold().String(strings.TrimSpace(s))
	return folded
}

// containsFold reports whether text contains any keyword, ignoring case.
func containsFold(text string, keywords ...string) (ok bool) {
	haystack := fold(text)
	for _, k := range keywords {
		if k = fold(k); k != "" && strings.Contains(haystack, k) {
			return true
		}
	}
	return ok
}

// keywordVerdict passes when text contains any keyword.
func keywordVerdict(text string, keywords ...string) (verdict Verdict) {
	if strings.TrimSpace(text) == "" {
		return NoData
	}
	if containsFold(text, keywords...) {
		return Pass
	}
	return Fail
}

// atLeast passes when the largest configuration of value reaches min.
func atLeast(value specs.Value, min float64) (verdict Verdict) {
	max, ok := value.Max()
	if !ok {
		return NoData
	}
	if max >= min {
		return Pass
	}
	return Fail
}

// atMost passes when the smallest configuration of value stays within max.
func atMost(value specs.Value, max float64) (verdict Verdict) {
	min, ok := value.Min()
	if !ok {
		return NoData
	}
	if min <= max {
		return Pass
	}
	return Fail
}

// inAnyBand passes when any configuration of value falls inside any band.
func inAnyBand(value specs.Value, bands []specs.Band) (verdict Verdict) {
	if !value.Numeric() {
		return NoData
	}
	for _, b := range bands {
		if value.Intersects(b) {
			return Pass
		}
	}
	return Fail
}

// threshold returns the least restrictive requirement among the answer values.
func threshold(answer catalog.Answer, parse func(any) (float64, bool)) (min float64, ok bool) {
	for _, v := range answer.Values() {
		n, parsed := parse(v)
		if !parsed {
			continue
		}
		if !ok || n < min {
			min = n
			ok = true
		}
	}
	return min, ok
}

// namedBands maps an answer label ("65", "compact", "small") to a size band.
type namedBands map[string]specs.Band

// lookup resolves an answer by label, then by its leading number ("65-inch" → "65").
func (nb namedBands) lookup(answer string) (band specs.Band, ok bool) {
	key := ruleKey(answer)
	if band, ok = nb[key]; ok {
		return band, ok
	}

	if n, numeric := specs.ParseNumeric(answer); numeric {
		band, ok = nb[strconv.FormatFloat(n, 'f', -1, 64)]
	}

	return band, ok
}

// bands resolves every answer value; ok is false if any value is not a known label.
func (nb namedBands) bands(answer catalog.Answer) (bands []specs.Band, ok bool) {
	for _, v := range answer.Values() {
		b, found := nb.lookup(v)
		if !found {
			return nil, false
		}
		bands = append(bands, b)
	}
	ok = len(bands) > 0
	return bands, ok
}

// levelOf returns the first answer value that names a known level.
func levelOf(answer catalog.Answer, levels ...string) (level string, ok bool) {
	for _, v := range answer.Values() {
		key := ruleKey(v)
		for _, l := range levels {
			if key == l {
				return l, true
			}
		}
	}
	return level, ok
}

// affirmative reports whether an existence answer asks for the attribute.
func affirmative(answer catalog.Answer) (yes, ok bool) {
	for _, v := range answer.Values() {
		switch ruleKey(v) {
		case "yes", "true", "required", "must_have", "1":
			return true, true
		case "no", "false", "not_required", "0", "doesnt_matter", "dont_care":
			return false, true
		}
	}
	return yes, ok
}

// existence decides a question about whether the product has an attribute at all.
// A product that does not list the attribute does not have it.
func existence(answer catalog.Answer, present bool) (verdict Verdict) {
	yes, ok := affirmative(answer)
	switch {
	case !ok:
		verdict = Unhandled
	case !yes, present:
		verdict = Pass
	default:
		verdict = Fail
	}
	return verdict
}

// specOf reads the question's product field, then the fallback keys.
func specOf(p catalog.Product, q catalog.Question, unit specs.Unit, keys ...string) (value specs.Value) {
	value = p.Spec(unit, append([]string{q.Field()}, keys...)...)
	return value
}
