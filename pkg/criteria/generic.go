package criteria

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nikogura/reviewrank/pkg/catalog"
	"github.com/nikogura/reviewrank/pkg/specs"
)

const numericTolerance = 1e-9

// GenericRules compares the question's product field with the answer. It backs
// categories without a rule set and questions a rule set does not handle.
type GenericRules struct{}

// Category implements RuleSet. The generic rules are not bound to a category.
func (GenericRules) Category() (name string) {
	return name
}

// Evaluate implements RuleSet. By the field's runtime type it tries array
// membership, numeric equality, boolean equality, then substring containment.
func (GenericRules) Evaluate(q catalog.Question, answer catalog.Answer, p catalog.Product) (verdict Verdict) {
	raw, ok := p.Field(q.Field())
	if !ok {
		return NoData
	}

	values := answer.Values()

	var match bool
	switch field := raw.(type) {
	case []any:
		match = memberOf(field, values)
	case []string:
		elements := make([]any, 0, len(field))
		for _, s := range field {
			elements = append(elements, s)
		}
		match = memberOf(elements, values)
	case float64, float32, int, int64:
		match = numericEqual(field, values)
	case bool:
		match = boolEqual(field, values)
	case string:
		if strings.TrimSpace(field) == "" {
			return NoData
		}
		match = containsFold(field, values...)
	default:
		match = containsFold(fmt.Sprint(field), values...)
	}

	if match {
		return Pass
	}

	return Fail
}

// memberOf reports whether any array element equals any answer value.
func memberOf(elements []any, values []string) (ok bool) {
	for _, e := range elements {
		text := strings.Trim(fmt.Sprint(e), `"'`)
		for _, v := range values {
			if fold(text) == fold(v) {
				return true
			}
			if n, isNum := e.(float64); isNum && numericEqual(n, []string{v}) {
				return true
			}
		}
	}
	return ok
}

func numericEqual(field any, values []string) (ok bool) {
	n, isNum := specs.ParseNumber(field)
	if !isNum {
		return ok
	}
	for _, v := range values {
		if a, parsed := specs.ParseNumber(v); parsed && math.Abs(a-n) < numericTolerance {
			return true
		}
	}
	return ok
}

func boolEqual(field bool, values []string) (ok bool) {
	for _, v := range values {
		switch ruleKey(v) {
		case "yes", "y":
			ok = field
		case "no", "n":
			ok = !field
		default:
			b, err := strconv.ParseBool(v)
			if err != nil {
				continue
			}
			ok = b == field
		}
		if ok {
			return ok
		}
	}
	return ok
}
