// Package criteria decides whether one product satisfies one answered question.
//
// Each category has its own RuleSet. Rules return a Verdict; NoData is resolved
// by the question's missing-data policy and Unhandled falls through to the
// generic field comparison.
package criteria

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/nikogura/reviewrank/pkg/catalog"
)

// ErrUnknownCategory is returned for a category with no question definitions.
var ErrUnknownCategory = errors.New("unknown category")

// ErrUnknownQuestion is returned for a question id not defined for the category.
var ErrUnknownQuestion = errors.New("unknown question")

// ErrInvalidAnswer is returned for several values given to a single-choice question.
var ErrInvalidAnswer = errors.New("invalid answer")

// Verdict is the outcome of one rule.
type Verdict int

const (
	// Unhandled means the rule set has no opinion on the question.
	Unhandled Verdict = iota
	Pass
	Fail
	// NoData means the product lacks the referenced specification.
	NoData
)

func (v Verdict) String() (s string) {
	switch v {
	case Pass:
		s = "pass"
	case Fail:
		s = "fail"
	case NoData:
		s = "no_data"
	default:
		s = "unhandled"
	}
	return s
}

// RuleSet evaluates the questions of one category.
type RuleSet interface {
	Category() string
	Evaluate(q catalog.Question, answer catalog.Answer, p catalog.Product) Verdict
}

// Failure explains why a product did not satisfy a question.
type Failure struct {
	QuestionID string `json:"question_id"`
	Label      string `json:"label"`
	Essential  bool   `json:"essential"`
}

// Result is the outcome of one criterion. Failure is nil when Pass is true.
type Result struct {
	Pass    bool     `json:"pass"`
	Failure *Failure `json:"failure,omitempty"`
}

// DefaultRules returns the built-in category rule sets.
func DefaultRules() (rules []RuleSet) {
	rules = []RuleSet{TVRules{}, LaptopRules{}, SmartphoneRules{}}
	return rules
}

// ruleKey canonicalizes a question id so "brand-preference" and "Brand_Preference" match.
func ruleKey(id string) (key string) {
	key = strings.ToLower(strings.NewReplacer("-", "_", " ", "_").Replace(strings.TrimSpace(id)))
	return key
}

func categoryKey(category string) (key string) {
	key = strings.ToLower(strings.TrimSpace(category))
	return key
}
