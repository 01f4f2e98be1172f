package criteria

import (
	"github.com/pkg/errors"

	"github.com/nikogura/reviewrank/pkg/catalog"
)

// Evaluator dispatches criteria to the rule set of the product's category.
// It is read-only after construction and safe for concurrent use.
type Evaluator struct {
	questions map[string]map[string]catalog.Question
	rules     map[string]RuleSet
	generic   GenericRules
}

// NewEvaluator builds an evaluator for the given question definitions. Categories
// without a rule set use the generic comparison for every question.
func NewEvaluator(questions []catalog.Question, rules ...RuleSet) (evaluator *Evaluator) {
	evaluator = &Evaluator{
		questions: make(map[string]map[string]catalog.Question),
		rules:     make(map[string]RuleSet, len(rules)),
	}

	for _, q := range questions {
		key := categoryKey(q.Category)
		if evaluator.questions[key] == nil {
			evaluator.questions[key] = make(map[string]catalog.Question)
		}
		evaluator.questions[key][q.ID] = q
	}

	for _, r := range rules {
		evaluator.rules[categoryKey(r.Category())] = r
	}

	return evaluator
}

// CheckCategory returns ErrUnknownCategory when no questions are defined for category.
func (e *Evaluator) CheckCategory(category string) (err error) {
	if _, ok := e.questions[categoryKey(category)]; !ok {
		err = errors.Wrapf(ErrUnknownCategory, "%q", category)
	}
	return err
}

// Question returns the definition of a question within a category.
func (e *Evaluator) Question(category, questionID string) (q catalog.Question, err error) {
	err = e.CheckCategory(category)
	if err != nil {
		return q, err
	}

	q, ok := e.questions[categoryKey(category)][questionID]
	if !ok {
		err = errors.Wrapf(ErrUnknownQuestion, "%q in category %q", questionID, category)
		return q, err
	}

	return q, err
}

// Evaluate decides whether product satisfies the answer to one question.
// Malformed product data never produces an error; only an unknown category or
// question, or several values for a single-choice question, does.
func (e *Evaluator) Evaluate(product catalog.Product, category, questionID string, value any) (result Result, err error) {
	q, err := e.Question(category, questionID)
	if err != nil {
		return result, err
	}

	answer := catalog.Answer{QuestionID: questionID, Value: value}
	if answer.Unrestricted() {
		result.Pass = true
		return result, err
	}

	if !q.Accepts(answer) {
		err = errors.Wrapf(ErrInvalidAnswer, "question %q takes a single value, got %v", questionID, answer.Values())
		return result, err
	}

	verdict := e.verdict(category, q, answer, product)
	if verdict == NoData {
		verdict = Pass
		if q.MissingPolicy() == catalog.MissingExclude {
			verdict = Fail
		}
	}

	if verdict == Pass {
		result.Pass = true
		return result, err
	}

	result.Failure = &Failure{
		QuestionID: q.ID,
		Label:      q.Label(),
		Essential:  q.Essential,
	}

	return result, err
}

func (e *Evaluator) verdict(category string, q catalog.Question, answer catalog.Answer, p catalog.Product) (verdict Verdict) {
	verdict = sharedRules(q, answer, p)

	if verdict == Unhandled {
		if rules, ok := e.rules[categoryKey(category)]; ok {
			verdict = rules.Evaluate(q, answer, p)
		}
	}

	if verdict == Unhandled {
		verdict = e.generic.Evaluate(q, answer, p)
	}

	return verdict
}
