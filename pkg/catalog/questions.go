package catalog

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultQuestions returns the built-in question definitions for TVs, Laptops and
// Smartphones. Category-defining questions are essential; preferences are not.
func DefaultQuestions() (questions []Question) {
	questions = []Question{
		{ID: "screen_size", Category: "TVs", Text: "What screen size are you looking for?", FilterLabel: "Screen Size", AnswerDomain: DomainMulti, Essential: true, VariantKey: "screen_size"},
		{ID: "budget", Category: "TVs", Text: "What is your budget?", FilterLabel: "Budget", AnswerDomain: DomainSingle, Essential: true},
		{ID: "panel_type", Category: "TVs", Text: "Which panel technology do you prefer?", FilterLabel: "Panel Type", AnswerDomain: DomainMulti},
		{ID: "resolution", Category: "TVs", Text: "What resolution do you need?", FilterLabel: "Resolution", AnswerDomain: DomainSingle},
		{ID: "refresh_rate", Category: "TVs", Text: "Minimum refresh rate?", FilterLabel: "Refresh Rate", AnswerDomain: DomainSingle},
		{ID: "smart_platform", Category: "TVs", Text: "Preferred smart TV platform?", FilterLabel: "Smart Platform", AnswerDomain: DomainMulti},
		{ID: "hdr", Category: "TVs", Text: "Do you need HDR?", FilterLabel: "HDR", AnswerDomain: DomainSingle, OnMissingData: MissingExclude},
		{ID: "brand-preference", Category: "TVs", Text: "Any preferred brands?", FilterLabel: "Brand", AnswerDomain: DomainMulti},

		{ID: "performance", Category: "Laptops", Text: "What will you mainly use it for?", FilterLabel: "Performance", AnswerDomain: DomainSingle, Essential: true},
		{ID: "budget", Category: "Laptops", Text: "What is your budget?", FilterLabel: "Budget", AnswerDomain: DomainSingle, Essential: true},
		{ID: "ram", Category: "Laptops", Text: "Minimum memory?", FilterLabel: "Memory", AnswerDomain: DomainSingle},
		{ID: "storage", Category: "Laptops", Text: "Minimum storage?", FilterLabel: "Storage", AnswerDomain: DomainSingle},
		{ID: "screen_size", Category: "Laptops", Text: "What screen size?", FilterLabel: "Screen Size", AnswerDomain: DomainMulti},
		{ID: "battery_life", Category: "Laptops", Text: "How much battery life do you need?", FilterLabel: "Battery Life", AnswerDomain: DomainSingle},
		{ID: "processor_brand", Category: "Laptops", Text: "Preferred processor brand?", FilterLabel: "Processor", AnswerDomain: DomainMulti},
		{ID: "os", Category: "Laptops", Text: "Which operating system?", FilterLabel: "Operating System", AnswerDomain: DomainMulti, Essential: true},
		{ID: "portability", Category: "Laptops", Text: "How portable should it be?", FilterLabel: "Portability", AnswerDomain: DomainSingle},
		{ID: "brand-preference", Category: "Laptops", Text: "Any preferred brands?", FilterLabel: "Brand", AnswerDomain: DomainMulti},

		{ID: "budget", Category: "Smartphones", Text: "What is your budget?", FilterLabel: "Budget", AnswerDomain: DomainSingle, Essential: true},
		{ID: "os", Category: "Smartphones", Text: "iOS or Android?", FilterLabel: "Operating System", AnswerDomain: DomainSingle, Essential: true},
		{ID: "camera_quality", Category: "Smartphones", Text: "How important is the camera?", FilterLabel: "Camera", AnswerDomain: DomainSingle},
		{ID: "storage", Category: "Smartphones", Text: "Minimum storage?", FilterLabel: "Storage", AnswerDomain: DomainSingle},
		{ID: "battery_life", Category: "Smartphones", Text: "How much battery life do you need?", FilterLabel: "Battery Life", AnswerDomain: DomainSingle},
		{ID: "screen_size", Category: "Smartphones", Text: "What screen size?", FilterLabel: "Screen Size", AnswerDomain: DomainSingle},
		{ID: "5g", Category: "Smartphones", Text: "Do you need 5G?", FilterLabel: "5G", AnswerDomain: DomainSingle, OnMissingData: MissingExclude},
		{ID: "brand-preference", Category: "Smartphones", Text: "Any preferred brands?", FilterLabel: "Brand", AnswerDomain: DomainMulti},
	}
	return questions
}

// SaveQuestions writes question definitions to a YAML file.
func SaveQuestions(path string, questions []Question) (err error) {
	set := QuestionSet{Questions: questions}
	err = set.Validate()
	if err != nil {
		err = errors.Wrap(err, "questions validation failed")
		return err
	}

	var data []byte
	data, err = yaml.Marshal(set)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal questions")
		return err
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create directory: %s", dir)
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write questions file: %s", path)
		return err
	}

	return err
}
