package catalog

import (
	"path/filepath"
	"testing"
)

func TestDefaultQuestionsAreValid(t *testing.T) {
	set := QuestionSet{Questions: DefaultQuestions()}
	err := set.Validate()
	if err != nil {
		t.Fatalf("Default questions failed validation: %v", err)
	}

	categories := make(map[string]int)
	for _, q := range set.Questions {
		categories[q.Category]++
	}

	for _, c := range []string{"TVs", "Laptops", "Smartphones"} {
		if categories[c] == 0 {
			t.Errorf("Expected questions for category %s", c)
		}
	}
}

func TestSaveQuestionsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "questions.yaml")

	err := SaveQuestions(path, DefaultQuestions())
	if err != nil {
		t.Fatalf("Failed to save questions: %v", err)
	}

	loaded, err := LoadQuestions(path)
	if err != nil {
		t.Fatalf("Failed to load saved questions: %v", err)
	}

	want := DefaultQuestions()
	if len(loaded) != len(want) {
		t.Fatalf("Expected %d questions, got %d", len(want), len(loaded))
	}

	for i := range want {
		if loaded[i] != want[i] {
			t.Errorf("Question %d: expected %+v, got %+v", i, want[i], loaded[i])
		}
	}
}

func TestSaveQuestionsRejectsInvalid(t *testing.T) {
	err := SaveQuestions(filepath.Join(t.TempDir(), "q.yaml"), []Question{{ID: "budget"}})
	if err == nil {
		t.Error("Expected error saving question without category, got nil")
	}
}
