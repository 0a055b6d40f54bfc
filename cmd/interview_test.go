package cmd

import "testing"

func TestQuestionsDir(t *testing.T) {
	if got := questionsDir(nil); got != "questions" {
		t.Fatalf("expected the default dir, got %q", got)
	}

	config := &Config{Questions: &QuestionsConfig{Dir: "bank"}}
	if got := questionsDir(config); got != "bank" {
		t.Fatalf("expected the configured dir, got %q", got)
	}

	// An empty value falls back to the default.
	config.Questions.Dir = ""
	if got := questionsDir(config); got != "questions" {
		t.Fatalf("expected the default dir, got %q", got)
	}
}

func TestQuestionsPerSession(t *testing.T) {
	if got := questionsPerSession(nil); got != 5 {
		t.Fatalf("expected the default count, got %d", got)
	}

	config := &Config{Interview: &InterviewConfig{QuestionsPerSession: 3}}
	if got := questionsPerSession(config); got != 3 {
		t.Fatalf("expected the configured count, got %d", got)
	}

	config.Interview.QuestionsPerSession = 0
	if got := questionsPerSession(config); got != 5 {
		t.Fatalf("expected the default count, got %d", got)
	}
}
