package interview

import (
	"strings"
	"testing"

	"github.com/spigell/portfolio-agent/internal/questions"
)

func threeQuestions() []*questions.Question {
	return []*questions.Question{
		{ID: "go-1", Tech: "golang", Text: "What is a goroutine?", Explanation: "Think about scheduling, not threads."},
		{ID: "go-2", Tech: "golang", Text: "When do you use channels?"},
		{ID: "go-3", Tech: "golang", Text: "Explain the race detector."},
	}
}

func TestNextQuestionOrderAndSentinel(t *testing.T) {
	t.Parallel()

	selected := threeQuestions()
	s := NewSession("golang", "backend", 4, selected)

	for i, want := range selected {
		if s.IsFinished() {
			t.Fatalf("finished too early at %d", i)
		}
		q, ok := s.NextQuestion()
		if !ok {
			t.Fatalf("expected question %d, got sentinel", i)
		}
		if q.ID != want.ID {
			t.Fatalf("expected %s at position %d, got %s", want.ID, i, q.ID)
		}
	}

	if !s.IsFinished() {
		t.Fatal("expected session to be finished after the last question")
	}
	for i := 0; i < 3; i++ {
		if q, ok := s.NextQuestion(); ok {
			t.Fatalf("expected sentinel, got %s", q.ID)
		}
	}
}

func TestEmptySelectionIsImmediatelyFinished(t *testing.T) {
	t.Parallel()

	s := NewSession("golang", "backend", 4, nil)
	if !s.IsFinished() {
		t.Fatal("expected empty session to be finished")
	}
	if _, ok := s.NextQuestion(); ok {
		t.Fatal("expected sentinel on the very first call")
	}
}

func TestRecordAnswerOverwrites(t *testing.T) {
	t.Parallel()

	s := NewSession("golang", "backend", 4, threeQuestions())
	s.RecordAnswer("go-1", "first")
	s.RecordAnswer("go-1", "second")
	if s.Answers["go-1"] != "second" {
		t.Fatalf("expected last write to win, got %q", s.Answers["go-1"])
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	t.Parallel()

	a := NewSession("golang", "backend", 4, nil)
	b := NewSession("golang", "backend", 4, nil)
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct non-empty session ids, got %q and %q", a.ID, b.ID)
	}
}

func TestHandleTurnFullFlow(t *testing.T) {
	t.Parallel()

	s := NewSession("golang", "backend", 4, threeQuestions())
	if s.Stage() != StageName {
		t.Fatalf("expected StageName, got %v", s.Stage())
	}

	reply := s.HandleTurn("Alice")
	if !strings.Contains(reply, "Alice") {
		t.Fatalf("expected name echo, got %q", reply)
	}
	if s.Stage() != StageProject {
		t.Fatalf("expected StageProject, got %v", s.Stage())
	}

	reply = s.HandleTurn("A billing service in Go")
	if !strings.Contains(reply, "Question 1 of 3") {
		t.Fatalf("expected first question, got %q", reply)
	}
	if s.Stage() != StageAsking {
		t.Fatalf("expected StageAsking, got %v", s.Stage())
	}

	reply = s.HandleTurn("Lightweight thread managed by the runtime")
	if !strings.Contains(reply, "Question 2 of 3") {
		t.Fatalf("expected second question, got %q", reply)
	}

	reply = s.HandleTurn("For communicating between goroutines")
	if !strings.Contains(reply, "Question 3 of 3") {
		t.Fatalf("expected third question, got %q", reply)
	}

	reply = s.HandleTurn("It instruments memory accesses")
	if s.Stage() != StageFinished {
		t.Fatalf("expected StageFinished, got %v", s.Stage())
	}
	if !strings.Contains(reply, "Lightweight thread managed by the runtime") {
		t.Fatalf("expected summary to include answers, got %q", reply)
	}
	if !strings.Contains(reply, "email") {
		t.Fatalf("expected contact prompt in summary, got %q", reply)
	}

	if got := s.HandleTurn("hello?"); got != finishedMessage {
		t.Fatalf("unexpected post-interview reply: %q", got)
	}
}

func TestHandleTurnExplainDoesNotAdvance(t *testing.T) {
	t.Parallel()

	s := NewSession("golang", "backend", 4, threeQuestions())
	s.HandleTurn("Alice")
	s.HandleTurn("A project")

	pendingBefore := s.Pending()
	reply := s.HandleTurn("EXPLAIN please")
	if reply != pendingBefore.Explanation {
		t.Fatalf("expected stored explanation, got %q", reply)
	}
	if s.Pending() != pendingBefore {
		t.Fatal("explain must not advance the pending question")
	}
	if len(s.Answers) != 0 {
		t.Fatalf("explain must not record an answer, got %v", s.Answers)
	}

	// The next real answer still belongs to the same question.
	s.HandleTurn("An answer")
	if _, ok := s.Answers[pendingBefore.ID]; !ok {
		t.Fatalf("expected answer recorded for %s", pendingBefore.ID)
	}
}

func TestHandleTurnExplainFallback(t *testing.T) {
	t.Parallel()

	s := NewSession("golang", "backend", 4, threeQuestions())
	s.HandleTurn("Alice")
	s.HandleTurn("A project")
	s.HandleTurn("answer one") // moves to go-2, which has no explanation

	if got := s.HandleTurn("explain"); got != noExplanationMessage {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestHandleTurnNoQuestionsAvailable(t *testing.T) {
	t.Parallel()

	s := NewSession("cobol", "backend", 4, nil)
	s.HandleTurn("Alice")
	reply := s.HandleTurn("A project")
	if reply != noQuestionsMessage {
		t.Fatalf("expected terminal no-questions message, got %q", reply)
	}
	if s.Stage() != StageFinished {
		t.Fatalf("expected StageFinished, got %v", s.Stage())
	}
}

func TestHandleTurnEmptyInputsReprompt(t *testing.T) {
	t.Parallel()

	s := NewSession("golang", "backend", 4, threeQuestions())
	s.HandleTurn("   ")
	if s.Stage() != StageName {
		t.Fatal("empty input must not advance past the name stage")
	}
	s.HandleTurn("Alice")
	s.HandleTurn("")
	if s.Stage() != StageProject {
		t.Fatal("empty input must not advance past the project stage")
	}
}

func TestSummaryTruncatesLongAnswers(t *testing.T) {
	t.Parallel()

	s := NewSession("golang", "backend", 4, threeQuestions()[:1])
	s.HandleTurn("Alice")
	s.HandleTurn("A project")

	long := strings.Repeat("x", answerSummaryLimit+50)
	reply := s.HandleTurn(long)

	if strings.Contains(reply, long) {
		t.Fatal("expected the summary to clip the answer")
	}
	if !strings.Contains(reply, strings.Repeat("x", answerSummaryLimit)+"...") {
		t.Fatal("expected the clipped answer with ellipsis")
	}
	// The full text is still stored on the session.
	if s.Answers["go-1"] != long {
		t.Fatal("expected the stored answer to stay untruncated")
	}
}
