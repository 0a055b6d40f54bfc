package interview

import (
	"fmt"
	"strings"
)

const (
	explainToken = "explain"

	// Answers are clipped to this many runes in the closing summary.
	answerSummaryLimit = 200

	noQuestionsMessage = "Unfortunately I have no questions for this combination of technology, role and experience. " +
		"Please start a new interview with a different selection."

	noExplanationMessage = "There is no explanation on file for this question, sorry. Just give it your best shot."

	finishedMessage = "This interview is already over. Start a new one if you want another round."
)

// Greeting opens the conversation. The caller prints it once before feeding
// user turns into HandleTurn.
func (s *Session) Greeting() string {
	return fmt.Sprintf("Welcome to the mock %s interview! Before we begin, what is your name?", s.Tech)
}

// HandleTurn consumes one user turn and returns the assistant reply, moving
// the session forward according to its stage.
func (s *Session) HandleTurn(input string) string {
	input = strings.TrimSpace(input)

	switch s.stage {
	case StageName:
		if input == "" {
			return "Let's start with your name."
		}
		s.Name = input
		s.stage = StageProject
		return fmt.Sprintf("Nice to meet you, %s! Tell me briefly about a recent project you have worked on.", s.Name)

	case StageProject:
		if input == "" {
			return "Any project is fine, even a small side one."
		}
		s.Project = input

		q, ok := s.NextQuestion()
		if !ok {
			s.stage = StageFinished
			return noQuestionsMessage
		}
		s.pending = q
		s.stage = StageAsking
		return fmt.Sprintf("Great, thanks! Let's get started.\n\n%s", s.presentPending())

	case StageAsking:
		if isExplainRequest(input) {
			// An explanation request does not count as an answer and the
			// pending question stays put.
			if s.pending != nil && s.pending.Explanation != "" {
				return s.pending.Explanation
			}
			return noExplanationMessage
		}
		if input == "" {
			return "Take your time, but I do need an answer to move on. Say \"explain\" if the question is unclear."
		}

		s.RecordAnswer(s.pending.ID, input)

		q, ok := s.NextQuestion()
		if ok {
			s.pending = q
			return s.presentPending()
		}

		s.pending = nil
		s.stage = StageFinished
		return s.summary()

	default:
		return finishedMessage
	}
}

func (s *Session) presentPending() string {
	return fmt.Sprintf("Question %d of %d: %s", s.current, len(s.Selected), s.pending.Text)
}

// summary closes the interview: every recorded answer, clipped for display,
// plus a contact capture prompt.
func (s *Session) summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "That was the last question. Well done, %s!\n\nHere is what you answered:\n", s.Name)
	for i, q := range s.Selected {
		fmt.Fprintf(&b, "%d. %s\n   Your answer: %s\n", i+1, q.Text, clip(s.Answers[q.ID], answerSummaryLimit))
	}
	b.WriteString("\nIf you would like detailed feedback, leave your email and I will get back to you.")

	return b.String()
}

// isExplainRequest matches turns whose first word is the explain directive,
// case-insensitively.
func isExplainRequest(input string) bool {
	fields := strings.Fields(input)
	return len(fields) > 0 && strings.EqualFold(fields[0], explainToken)
}

func clip(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
