package interview

import (
	"github.com/google/uuid"
	"github.com/spigell/portfolio-agent/internal/questions"
)

// Stage is the progress tag of a session. A session walks the stages strictly
// forward; the "explain" directive is handled inside StageAsking and never
// moves the tag.
type Stage int

const (
	StageName Stage = iota
	StageProject
	StageAsking
	StageFinished
)

func (s Stage) String() string {
	switch s {
	case StageName:
		return "collecting_name"
	case StageProject:
		return "collecting_project"
	case StageAsking:
		return "asking"
	case StageFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Session is the per-conversation interview state. It lives in process memory
// only and is dropped together with the conversation.
type Session struct {
	ID       string
	Tech     string
	Role     string
	Years    int
	Selected []*questions.Question
	Answers  map[string]string

	// Captured during the opening turns.
	Name    string
	Project string

	stage   Stage
	current int
	pending *questions.Question
}

// NewSession creates a session over an already selected, ordered question
// list. The filters are recorded for reporting but never re-applied.
func NewSession(tech, role string, years int, selected []*questions.Question) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Tech:     tech,
		Role:     role,
		Years:    years,
		Selected: selected,
		Answers:  make(map[string]string),
	}
}

// Stage returns the current progress tag.
func (s *Session) Stage() Stage {
	return s.stage
}

// Pending returns the question waiting for an answer, or nil.
func (s *Session) Pending() *questions.Question {
	return s.pending
}

// NextQuestion returns the question at the cursor and advances it. It commits
// the caller to presenting that question: this is not a peek. The second
// return value is false once the list is exhausted.
func (s *Session) NextQuestion() (*questions.Question, bool) {
	if s.current >= len(s.Selected) {
		return nil, false
	}

	q := s.Selected[s.current]
	s.current++
	return q, true
}

// RecordAnswer stores the answer for a question id. Answering the same id
// twice overwrites the previous text.
func (s *Session) RecordAnswer(id, answer string) {
	s.Answers[id] = answer
}

// IsFinished reports whether every selected question has been dispatched.
func (s *Session) IsFinished() bool {
	return s.current >= len(s.Selected)
}
