package conversation

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/portfolio-agent/internal/agenttools"
	"github.com/spigell/portfolio-agent/internal/interview"
	"github.com/spigell/portfolio-agent/internal/persona"
	"github.com/spigell/portfolio-agent/internal/questions"
)

type stubGenerator struct {
	replies []string
	err     error
}

func (s *stubGenerator) Converse(_ context.Context, _ string, _ []*genai.Content, _ []*genai.Tool, _ ...genai.Part) (*genai.GenerateContentResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.replies) == 0 {
		return nil, errors.New("unexpected call")
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]

	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: reply}},
			},
		}},
	}, nil
}

func testAgent(gen *stubGenerator) *persona.Agent {
	profile := &persona.Profile{Name: "Jordan Doe", Summary: "summary"}
	registry := agenttools.NewRegistry(zap.NewNop(),
		agenttools.NewRecordUserDetails(nil, zap.NewNop()),
		agenttools.NewRecordUnknownQuestion(nil, zap.NewNop()),
	)
	return persona.NewAgent(profile, gen, registry, zap.NewNop(), 2)
}

func testCatalog() *questions.Catalog {
	return &questions.Catalog{Items: []*questions.Question{
		{ID: "go-1", Tech: "golang", Roles: []string{"backend"}, MinYears: 0, MaxYears: 100, Text: "What is a goroutine?"},
		{ID: "go-2", Tech: "golang", Roles: []string{"backend"}, MinYears: 0, MaxYears: 100, Text: "What does defer do?"},
	}}
}

func TestHandleTurnPersonaMode(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{replies: []string{"Hi there!", "Still here."}}
	o := New(ModePersona, testAgent(gen), zap.NewNop())

	if got := o.HandleTurn(context.Background(), "hello"); got != "Hi there!" {
		t.Fatalf("unexpected reply: %q", got)
	}

	// History must survive between turns.
	if got := o.HandleTurn(context.Background(), "are you there?"); got != "Still here." {
		t.Fatalf("unexpected reply: %q", got)
	}
	if len(o.history) != 4 {
		t.Fatalf("expected 4 history entries after two turns, got %d", len(o.history))
	}
}

func TestHandleTurnPersonaFailure(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{err: errors.New("quota exhausted")}
	o := New(ModePersona, testAgent(gen), zap.NewNop())

	if got := o.HandleTurn(context.Background(), "hello"); got != apologyMessage {
		t.Fatalf("expected apology, got %q", got)
	}
	if len(o.history) != 0 {
		t.Fatalf("failed turn must not grow history, got %d entries", len(o.history))
	}
}

func TestStartInterviewSwitchesMode(t *testing.T) {
	t.Parallel()

	o := New(ModePersona, testAgent(&stubGenerator{}), zap.NewNop())
	session := o.StartInterview(testCatalog(), "golang", "backend", 3, 2, rand.New(rand.NewSource(1)))

	if session == nil || o.Session() != session {
		t.Fatal("expected the started session to be retained")
	}
	if session.Stage() != interview.StageName {
		t.Fatalf("unexpected initial stage: %v", session.Stage())
	}

	// Turns now route to the interview, not the persona agent.
	reply := o.HandleTurn(context.Background(), "Jordan")
	if !strings.Contains(reply, "project") {
		t.Fatalf("expected the project prompt, got %q", reply)
	}
}

func TestHandleTurnInterviewWithoutSession(t *testing.T) {
	t.Parallel()

	o := New(ModeInterview, testAgent(&stubGenerator{}), zap.NewNop())
	if got := o.HandleTurn(context.Background(), "hello"); got != noInterviewMessage {
		t.Fatalf("unexpected reply: %q", got)
	}
}
