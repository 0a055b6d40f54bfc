// Package conversation glues the persona agent and the interview state
// machine behind a single turn-based surface.
package conversation

import (
	"context"
	"math/rand"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/portfolio-agent/internal/interview"
	"github.com/spigell/portfolio-agent/internal/persona"
	"github.com/spigell/portfolio-agent/internal/questions"
)

type Mode string

const (
	ModePersona   Mode = "persona"
	ModeInterview Mode = "interview"
)

const (
	apologyMessage     = "Sorry, something went wrong on my side while answering. Please try again."
	noInterviewMessage = "No interview is running. Start one to get questions."
)

// Orchestrator routes inbound turns either to the persona agent or to the
// interview session and keeps the per-conversation state (chat history or
// session) that spans turns.
type Orchestrator struct {
	mode    Mode
	agent   *persona.Agent
	history []*genai.Content
	session *interview.Session
	logger  *zap.Logger
}

func New(mode Mode, agent *persona.Agent, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		mode:   mode,
		agent:  agent,
		logger: logger,
	}
}

// StartInterview selects questions for the given filters, replaces any
// previous session and switches the orchestrator to interview mode.
func (o *Orchestrator) StartInterview(catalog *questions.Catalog, tech, role string, years, n int, rng *rand.Rand) *interview.Session {
	selected := questions.Select(catalog, tech, role, years, n, rng)
	o.session = interview.NewSession(tech, role, years, selected)
	o.mode = ModeInterview

	o.logger.Info("interview session started",
		zap.String("session_id", o.session.ID),
		zap.String("tech", tech),
		zap.String("role", role),
		zap.Int("years", years),
		zap.Int("questions", len(selected)),
	)

	return o.session
}

// Session returns the active interview session, if any.
func (o *Orchestrator) Session() *interview.Session {
	return o.session
}

// HandleTurn processes one user turn in the current mode and returns the
// assistant reply. Collaborator failures in persona mode degrade to an
// apologetic message so the conversation survives the turn.
func (o *Orchestrator) HandleTurn(ctx context.Context, input string) string {
	switch o.mode {
	case ModeInterview:
		if o.session == nil {
			return noInterviewMessage
		}
		return o.session.HandleTurn(input)

	default:
		reply, history, err := o.agent.Chat(ctx, o.history, input)
		if err != nil {
			o.logger.Warn("persona turn failed", zap.Error(err))
			return apologyMessage
		}
		o.history = history
		return reply
	}
}
