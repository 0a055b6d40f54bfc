// Package persona implements the portfolio chatbot: a profile-grounded agent
// that answers as the person and delegates contact capture and unanswerable
// questions to registered tools.
package persona

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/portfolio-agent/internal/agenttools"
	"github.com/spigell/portfolio-agent/internal/logger"
)

const (
	defaultMaxToolRounds = 4
	defaultMaxLogLength  = 200
)

// conversations is the narrow surface the agent needs from the AI provider.
type conversations interface {
	Converse(ctx context.Context, system string, history []*genai.Content, tools []*genai.Tool, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type Agent struct {
	profile   *Profile
	generator conversations
	tools     *agenttools.Registry
	logger    *zap.Logger
	maxRounds int
	maxLogLen int
}

func NewAgent(profile *Profile, generator conversations, tools *agenttools.Registry, log *zap.Logger, maxToolRounds int) *Agent {
	if maxToolRounds <= 0 {
		maxToolRounds = defaultMaxToolRounds
	}

	return &Agent{
		profile:   profile,
		generator: generator,
		tools:     tools,
		logger:    log,
		maxRounds: maxToolRounds,
		maxLogLen: defaultMaxLogLength,
	}
}

// Chat runs one user turn to completion: the message is sent together with
// the history, requested tool invocations are executed and fed back, and the
// final assistant text is returned along with the grown history. The tool
// loop is capped so a misbehaving model cannot ping-pong forever.
func (a *Agent) Chat(ctx context.Context, history []*genai.Content, message string) (string, []*genai.Content, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", history, errors.New("message must not be empty")
	}

	a.logger.Debug("persona turn",
		zap.Int("history_turns", len(history)),
		zap.String("message_preview", logger.TruncateForLog(message, a.maxLogLen)),
	)

	system := a.profile.SystemPrompt()
	decls := a.tools.Declarations()
	parts := []genai.Part{{Text: message}}

	for round := 0; round < a.maxRounds; round++ {
		resp, err := a.generator.Converse(ctx, system, history, decls, parts...)
		if err != nil {
			return "", history, fmt.Errorf("chat completion: %w", err)
		}

		history = append(history, contentFromParts(parts))

		model := responseContent(resp)
		if model != nil {
			history = append(history, model)
		}

		calls := functionCalls(resp)
		if len(calls) == 0 {
			text := responseText(resp)
			if text == "" {
				return "", history, errors.New("model returned an empty reply")
			}
			return text, history, nil
		}

		a.logger.Debug("model requested tools",
			zap.Int("count", len(calls)),
			zap.Int("round", round+1),
		)

		parts = parts[:0]
		for _, call := range calls {
			result := a.tools.Dispatch(ctx, call)
			parts = append(parts, genai.Part{FunctionResponse: result})
		}
	}

	return "", history, fmt.Errorf("model did not settle after %d tool rounds", a.maxRounds)
}

func contentFromParts(parts []genai.Part) *genai.Content {
	content := &genai.Content{Role: genai.RoleUser}
	for i := range parts {
		part := parts[i]
		content.Parts = append(content.Parts, &part)
	}
	return content
}

func responseContent(resp *genai.GenerateContentResponse) *genai.Content {
	for _, candidate := range resp.Candidates {
		if candidate != nil && candidate.Content != nil {
			return candidate.Content
		}
	}
	return nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}
	return strings.TrimSpace(builder.String())
}

func functionCalls(resp *genai.GenerateContentResponse) []*genai.FunctionCall {
	var calls []*genai.FunctionCall
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.FunctionCall != nil {
				calls = append(calls, part.FunctionCall)
			}
		}
	}
	return calls
}
