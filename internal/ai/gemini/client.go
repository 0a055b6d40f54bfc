// Package gemini wraps the Google GenAI client for conversational use with
// function calling.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel      = "gemini-2.5-flash"
	defaultMaxRetries = 2
	retryBackoff      = 2 * time.Second

	// Quota errors announcing a longer delay than this are not worth waiting
	// out in an interactive conversation.
	maxQuotaDelay = 30 * time.Second
)

// Overridable in tests.
var sleep = time.Sleep

var quotaDelayRe = regexp.MustCompile(`retry after (\d+) seconds`)

type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type chatCreator interface {
	Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error)
}

type realChats struct {
	client *genai.Client
}

func (r *realChats) Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error) {
	chat, err := r.client.Chats.Create(ctx, model, config, history)
	if err != nil {
		return nil, err
	}
	return chat, nil
}

// Generator holds one configured Gemini model endpoint.
type Generator struct {
	chats      chatCreator
	model      string
	maxRetries int
	logger     *zap.Logger
}

// NewGenerator creates a Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, maxRetries int, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &Generator{
		chats:      &realChats{client: client},
		model:      model,
		maxRetries: maxRetries,
		logger:     logger,
	}, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

// Converse sends one conversation turn: the accumulated history plus the new
// parts (a user message or function responses), under the given system
// instruction and tool declarations. Temporary API errors are retried up to
// the configured attempt count.
func (g *Generator) Converse(ctx context.Context, system string, history []*genai.Content, tools []*genai.Tool, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	if g == nil || g.chats == nil {
		return nil, errors.New("gemini generator is not initialized")
	}
	if len(parts) == 0 {
		return nil, errors.New("at least one message part is required")
	}

	config := &genai.GenerateContentConfig{}
	if strings.TrimSpace(system) != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}
	if len(tools) > 0 {
		config.Tools = tools
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		chat, err := g.chats.Create(ctx, g.model, config, history)
		if err != nil {
			return nil, fmt.Errorf("create chat session: %w", err)
		}

		resp, err := chat.SendMessage(ctx, parts...)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err) {
			return nil, err
		}
		if attempt == g.maxRetries {
			break
		}

		g.logger.Warn("temporary gemini error, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", g.maxRetries),
			zap.Error(err),
		)
		sleep(retryBackoff)
	}

	return nil, fmt.Errorf("gemini request failed after %d attempts: %w", g.maxRetries, lastErr)
}

// retryable reports whether the error is worth another attempt: server-side
// failures are, quota errors only when the announced delay is short enough.
func retryable(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	if apiErr.Code >= http.StatusInternalServerError {
		return true
	}

	if apiErr.Code == http.StatusTooManyRequests {
		m := quotaDelayRe.FindStringSubmatch(apiErr.Message)
		if m == nil {
			return true
		}
		secs, convErr := strconv.Atoi(m[1])
		if convErr != nil {
			return true
		}
		return time.Duration(secs)*time.Second <= maxQuotaDelay
	}

	return false
}
