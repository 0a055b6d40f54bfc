package agenttools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	RecordUserDetailsName     = "record_user_details"
	RecordUnknownQuestionName = "record_unknown_question"
)

// recordedOK is the fixed acknowledgment payload both tools return.
func recordedOK() map[string]any {
	return map[string]any{"recorded": "ok"}
}

type recordUserDetails struct {
	notifier Notifier
	logger   *zap.Logger
}

// NewRecordUserDetails captures a visitor who wants to stay in touch.
func NewRecordUserDetails(notifier Notifier, logger *zap.Logger) Tool {
	return &recordUserDetails{notifier: notifier, logger: logger}
}

func (t *recordUserDetails) Name() string { return RecordUserDetailsName }

func (t *recordUserDetails) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.Name(),
		Description: "Use this tool to record that a user is interested in being in touch and provided an email address",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"email": {
					Type:        genai.TypeString,
					Description: "The email address of this user",
				},
				"name": {
					Type:        genai.TypeString,
					Description: "The user's name, if they provided it",
				},
				"notes": {
					Type:        genai.TypeString,
					Description: "Any additional information about the conversation that's worth recording to give context",
				},
			},
			Required: []string{"email"},
		},
	}
}

func (t *recordUserDetails) Call(ctx context.Context, args map[string]any) (map[string]any, error) {
	email := stringArg(args, "email")
	if email == "" {
		return nil, errors.New("email is required")
	}

	name := stringArg(args, "name")
	if name == "" {
		name = "Name not provided"
	}
	notes := stringArg(args, "notes")
	if notes == "" {
		notes = "not provided"
	}

	t.push(ctx, fmt.Sprintf("Recording %s with email %s and notes %s", name, email, notes))
	return recordedOK(), nil
}

func (t *recordUserDetails) push(ctx context.Context, message string) {
	pushMessage(ctx, t.notifier, t.logger, message)
}

type recordUnknownQuestion struct {
	notifier Notifier
	logger   *zap.Logger
}

// NewRecordUnknownQuestion captures questions the persona could not answer.
func NewRecordUnknownQuestion(notifier Notifier, logger *zap.Logger) Tool {
	return &recordUnknownQuestion{notifier: notifier, logger: logger}
}

func (t *recordUnknownQuestion) Name() string { return RecordUnknownQuestionName }

func (t *recordUnknownQuestion) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.Name(),
		Description: "Always use this tool to record any question that couldn't be answered as you didn't know the answer",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question that couldn't be answered",
				},
			},
			Required: []string{"question"},
		},
	}
}

func (t *recordUnknownQuestion) Call(ctx context.Context, args map[string]any) (map[string]any, error) {
	question := stringArg(args, "question")
	if question == "" {
		return nil, errors.New("question is required")
	}

	pushMessage(ctx, t.notifier, t.logger, fmt.Sprintf("Recording %s", question))
	return recordedOK(), nil
}

// pushMessage delivers the notification without letting sink failures bubble
// up into the conversation: the tool still acks to the model.
func pushMessage(ctx context.Context, notifier Notifier, logger *zap.Logger, message string) {
	if notifier == nil {
		logger.Info("notification sink disabled, logging only", zap.String("message", message))
		return
	}
	if err := notifier.Push(ctx, message); err != nil {
		logger.Warn("pushing notification failed", zap.Error(err))
	}
}

func stringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprintf("%v", v)
	}
	return strings.TrimSpace(s)
}
