// Package agenttools holds the side-effecting tools the persona agent exposes
// to the model. Tools are registered explicitly at startup so the tool set is
// statically enumerable; dispatch is a plain map lookup by declared name.
package agenttools

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Notifier is the outbound push sink tools report through. A nil notifier
// downgrades tools to log-only mode.
type Notifier interface {
	Push(ctx context.Context, message string) error
}

// Tool is one invocable function offered to the model.
type Tool interface {
	Name() string
	Declaration() *genai.FunctionDeclaration
	Call(ctx context.Context, args map[string]any) (map[string]any, error)
}

type Registry struct {
	tools  map[string]Tool
	order  []string
	logger *zap.Logger
}

func NewRegistry(logger *zap.Logger, tools ...Tool) *Registry {
	r := &Registry{
		tools:  make(map[string]Tool, len(tools)),
		logger: logger,
	}
	for _, tool := range tools {
		if _, dup := r.tools[tool.Name()]; dup {
			continue
		}
		r.tools[tool.Name()] = tool
		r.order = append(r.order, tool.Name())
	}
	return r
}

// Declarations returns the registered tools in registration order, shaped for
// a generate content request.
func (r *Registry) Declarations() []*genai.Tool {
	if len(r.order) == 0 {
		return nil
	}

	decls := make([]*genai.FunctionDeclaration, 0, len(r.order))
	for _, name := range r.order {
		decls = append(decls, r.tools[name].Declaration())
	}

	return []*genai.Tool{{FunctionDeclarations: decls}}
}

// Dispatch executes one model-requested invocation and shapes the result as a
// function response. Unknown tools and tool errors are reported back to the
// model instead of failing the conversation turn.
func (r *Registry) Dispatch(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
	tool, ok := r.tools[call.Name]
	if !ok {
		r.logger.Warn("model requested unknown tool", zap.String("tool", call.Name))
		return &genai.FunctionResponse{
			ID:       call.ID,
			Name:     call.Name,
			Response: map[string]any{"error": fmt.Sprintf("unknown tool: %s", call.Name)},
		}
	}

	r.logger.Info("tool called", zap.String("tool", call.Name))

	result, err := tool.Call(ctx, call.Args)
	if err != nil {
		r.logger.Warn("tool call failed", zap.String("tool", call.Name), zap.Error(err))
		return &genai.FunctionResponse{
			ID:       call.ID,
			Name:     call.Name,
			Response: map[string]any{"error": err.Error()},
		}
	}

	return &genai.FunctionResponse{
		ID:       call.ID,
		Name:     call.Name,
		Response: result,
	}
}
