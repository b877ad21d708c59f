package tools

import (
	"context"
	"fmt"

	"github.com/PabloGalante/career-companion/internal/domain"
	"github.com/PabloGalante/career-companion/internal/observability"
)

// Tool represents a function the model may ask us to run.
// input/output is a generic map, matching the model's function-call payloads.
type Tool interface {
	Name() domain.ToolName
	Call(ctx context.Context, input map[string]any) (map[string]any, error)
}

// Registry is a closed dispatch table from tool name to implementation.
type Registry struct {
	tools map[domain.ToolName]Tool
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[domain.ToolName]Tool, len(tools))}
	for _, t := range tools {
		r.tools[t.Name()] = t
	}
	return r
}

// Dispatch runs the tool named by call.
func (r *Registry) Dispatch(ctx context.Context, call domain.ToolCall) (map[string]any, error) {
	tool, ok := r.tools[call.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTool, call.Name)
	}

	log := observability.LoggerFromContext(ctx).With("tool", call.Name)
	log.Info("running tool")

	out, err := tool.Call(ctx, call.Args)
	if err != nil {
		log.Error("tool failed", "error", err)
		return nil, fmt.Errorf("%s: %w", call.Name, err)
	}
	return out, nil
}

// --- internal helpers --- //

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
