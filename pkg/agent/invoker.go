package agent

import (
	"context"
	"fmt"

	"github.com/m-mizutani/gollem"
	"github.com/matchday-bot/matchday/pkg/domain/model"
	"github.com/matchday-bot/matchday/pkg/utils/logging"
)

// Invoker validates a declared tool call, runs the matching tool and
// renders the outcome as a user-displayable string. It never returns
// an error: every failure mode, including a tool the model invented or
// a missing required argument, becomes a descriptive outcome string.
type Invoker struct {
	tools map[string]gollem.Tool
}

// NewInvoker creates an Invoker over the given tools
func NewInvoker(tools ...gollem.Tool) *Invoker {
	registered := make(map[string]gollem.Tool, len(tools))
	for _, t := range tools {
		registered[t.Spec().Name] = t
	}
	return &Invoker{tools: registered}
}

// Tools returns the registered tools for schema declaration
func (iv *Invoker) Tools() []gollem.Tool {
	result := make([]gollem.Tool, 0, len(iv.tools))
	for _, t := range iv.tools {
		result = append(result, t)
	}
	return result
}

// Invoke executes the declared tool call and returns the outcome text
func (iv *Invoker) Invoke(ctx context.Context, call *model.ToolCallIntent) string {
	logger := logging.From(ctx)

	t, ok := iv.tools[call.Name]
	if !ok {
		logger.Warn("model declared an unknown tool", "tool", call.Name)
		return fmt.Sprintf("The requested tool %q is not available.", call.Name)
	}

	args := make(map[string]any, len(call.Arguments))
	for key, value := range call.Arguments {
		args[key] = value
	}

	result, err := t.Run(ctx, args)
	if err != nil {
		logger.Warn("tool execution failed", "tool", call.Name, "error", err.Error())
		return fmt.Sprintf("Failed to execute %s: %s", call.Name, err.Error())
	}

	if outcome, ok := result["result"].(string); ok {
		return outcome
	}

	return fmt.Sprintf("Tool %s completed.", call.Name)
}
