package agent_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	"github.com/matchday-bot/matchday/pkg/agent"
	"github.com/matchday-bot/matchday/pkg/domain/model"
)

// stubTool is a configurable gollem.Tool for invoker tests
type stubTool struct {
	name  string
	runFn func(ctx context.Context, args map[string]any) (map[string]any, error)
	args  map[string]any
}

func (s *stubTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        s.name,
		Description: "stub",
	}
}

func (s *stubTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	s.args = args
	if s.runFn != nil {
		return s.runFn(ctx, args)
	}
	return map[string]any{"result": "done"}, nil
}

func TestInvoker(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches to the named tool with string arguments", func(t *testing.T) {
		tool := &stubTool{name: "create_calendar_event"}
		iv := agent.NewInvoker(tool)

		outcome := iv.Invoke(ctx, &model.ToolCallIntent{
			Name:      "create_calendar_event",
			Arguments: map[string]string{"summary": "Germany W vs Spain W"},
		})

		gt.Value(t, outcome).Equal("done")
		gt.Value(t, tool.args["summary"]).Equal("Germany W vs Spain W")
	})

	t.Run("unknown tool becomes a descriptive outcome", func(t *testing.T) {
		iv := agent.NewInvoker(&stubTool{name: "create_calendar_event"})

		outcome := iv.Invoke(ctx, &model.ToolCallIntent{Name: "send_email"})
		gt.Value(t, outcome).Equal(`The requested tool "send_email" is not available.`)
	})

	t.Run("tool error becomes a descriptive outcome", func(t *testing.T) {
		tool := &stubTool{
			name: "create_calendar_event",
			runFn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				return nil, goerr.New("summary is required")
			},
		}
		iv := agent.NewInvoker(tool)

		outcome := iv.Invoke(ctx, &model.ToolCallIntent{Name: "create_calendar_event"})
		gt.Value(t, outcome).Equal("Failed to execute create_calendar_event: summary is required")
	})

	t.Run("result without outcome string gets a fallback", func(t *testing.T) {
		tool := &stubTool{
			name: "create_calendar_event",
			runFn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				return map[string]any{"count": 1}, nil
			},
		}
		iv := agent.NewInvoker(tool)

		outcome := iv.Invoke(ctx, &model.ToolCallIntent{Name: "create_calendar_event"})
		gt.Value(t, outcome).Equal("Tool create_calendar_event completed.")
	})
}
