package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/matchday-bot/matchday/pkg/domain/interfaces"
	"github.com/matchday-bot/matchday/pkg/domain/model"
)

// completer adapts a gollem LLM client to the core's completion
// contract. Tool execution stays outside: a declared function call is
// surfaced as a ToolCallIntent and the orchestrator decides what to do
// with it.
type completer struct {
	client gollem.LLMClient
	tools  []gollem.Tool
}

var _ interfaces.Completer = &completer{}

// New creates a Completer that declares the given tools to the model
func New(client gollem.LLMClient, tools ...gollem.Tool) (interfaces.Completer, error) {
	if client == nil {
		return nil, goerr.New("LLM client is required")
	}

	return &completer{client: client, tools: tools}, nil
}

func (c *completer) NewExchange(ctx context.Context, preamble string) (interfaces.Exchange, error) {
	opts := []gollem.SessionOption{
		gollem.WithSessionSystemPrompt(preamble),
	}
	if len(c.tools) > 0 {
		opts = append(opts, gollem.WithSessionTools(c.tools...))
	}

	session, err := c.client.NewSession(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	return &exchange{session: session}, nil
}

type exchange struct {
	session gollem.Session
}

func (e *exchange) Send(ctx context.Context, prompt string) (*model.ModelReply, error) {
	resp, err := e.session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate content")
	}

	return toModelReply(resp), nil
}

func (e *exchange) Resolve(ctx context.Context, call *model.ToolCallIntent, outcome string) (*model.ModelReply, error) {
	resp, err := e.session.GenerateContent(ctx, gollem.FunctionResponse{
		ID:   call.ID,
		Name: call.Name,
		Data: map[string]any{"result": outcome},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve tool outcome",
			goerr.V("tool", call.Name),
		)
	}

	return toModelReply(resp), nil
}

// toModelReply maps a gollem response to the tagged reply variant. If
// the model declares function calls, only the first one is surfaced;
// the schema declares a single tool and the design allows one side
// effect per traversal.
func toModelReply(resp *gollem.Response) *model.ModelReply {
	reply := &model.ModelReply{
		Text: strings.Join(resp.Texts, "\n"),
	}

	if len(resp.FunctionCalls) > 0 {
		fc := resp.FunctionCalls[0]
		reply.ToolCall = &model.ToolCallIntent{
			ID:        fc.ID,
			Name:      fc.Name,
			Arguments: stringifyArguments(fc.Arguments),
		}
	}

	return reply
}

func stringifyArguments(args map[string]any) map[string]string {
	result := make(map[string]string, len(args))
	for key, value := range args {
		switch v := value.(type) {
		case string:
			result[key] = v
		default:
			result[key] = fmt.Sprintf("%v", v)
		}
	}
	return result
}
