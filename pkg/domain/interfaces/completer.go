package interfaces

import (
	"context"

	"github.com/matchday-bot/matchday/pkg/domain/model"
)

// Completer is the chat-completion capability. One Exchange covers one
// traversal of the conversation state machine.
type Completer interface {
	NewExchange(ctx context.Context, preamble string) (Exchange, error)
}

// Exchange is a single completion round trip plus the optional
// tool-result continuation.
type Exchange interface {
	// Send submits the composed prompt and returns either plain reply
	// text or a declared tool call.
	Send(ctx context.Context, prompt string) (*model.ModelReply, error)

	// Resolve feeds a tool outcome back to the model and returns its
	// final natural-language reply.
	Resolve(ctx context.Context, call *model.ToolCallIntent, outcome string) (*model.ModelReply, error)
}
