package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/matchday-bot/matchday/pkg/domain/interfaces"
	"github.com/matchday-bot/matchday/pkg/domain/model"
	"github.com/matchday-bot/matchday/pkg/domain/types"
	"github.com/matchday-bot/matchday/pkg/utils/logging"
)

const (
	// DefaultTopK is the retrieval depth per user message
	DefaultTopK = 10

	// GenericErrorReply is returned when a traversal fails at the
	// completion boundary. The underlying error is logged, never shown.
	GenericErrorReply = "An error occurred while processing your message. Please try again."

	// ResetReply confirms a history reset
	ResetReply = "History has been reset. How can I help you?"
)

// ChatUseCase is the conversation orchestrator. It owns the per-user
// session registry and drives one traversal per incoming message:
// retrieve, compose, complete, optionally invoke a tool, record.
type ChatUseCase struct {
	completer interfaces.Completer
	retriever ContextRetriever
	invoker   ToolInvoker
	preamble  string
	topK      int

	mu       sync.Mutex
	sessions map[types.UserID]*sessionEntry
}

// sessionEntry serializes traversals per user. Distinct users proceed
// concurrently; two messages from the same user queue on the entry
// mutex in arrival order.
type sessionEntry struct {
	mu      sync.Mutex
	session *model.Session
}

// ChatOption configures a ChatUseCase
type ChatOption func(*ChatUseCase)

// WithTopK overrides the retrieval depth
func WithTopK(k int) ChatOption {
	return func(uc *ChatUseCase) {
		if k > 0 {
			uc.topK = k
		}
	}
}

// NewChatUseCase creates the orchestrator over its three capabilities
func NewChatUseCase(completer interfaces.Completer, retriever ContextRetriever, invoker ToolInvoker, preamble string, opts ...ChatOption) *ChatUseCase {
	uc := &ChatUseCase{
		completer: completer,
		retriever: retriever,
		invoker:   invoker,
		preamble:  preamble,
		topK:      DefaultTopK,
		sessions:  make(map[types.UserID]*sessionEntry),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// HandleMessage runs one full traversal for the user's message and
// always returns a displayable reply. Capability failures degrade: the
// retriever contributes an empty context block, and a completion
// failure yields GenericErrorReply while the session keeps only the
// user turn so a retry starts clean.
func (uc *ChatUseCase) HandleMessage(ctx context.Context, userID types.UserID, text string) string {
	logger := logging.From(ctx)

	entry := uc.entryFor(userID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	contextBlock := uc.retriever.Retrieve(ctx, text, uc.topK)

	entry.session.Append(model.DialogueTurn{Role: model.RoleUser, Text: text})
	checkpoint := entry.session.Len()

	prompt := composePrompt(entry.session.Turns(), contextBlock)

	ex, err := uc.completer.NewExchange(ctx, entry.session.Preamble())
	if err != nil {
		logger.Error("failed to open completion exchange", "user_id", userID, "error", err.Error())
		entry.session.Truncate(checkpoint)
		return GenericErrorReply
	}

	reply, err := ex.Send(ctx, prompt)
	if err != nil {
		logger.Error("completion failed", "user_id", userID, "error", err.Error())
		entry.session.Truncate(checkpoint)
		return GenericErrorReply
	}

	var replyText string
	if reply.IsToolCall() {
		replyText = uc.resolveToolCall(ctx, ex, entry.session, reply.ToolCall)
	} else {
		replyText = reply.Text
	}

	if replyText == "" {
		logger.Warn("model returned an empty reply", "user_id", userID)
		entry.session.Truncate(checkpoint)
		return GenericErrorReply
	}

	entry.session.Append(model.DialogueTurn{Role: model.RoleAssistant, Text: replyText})
	return replyText
}

// resolveToolCall invokes the declared tool, records the outcome as a
// tool turn and feeds it back for the model's closing reply. The side
// effect has already happened once Invoke returns, so any failure past
// that point falls back to the outcome string rather than a generic
// error: the user must learn what the tool did.
func (uc *ChatUseCase) resolveToolCall(ctx context.Context, ex interfaces.Exchange, session *model.Session, call *model.ToolCallIntent) string {
	logger := logging.From(ctx)

	outcome := uc.invoker.Invoke(ctx, call)
	session.Append(model.DialogueTurn{Role: model.RoleTool, Text: outcome})

	final, err := ex.Resolve(ctx, call, outcome)
	if err != nil {
		logger.Warn("failed to resolve tool outcome, replying with outcome directly",
			"tool", call.Name, "error", err.Error())
		return outcome
	}

	// One side effect per traversal: a second declared call is not
	// dispatched.
	if final.IsToolCall() {
		logger.Warn("model declared another tool call after resolution, not dispatched",
			"tool", final.ToolCall.Name)
	}
	if final.Text == "" {
		return outcome
	}

	return final.Text
}

// Reset re-seeds the user's session with the original preamble
func (uc *ChatUseCase) Reset(ctx context.Context, userID types.UserID) string {
	entry := uc.entryFor(userID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.session.Reset()
	logging.From(ctx).Info("session reset", "user_id", userID)

	return ResetReply
}

// SessionTurns returns a copy of the user's history. Used by tests and
// diagnostics; returns nil when the user has never spoken.
func (uc *ChatUseCase) SessionTurns(userID types.UserID) []model.DialogueTurn {
	uc.mu.Lock()
	entry, ok := uc.sessions[userID]
	uc.mu.Unlock()
	if !ok {
		return nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.session.Turns()
}

func (uc *ChatUseCase) entryFor(userID types.UserID) *sessionEntry {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	entry, ok := uc.sessions[userID]
	if !ok {
		entry = &sessionEntry{session: model.NewSession(uc.preamble)}
		uc.sessions[userID] = entry
	}
	return entry
}

// composePrompt renders the ordered history followed by the retrieved
// context block. The system turn is omitted: the preamble travels as
// the exchange's system prompt.
func composePrompt(turns []model.DialogueTurn, contextBlock string) string {
	var sb strings.Builder
	for _, turn := range turns {
		switch turn.Role {
		case model.RoleUser:
			fmt.Fprintf(&sb, "User: %s\n", turn.Text)
		case model.RoleAssistant:
			fmt.Fprintf(&sb, "Assistant: %s\n", turn.Text)
		case model.RoleTool:
			fmt.Fprintf(&sb, "Tool: %s\n", turn.Text)
		}
	}

	sb.WriteString("\nUse the following context to answer the user's question.\n")
	sb.WriteString("If the user asks for a reminder, use the information in the context to call the calendar tool.\n")
	sb.WriteString("\nCONTEXT:\n")
	sb.WriteString(contextBlock)

	return sb.String()
}
