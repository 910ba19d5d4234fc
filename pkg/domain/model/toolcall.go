package model

// ToolCallIntent is a tool invocation declared by the model capability.
// It is consumed by the invoker and never persisted.
type ToolCallIntent struct {
	ID        string
	Name      string
	Arguments map[string]string
}

// ModelReply is the tagged result of one completion request: either
// plain reply text or exactly one declared tool call. The orchestrator
// matches on this explicitly rather than letting the completion layer
// dispatch tools on its own.
type ModelReply struct {
	Text     string
	ToolCall *ToolCallIntent
}

// IsToolCall reports whether the reply declares a tool invocation
func (r *ModelReply) IsToolCall() bool {
	return r.ToolCall != nil
}
