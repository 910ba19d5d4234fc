package model

// TurnRole is the tagged role of a dialogue turn
type TurnRole string

const (
	RoleSystem    TurnRole = "system"
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
	RoleTool      TurnRole = "tool"
)

// DialogueTurn is one entry in a session's ordered history
type DialogueTurn struct {
	Role TurnRole
	Text string
}
