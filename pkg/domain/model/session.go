package model

// Session owns one user's ordered dialogue history. The first turn is
// always the system preamble; turns are never reordered or deleted
// except by Reset, which replaces the sequence wholesale.
type Session struct {
	preamble string
	turns    []DialogueTurn
}

// NewSession creates a session seeded with the system preamble
func NewSession(preamble string) *Session {
	return &Session{
		preamble: preamble,
		turns:    []DialogueTurn{{Role: RoleSystem, Text: preamble}},
	}
}

// Reset replaces the turn sequence with a single system turn carrying
// the original preamble.
func (s *Session) Reset() {
	s.turns = []DialogueTurn{{Role: RoleSystem, Text: s.preamble}}
}

// Preamble returns the fixed system preamble
func (s *Session) Preamble() string {
	return s.preamble
}

// Append adds a turn to the end of the history, preserving order
func (s *Session) Append(turn DialogueTurn) {
	s.turns = append(s.turns, turn)
}

// Truncate drops turns beyond length n. Used by the orchestrator to
// roll back a failed traversal without touching earlier history.
func (s *Session) Truncate(n int) {
	if n < 1 || n > len(s.turns) {
		return
	}
	s.turns = s.turns[:n]
}

// Len returns the number of turns including the system preamble
func (s *Session) Len() int {
	return len(s.turns)
}

// Turns returns a copy of the full ordered history
func (s *Session) Turns() []DialogueTurn {
	copied := make([]DialogueTurn, len(s.turns))
	copy(copied, s.turns)
	return copied
}
