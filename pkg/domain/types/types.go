package types

// UserID is a stable per-user identity provided by the transport
// (a Slack user ID, or a fixed identity for the local REPL).
type UserID string

// String returns the string representation of the UserID
func (id UserID) String() string {
	return string(id)
}

// Validate checks if the UserID is non-empty
func (id UserID) Validate() error {
	if id == "" {
		return ErrEmptyUserID
	}
	return nil
}
