package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrEmptyUserID is returned when a transport passes an empty user identity
	ErrEmptyUserID = goerr.New("user ID is empty")
)
