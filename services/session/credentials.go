package session

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials           = errors.New("invalid credentials")
	ErrInvalidOrExpiredRefreshToken = errors.New("invalid or expired refresh token")
	ErrUnknownPrincipal             = errors.New("unknown principal")
)

// Principal is what the credential store knows about an account at the
// moment it is asked.
type Principal struct {
	UserID string
	Email  string
	Roles  []string
}

// Credentials is implemented by the identity store. Verify returns
// ErrInvalidCredentials for an unknown user or a wrong password, and Lookup
// returns ErrUnknownPrincipal when the account no longer exists.
type Credentials interface {
	Verify(ctx context.Context, username, password string) (*Principal, error)
	Lookup(ctx context.Context, userID string) (*Principal, error)
}
