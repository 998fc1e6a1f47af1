package refreshtoken

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound              = errors.New("refresh token not found")
	ErrAlreadyRevoked        = errors.New("refresh token already revoked")
	ErrTokenGenerationFailed = errors.New("failed to generate secure token")
)

// Store persists refresh tokens. Revoke and Rotate are safe under concurrent
// callers presenting the same token: exactly one of them succeeds and the
// others get ErrAlreadyRevoked.
type Store interface {
	Find(ctx context.Context, token string) (*RefreshToken, error)
	Insert(ctx context.Context, token *RefreshToken) error
	Revoke(ctx context.Context, token string) error
	// Rotate revokes presented and inserts next as one unit. If it fails,
	// nothing changed.
	Rotate(ctx context.Context, presented string, next *RefreshToken) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
