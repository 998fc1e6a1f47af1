package refreshtoken

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// tokenBytes is the entropy drawn for every refresh token (128 bits).
const tokenBytes = 16

type RefreshToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Token     string    `json:"-" gorm:"uniqueIndex;size:64;not null"`
	UserID    string    `json:"user_id" gorm:"not null;index;size:64"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	IsRevoked bool      `json:"is_revoked" gorm:"not null;default:false"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// Usable reports whether the token may still be exchanged at now.
func (t *RefreshToken) Usable(now time.Time) bool {
	return t != nil && !t.IsRevoked && now.Before(t.ExpiresAt)
}

// NewToken creates an unsaved record for userID with a fresh random value.
func NewToken(userID string, ttl time.Duration, now time.Time) (*RefreshToken, error) {
	value, err := generateValue()
	if err != nil {
		return nil, err
	}

	return &RefreshToken{
		Token:     value,
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
	}, nil
}

func generateValue() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenGenerationFailed, err)
	}
	return hex.EncodeToString(buf), nil
}
