package refreshtoken

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore keeps tokens in process memory. It backs tests and single
// process deployments that do not need tokens to survive a restart.
type MemoryStore struct {
	mu     sync.Mutex
	nextID uint
	tokens map[string]*RefreshToken
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]*RefreshToken)}
}

func (s *MemoryStore) Find(_ context.Context, token string) (*RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.tokens[token]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *MemoryStore) Insert(_ context.Context, token *RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertLocked(token)
}

func (s *MemoryStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.revokeLocked(token)
}

func (s *MemoryStore) Rotate(_ context.Context, presented string, next *RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tokens[next.Token]; exists {
		return fmt.Errorf("failed to rotate refresh token: duplicate token value")
	}
	if err := s.revokeLocked(presented); err != nil {
		return err
	}
	return s.insertLocked(next)
}

func (s *MemoryStore) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for value, record := range s.tokens {
		if record.ExpiresAt.Before(before) {
			delete(s.tokens, value)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemoryStore) insertLocked(token *RefreshToken) error {
	if _, exists := s.tokens[token.Token]; exists {
		return fmt.Errorf("failed to store refresh token: duplicate token value")
	}
	s.nextID++
	token.ID = s.nextID
	copied := *token
	s.tokens[token.Token] = &copied
	return nil
}

func (s *MemoryStore) revokeLocked(token string) error {
	record, ok := s.tokens[token]
	if !ok {
		return ErrNotFound
	}
	if record.IsRevoked {
		return ErrAlreadyRevoked
	}
	record.IsRevoked = true
	return nil
}
