package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foodiehub/foodiehub/services/accesstoken"
	"github.com/foodiehub/foodiehub/services/logging"
	"github.com/foodiehub/foodiehub/services/refreshtoken"
	"go.uber.org/zap"
)

type TokenPair struct {
	AccessToken      string    `json:"accessToken"`
	RefreshToken     string    `json:"refreshToken"`
	ExpiresIn        int       `json:"expiresIn"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

type Service struct {
	codec       *accesstoken.Codec
	store       refreshtoken.Store
	credentials Credentials
	refreshTTL  time.Duration
	logger      *logging.Service
	now         func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now for expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(codec *accesstoken.Codec, store refreshtoken.Store, credentials Credentials, refreshTTL time.Duration, logger *logging.Service, opts ...Option) *Service {
	s := &Service{
		codec:       codec,
		store:       store,
		credentials: credentials,
		refreshTTL:  refreshTTL,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	principal, err := s.credentials.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.logger.Info("login rejected", zap.Error(err))
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("credential verification failed", zap.Error(err))
		return nil, fmt.Errorf("failed to verify credentials: %w", err)
	}

	now := s.now()
	access, err := s.mintAccessToken(principal, now)
	if err != nil {
		return nil, err
	}

	refresh, err := refreshtoken.NewToken(principal.UserID, s.refreshTTL, now)
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, refresh); err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded", zap.String("user_id", principal.UserID))
	return s.pair(access, refresh), nil
}

// Refresh exchanges a usable refresh token for a new pair. The presented
// token is revoked in the same unit of work that stores its replacement, so
// a replayed or concurrently presented token never yields a second pair.
func (s *Service) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	now := s.now()

	record, err := s.store.Find(ctx, presented)
	if err != nil {
		if errors.Is(err, refreshtoken.ErrNotFound) {
			s.logger.Info("refresh rejected: unknown token")
			return nil, ErrInvalidOrExpiredRefreshToken
		}
		return nil, err
	}
	if !record.Usable(now) {
		s.logger.Info("refresh rejected: token revoked or expired",
			zap.String("user_id", record.UserID),
			zap.Bool("revoked", record.IsRevoked),
			zap.Time("expires_at", record.ExpiresAt))
		return nil, ErrInvalidOrExpiredRefreshToken
	}

	principal, err := s.credentials.Lookup(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, ErrUnknownPrincipal) {
			s.logger.Warn("refresh rejected: token owner no longer exists", zap.String("user_id", record.UserID))
			if revokeErr := s.store.Revoke(ctx, presented); revokeErr != nil && !isRevokeMiss(revokeErr) {
				s.logger.Error("failed to revoke orphaned refresh token", zap.Error(revokeErr))
			}
			return nil, ErrInvalidOrExpiredRefreshToken
		}
		return nil, fmt.Errorf("failed to look up token owner: %w", err)
	}

	access, err := s.mintAccessToken(principal, now)
	if err != nil {
		return nil, err
	}

	next, err := refreshtoken.NewToken(principal.UserID, s.refreshTTL, now)
	if err != nil {
		return nil, err
	}
	if err := s.store.Rotate(ctx, presented, next); err != nil {
		if isRevokeMiss(err) {
			s.logger.Warn("refresh rejected: token already used", zap.String("user_id", record.UserID))
			return nil, ErrInvalidOrExpiredRefreshToken
		}
		return nil, err
	}

	s.logger.Info("refresh token rotated", zap.String("user_id", principal.UserID))
	return s.pair(access, next), nil
}

// Revoke is idempotent: unknown and already revoked tokens are not errors.
func (s *Service) Revoke(ctx context.Context, token string) error {
	err := s.store.Revoke(ctx, token)
	if err == nil {
		s.logger.Info("refresh token revoked")
		return nil
	}
	if isRevokeMiss(err) {
		s.logger.Debug("refresh token revoke was a no-op", zap.Error(err))
		return nil
	}
	return err
}

func (s *Service) mintAccessToken(principal *Principal, now time.Time) (string, error) {
	claims := s.codec.Issue(principal.Email, principal.Roles, now)
	token, err := s.codec.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}
	return token, nil
}

func (s *Service) pair(access string, refresh *refreshtoken.RefreshToken) *TokenPair {
	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh.Token,
		ExpiresIn:        int(s.codec.Lifetime().Seconds()),
		RefreshExpiresAt: refresh.ExpiresAt,
	}
}

func isRevokeMiss(err error) bool {
	return errors.Is(err, refreshtoken.ErrNotFound) || errors.Is(err, refreshtoken.ErrAlreadyRevoked)
}
