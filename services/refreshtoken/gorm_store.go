package refreshtoken

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foodiehub/foodiehub/services/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GormStore struct {
	db     *gorm.DB
	logger *logging.Service
}

func NewGormStore(db *gorm.DB, logger *logging.Service) *GormStore {
	return &GormStore{db: db, logger: logger}
}

func (s *GormStore) Find(ctx context.Context, token string) (*RefreshToken, error) {
	var record RefreshToken
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("failed to look up refresh token", zap.Error(err))
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &record, nil
}

func (s *GormStore) Insert(ctx context.Context, token *RefreshToken) error {
	if err := s.db.WithContext(ctx).Create(token).Error; err != nil {
		s.logger.Error("failed to store refresh token",
			zap.String("user_id", token.UserID),
			zap.Error(err))
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *GormStore) Revoke(ctx context.Context, token string) error {
	return revokeIn(s.db.WithContext(ctx), token)
}

func (s *GormStore) Rotate(ctx context.Context, presented string, next *RefreshToken) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := revokeIn(tx, presented); err != nil {
			return err
		}
		return tx.Create(next).Error
	})
	if err != nil && !errors.Is(err, ErrAlreadyRevoked) && !errors.Is(err, ErrNotFound) {
		s.logger.Error("refresh token rotation failed",
			zap.String("user_id", next.UserID),
			zap.Error(err))
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	return err
}

func (s *GormStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&RefreshToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired refresh tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// revokeIn flips is_revoked only when it is still false, so the affected row
// count tells concurrent callers apart.
func revokeIn(db *gorm.DB, token string) error {
	result := db.Model(&RefreshToken{}).
		Where("token = ? AND is_revoked = ?", token, false).
		Update("is_revoked", true)
	if result.Error != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := db.Model(&RefreshToken{}).Where("token = ?", token).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrAlreadyRevoked
}
