package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/services/logging"
	"github.com/foodiehub/foodiehub/services/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserExists            = errors.New("user already exists")
	ErrUnknownRole           = errors.New("unknown role")
	ErrPasswordHashingFailed = errors.New("failed to hash password")
)

type Service struct {
	db     *gorm.DB
	config config.AuthConfig
	logger *logging.Service
}

var _ session.Credentials = (*Service)(nil)

func NewService(db *gorm.DB, cfg config.AuthConfig, logger *logging.Service) *Service {
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		db:     db,
		config: cfg,
		logger: logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) ValidatePassword(password string) error {
	if len(password) < s.config.MinLength {
		return fmt.Errorf("password must be at least %d characters", s.config.MinLength)
	}
	return nil
}

func (s *Service) HashPassword(password string) (string, error) {
	if err := s.ValidatePassword(password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return "", ErrPasswordHashingFailed
	}
	return string(hash), nil
}

// Register creates an account holding the named roles. Every role must
// already exist.
func (s *Service) Register(ctx context.Context, email, password string, roleNames []string) (*User, error) {
	email = normalizeEmail(email)

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrUserExists
		}

		roles, err := findRoles(tx, roleNames)
		if err != nil {
			return err
		}
		user.Roles = roles

		return tx.Create(user).Error
	})
	if err != nil {
		if errors.Is(err, ErrUserExists) || errors.Is(err, ErrUnknownRole) {
			s.logger.Warn("registration rejected", zap.String("email", email), zap.Error(err))
			return nil, err
		}
		s.logger.Error("registration failed", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.Strings("roles", user.RoleNames()))
	return user, nil
}

func findRoles(tx *gorm.DB, names []string) ([]Role, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var roles []Role
	if err := tx.Where("name IN ?", names).Find(&roles).Error; err != nil {
		return nil, err
	}
	if len(roles) != len(uniqueNames(names)) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRole, strings.Join(names, ", "))
	}
	return roles, nil
}

func uniqueNames(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Preload("Roles").Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Verify checks a password against the stored hash. Unknown users and wrong
// passwords produce the same error.
func (s *Service) Verify(ctx context.Context, username, password string) (*session.Principal, error) {
	user, err := s.FindByEmail(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, session.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("password verification failed", zap.String("user_id", user.ID))
		return nil, session.ErrInvalidCredentials
	}

	return principal(user), nil
}

func (s *Service) Lookup(ctx context.Context, userID string) (*session.Principal, error) {
	var user User
	err := s.db.WithContext(ctx).Preload("Roles").Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, session.ErrUnknownPrincipal
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return principal(&user), nil
}

// SetRoles replaces the roles a user holds. The change reaches access tokens
// on their next refresh.
func (s *Service) SetRoles(ctx context.Context, userID string, roleNames []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return session.ErrUnknownPrincipal
			}
			return err
		}

		roles, err := findRoles(tx, roleNames)
		if err != nil {
			return err
		}
		return tx.Model(&user).Association("Roles").Replace(roles)
	})
}

func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Select("Roles").Delete(&User{ID: userID}).Error
}

func principal(user *User) *session.Principal {
	return &session.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.RoleNames(),
	}
}

// SeedRoles inserts DefaultRoles that are not present yet.
func SeedRoles(ctx context.Context, db *gorm.DB) error {
	roles := make([]Role, len(DefaultRoles))
	copy(roles, DefaultRoles)
	return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error
}
