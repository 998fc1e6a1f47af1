package database

import (
	"context"
	"fmt"

	"github.com/foodiehub/foodiehub/services/directory"
	"github.com/foodiehub/foodiehub/services/identity"
	"github.com/foodiehub/foodiehub/services/images"
	"github.com/foodiehub/foodiehub/services/refreshtoken"
	"gorm.io/gorm"
)

// Models lists every persisted type in dependency order.
func Models() []any {
	models := []any{&identity.Role{}, &identity.User{}, &refreshtoken.RefreshToken{}}
	models = append(models, directory.Models()...)
	return append(models, &images.Image{})
}

func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	return nil
}

// Seed inserts reference data. Existing rows are left alone.
func Seed(ctx context.Context, db *gorm.DB) error {
	if err := identity.SeedRoles(ctx, db); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}
	if err := directory.Seed(ctx, db); err != nil {
		return fmt.Errorf("failed to seed directory: %w", err)
	}
	return nil
}
