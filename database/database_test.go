package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/services/directory"
	"github.com/foodiehub/foodiehub/services/identity"
	"github.com/foodiehub/foodiehub/services/logging"
	"github.com/foodiehub/foodiehub/services/refreshtoken"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"gorm.io/gorm"
)

func TestOpen(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		db, err := Open(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}, nil)

		require.NoError(t, err)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		assert.NoError(t, sqlDB.Ping())
		assert.NoError(t, Close(db))
	})

	t.Run("unsupported driver", func(t *testing.T) {
		db, err := Open(config.DatabaseConfig{Driver: "oracle", DSN: "x"}, nil)

		assert.Nil(t, db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})
}

func TestMigrateAndSeed(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}, nil)
	require.NoError(t, err)
	defer Close(db)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Seed(ctx, db))
	require.NoError(t, Seed(ctx, db))

	assert.True(t, db.Migrator().HasTable(&refreshtoken.RefreshToken{}))
	assert.True(t, db.Migrator().HasTable("user_roles"))

	var roles, cities int64
	require.NoError(t, db.Model(&identity.Role{}).Count(&roles).Error)
	require.NoError(t, db.Model(&directory.City{}).Count(&cities).Error)
	assert.Equal(t, int64(2), roles)
	assert.Equal(t, int64(6), cities)
}

func TestModule_Lifecycle(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver:      "sqlite",
		DSN:         filepath.Join(t.TempDir(), "foodiehub.db"),
		AutoMigrate: true,
		Seed:        true,
	}}

	var db *gorm.DB
	app := fxtest.New(t,
		Module,
		fx.Supply(cfg),
		fx.Provide(func() *logging.Service { return nil }),
		fx.Populate(&db),
	)
	app.RequireStart()

	var ranges int64
	require.NoError(t, db.Model(&directory.PriceRange{}).Count(&ranges).Error)
	assert.Equal(t, int64(3), ranges)

	app.RequireStop()
}
