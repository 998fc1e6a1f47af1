package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/database"
	"github.com/foodiehub/foodiehub/services/identity"
	"github.com/foodiehub/foodiehub/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func useTempDatabase(t *testing.T) string {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "foodiehub.db")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", dsn)
	t.Setenv("TOKEN_KEY", testutils.TestTokenKey)
	t.Setenv("LOG_LEVEL", "error")
	return dsn
}

func TestOpenAPICommand(t *testing.T) {
	t.Setenv("APP_NAME", "Docs Test")

	out, err := run(t, "openapi", "--format", "json")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Docs Test", doc["info"].(map[string]any)["title"])
	assert.Contains(t, doc["paths"], "/api/cities/{id}")

	_, err = run(t, "openapi", "--format", "xml")
	assert.Error(t, err)
}

func TestMigrateCommand(t *testing.T) {
	dsn := useTempDatabase(t)

	_, err := run(t, "migrate")
	require.NoError(t, err)

	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn}, nil)
	require.NoError(t, err)
	defer database.Close(db)

	var roles int64
	require.NoError(t, db.Model(&identity.Role{}).Count(&roles).Error)
	assert.Equal(t, int64(2), roles)
}

func TestUserCreateCommand(t *testing.T) {
	dsn := useTempDatabase(t)

	out, err := run(t, "user", "create",
		"--email", "owner@example.com",
		"--password", testutils.TestPasswords.Valid,
		"--role", identity.RoleRestaurantOwner,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "created user owner@example.com")

	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn}, nil)
	require.NoError(t, err)
	defer database.Close(db)

	var user identity.User
	require.NoError(t, db.Preload("Roles").Where("email = ?", "owner@example.com").First(&user).Error)
	require.Len(t, user.Roles, 1)
	assert.Equal(t, identity.RoleRestaurantOwner, user.Roles[0].Name)

	t.Run("short password is rejected", func(t *testing.T) {
		_, err := run(t, "user", "create", "--email", "x@example.com", "--password", testutils.TestPasswords.TooShort)
		assert.Error(t, err)
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := run(t, "user", "create", "--password", testutils.TestPasswords.Valid)
		assert.Error(t, err)
	})
}
