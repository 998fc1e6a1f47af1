package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/server"
	"github.com/foodiehub/foodiehub/services/identity"
	"github.com/foodiehub/foodiehub/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := testutils.GetTestConfig()
	cfg.Server.Port = "0"
	cfg.Database.AutoMigrate = true
	cfg.Database.Seed = true
	cfg.Storage.Dir = filepath.Join(t.TempDir(), "Images")
	return cfg
}

func serve(a *App, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Server().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestAppBuilder_WithConfig(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewApp().WithConfig(nil).Build()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "config cannot be nil")
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Token.Key = "too-short"

		_, err := NewApp().WithConfig(cfg).Build()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "token key")
	})
}

func TestAppBuilder_WithFxOptions(t *testing.T) {
	var invoked bool

	a, err := NewApp().
		WithConfig(testConfig(t)).
		WithFxOptions(fx.Invoke(func(*server.Server) { invoked = true })).
		Build()

	require.NoError(t, err)
	assert.NotNil(t, a)
	assert.True(t, invoked)
}

func TestApp_Lifecycle(t *testing.T) {
	cfg := testConfig(t)
	cfg.UI.Enabled = true

	a, err := NewApp().WithConfig(cfg).Build()
	require.NoError(t, err)

	require.NoError(t, a.Start(context.Background()))
	defer func() { assert.NoError(t, a.Stop()) }()

	assert.Same(t, cfg, a.Config())
	assert.NotNil(t, a.Logger())
	require.NotNil(t, a.Database())

	var roles int64
	require.NoError(t, a.Database().Model(&identity.Role{}).Count(&roles).Error)
	assert.Equal(t, int64(2), roles)

	t.Run("health", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(a, http.MethodGet, "/health").Code)
	})

	t.Run("city count is public", func(t *testing.T) {
		rec := serve(a, http.MethodHead, "/api/cities")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "6", rec.Header().Get("X-Total-Count"))
	})

	t.Run("city list needs a token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(a, http.MethodGet, "/api/cities").Code)
	})

	t.Run("openapi document", func(t *testing.T) {
		rec := serve(a, http.MethodGet, "/openapi.json")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/api/auth/login")
	})

	t.Run("ui", func(t *testing.T) {
		rec := serve(a, http.MethodGet, "/ui/cities")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "New York")
	})
}

func TestApp_ServerBeforeBuild(t *testing.T) {
	a := &App{}
	assert.Nil(t, a.Server())
	assert.Nil(t, a.Database())
}
