package foodiehub

import (
	"path/filepath"
	"testing"

	"github.com/foodiehub/foodiehub/services/directory"
	"github.com/foodiehub/foodiehub/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestNew(t *testing.T) {
	cfg := testutils.GetTestConfig()
	cfg.Storage.Dir = filepath.Join(t.TempDir(), "Images")

	var cities *directory.CityRepository
	a, err := New(WithConfig(cfg), WithFxOptions(fx.Populate(&cities)))

	require.NoError(t, err)
	assert.Same(t, cfg, a.Config())
	assert.NotNil(t, cities)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := testutils.GetTestConfig()
	cfg.Token.Key = ""

	_, err := New(WithConfig(cfg))
	assert.Error(t, err)
}
