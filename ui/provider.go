package ui

import (
	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/middleware/csrf"
	"github.com/foodiehub/foodiehub/server"
	"github.com/foodiehub/foodiehub/services/logging"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Options(
	fx.Provide(NewCitiesPage),
	fx.Invoke(Mount),
)

// Mount installs the renderer and the /ui routes when the UI is enabled.
func Mount(cfg *config.Config, srv *server.Server, pages *CitiesPage, logger *logging.Service) error {
	if !cfg.UI.Enabled {
		return nil
	}

	renderer, err := NewRenderer(&cfg.UI)
	if err != nil {
		return err
	}
	srv.SetRenderer(renderer)
	pages.Routes(srv.Group("/ui", csrf.Middleware(cfg.UI.CSRF)))

	logger.Info("ui mounted", zap.Bool("development", cfg.UI.Development))
	return nil
}
