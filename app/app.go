package app

import (
	"context"
	"fmt"
	"time"

	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/server"
	"github.com/foodiehub/foodiehub/services/logging"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultShutdownGrace = 10 * time.Second

type App struct {
	fx     *fx.App
	config *config.Config
	logger *logging.Service
	db     *gorm.DB
	server *server.Server
}

func (a *App) Start(ctx context.Context) error {
	return a.fx.Start(ctx)
}

// Run starts the application and blocks until SIGINT, SIGTERM or a fatal
// server error, then stops it within the configured grace period.
func (a *App) Run() error {
	if err := a.Start(context.Background()); err != nil {
		return err
	}

	sig := <-a.fx.Wait()
	a.logger.Info("shutting down", zap.String("signal", sig.String()), zap.Int("exit_code", sig.ExitCode))

	if err := a.Stop(); err != nil {
		return err
	}
	if sig.ExitCode != 0 {
		return fmt.Errorf("application exited with code %d", sig.ExitCode)
	}
	return nil
}

func (a *App) Stop() error {
	grace := a.config.Server.ShutdownGrace
	if grace <= 0 {
		grace = defaultShutdownGrace
	}
	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if err := a.fx.Stop(ctx); err != nil {
		a.logger.Error("failed to stop application gracefully", zap.Error(err))
		return err
	}
	return nil
}

func (a *App) Server() *echo.Echo {
	if a.server == nil {
		return nil
	}
	return a.server.Echo()
}

func (a *App) Database() *gorm.DB {
	return a.db
}

func (a *App) Logger() *logging.Service {
	return a.logger
}

func (a *App) Config() *config.Config {
	return a.config
}
