package refreshtoken

import (
	"context"

	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/services/logging"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideStore(db *gorm.DB, logger *logging.Service) Store {
	return NewGormStore(db, logger.Named("refreshtoken"))
}

func ProvideCleaner(lc fx.Lifecycle, store Store, cfg *config.Config, logger *logging.Service) *Cleaner {
	cleaner := NewCleaner(store, cfg.RefreshToken.Retention, cfg.RefreshToken.CleanupInterval, logger.Named("refreshtoken"))

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			cleaner.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			cleaner.Stop()
			return nil
		},
	})

	return cleaner
}

var Module = fx.Options(
	fx.Provide(ProvideStore),
	fx.Provide(ProvideCleaner),
	fx.Invoke(func(*Cleaner) {}),
)
