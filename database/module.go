package database

import (
	"context"

	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/services/logging"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Options(
	fx.Provide(ProvideDatabaseFx),
)

func ProvideDatabaseFx(lc fx.Lifecycle, cfg *config.Config, logger *logging.Service) (*gorm.DB, error) {
	db, err := Open(cfg.Database, logger.Named("database"))
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.Database.AutoMigrate {
				if err := Migrate(ctx, db); err != nil {
					return err
				}
			}
			if cfg.Database.Seed {
				return Seed(ctx, db)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return Close(db)
		},
	})

	return db, nil
}
