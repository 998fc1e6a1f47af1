package images

import (
	"context"

	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/services/directory"
	"github.com/foodiehub/foodiehub/services/logging"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideStorage(cfg *config.Config, logger *logging.Service) (Storage, error) {
	switch cfg.Storage.Driver {
	case "s3":
		logger.Info("using s3 image storage")
		return NewS3Storage(context.Background(), cfg.Storage)
	default:
		return NewLocalStorage(cfg.Storage.Dir, cfg.Storage.PublicPath)
	}
}

func ProvideService(db *gorm.DB, storage Storage, cities *directory.CityRepository, cfg *config.Config, logger *logging.Service) *Service {
	return NewService(db, storage, cities, cfg.Storage, logger.Named("images"))
}

var Module = fx.Options(
	fx.Provide(ProvideStorage),
	fx.Provide(ProvideService),
)
