package identity

import (
	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/services/logging"
	"github.com/foodiehub/foodiehub/services/session"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideService(db *gorm.DB, cfg *config.Config, logger *logging.Service) *Service {
	return NewService(db, cfg.Auth, logger.Named("identity"))
}

var Module = fx.Options(
	fx.Provide(ProvideService),
	fx.Provide(func(s *Service) session.Credentials { return s }),
)
