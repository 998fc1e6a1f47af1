package session

import (
	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/services/accesstoken"
	"github.com/foodiehub/foodiehub/services/logging"
	"github.com/foodiehub/foodiehub/services/refreshtoken"
	"go.uber.org/fx"
)

func ProvideService(codec *accesstoken.Codec, store refreshtoken.Store, credentials Credentials, cfg *config.Config, logger *logging.Service) *Service {
	return NewService(codec, store, credentials, cfg.Token.RefreshExpiry, logger.Named("session"))
}

var Module = fx.Options(
	fx.Provide(ProvideService),
)
