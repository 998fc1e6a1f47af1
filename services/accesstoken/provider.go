package accesstoken

import (
	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/services/logging"
	"go.uber.org/fx"
)

func ProvideCodec(cfg *config.Config, logger *logging.Service) (*Codec, error) {
	return NewCodec(cfg.Token, logger.Named("accesstoken"))
}

var Module = fx.Options(
	fx.Provide(ProvideCodec),
)
