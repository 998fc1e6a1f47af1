package authgate

import (
	"github.com/foodiehub/foodiehub/services/accesstoken"
	"github.com/foodiehub/foodiehub/services/logging"
	"go.uber.org/fx"
)

func ProvideGate(codec *accesstoken.Codec, logger *logging.Service) *Gate {
	return NewGate(codec, logger.Named("authgate"))
}

var Module = fx.Options(
	fx.Provide(ProvideGate),
)
