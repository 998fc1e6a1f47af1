package openapi

import (
	"github.com/foodiehub/foodiehub/config"
	"go.uber.org/fx"
)

// BearerScheme is the security scheme name used by every protected operation.
const BearerScheme = "bearerAuth"

func ProvideOpenAPI(cfg *config.Config) *OpenAPI {
	return New(cfg.App.Name, "1.0.0").
		Description("Restaurant directory with encrypted access tokens and rotating refresh tokens.").
		Server(cfg.App.URL, "").
		BearerAuth(BearerScheme, "JWE", "Compact JWE access token (dir + A256GCM) issued by /api/auth/login.")
}

var Module = fx.Options(
	fx.Provide(ProvideOpenAPI),
)
