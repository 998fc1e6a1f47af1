package ratelimit

import (
	"context"

	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/services/logging"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewStore(cfg *config.Config) Store {
	switch cfg.RateLimit.Store {
	case "redis":
		return NewRedisStore(cfg.Redis)
	default:
		return NewMemoryStore()
	}
}

func ProvideStore(lc fx.Lifecycle, cfg *config.Config, logger *logging.Service) Store {
	store := NewStore(cfg)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if rs, ok := store.(*RedisStore); ok {
				if err := rs.Ping(ctx); err != nil {
					logger.Warn("redis rate limit store unreachable, limits fail open", zap.Error(err))
				}
			}
			return nil
		},
		OnStop: func(context.Context) error {
			if closer, ok := store.(interface{ Close() error }); ok {
				return closer.Close()
			}
			return nil
		},
	})

	return store
}

// AuthLimiter is the middleware applied to the token endpoints. It passes
// requests through untouched when rate limiting is disabled.
type AuthLimiter echo.MiddlewareFunc

func ProvideAuthLimiter(cfg *config.Config, store Store, logger *logging.Service) AuthLimiter {
	if !cfg.RateLimit.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return AuthLimiter(Middleware(&Config{
		Store:        store,
		Rate:         cfg.RateLimit.Rate,
		Period:       cfg.RateLimit.Period,
		CountMode:    cfg.RateLimit.CountMode,
		KeyGenerator: RouteKeyGenerator,
		Logger:       logger.Named("ratelimit"),
	}))
}

var Module = fx.Options(
	fx.Provide(ProvideStore),
	fx.Provide(ProvideAuthLimiter),
)
