package app

import (
	"github.com/foodiehub/foodiehub/database"
	"github.com/foodiehub/foodiehub/handlers"
	"github.com/foodiehub/foodiehub/middleware/authgate"
	"github.com/foodiehub/foodiehub/middleware/ratelimit"
	"github.com/foodiehub/foodiehub/openapi"
	"github.com/foodiehub/foodiehub/server"
	"github.com/foodiehub/foodiehub/services/accesstoken"
	"github.com/foodiehub/foodiehub/services/directory"
	"github.com/foodiehub/foodiehub/services/identity"
	"github.com/foodiehub/foodiehub/services/images"
	"github.com/foodiehub/foodiehub/services/logging"
	"github.com/foodiehub/foodiehub/services/refreshtoken"
	"github.com/foodiehub/foodiehub/services/session"
	"github.com/foodiehub/foodiehub/ui"
	"go.uber.org/fx"
)

// Modules wires the complete API. The server module comes last so its start
// hook runs after migrations and route registration.
func Modules() fx.Option {
	return fx.Options(
		logging.Module,
		database.Module,
		accesstoken.Module,
		refreshtoken.Module,
		identity.Module,
		session.Module,
		authgate.Module,
		ratelimit.Module,
		directory.Module,
		images.Module,
		openapi.Module,
		handlers.Module,
		ui.Module,
		server.Module,
	)
}
