package handlers

import (
	"errors"
	"net/http"

	"github.com/foodiehub/foodiehub/middleware/authgate"
	"github.com/foodiehub/foodiehub/middleware/ratelimit"
	"github.com/foodiehub/foodiehub/openapi"
	"github.com/foodiehub/foodiehub/server"
	"github.com/foodiehub/foodiehub/services/directory"
	"github.com/foodiehub/foodiehub/services/identity"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const totalCountHeader = "X-Total-Count"

// Handlers groups every API controller so they can be mounted together.
type Handlers struct {
	fx.In

	Gate        *authgate.Gate
	AuthLimiter ratelimit.AuthLimiter
	Auth        *AuthHandler
	Cities      *CitiesHandler
	Restaurants *RestaurantsHandler
	PriceRanges *PriceRangesHandler
	Images      *ImagesHandler
}

// Register mounts the API under /api. Every route is classified by the auth
// gate; role checks are attached per route.
func Register(e *echo.Echo, h Handlers) {
	api := e.Group("/api", h.Gate.Middleware())

	h.Auth.Routes(api.Group("/auth", echo.MiddlewareFunc(h.AuthLimiter)))
	h.Cities.Routes(api.Group("/cities"))
	h.Restaurants.Routes(api.Group("/restaurants"))
	h.PriceRanges.Routes(api.Group("/priceranges"))
	h.Images.Routes(api.Group("/images"))
}

var Module = fx.Options(
	fx.Provide(
		NewAuthHandler,
		NewCitiesHandler,
		NewRestaurantsHandler,
		NewPriceRangesHandler,
		NewImagesHandler,
	),
	fx.Invoke(func(srv *server.Server, h Handlers, doc *openapi.OpenAPI) {
		Register(srv.Echo(), h)
		Describe(doc)
		openapi.Mount(srv.Echo(), doc)
	}),
)

var (
	reviewer = authgate.RequireRole(identity.RoleReviewer)
	owner    = authgate.RequireRole(identity.RoleRestaurantOwner)
	anyRole  = authgate.RequireRole(identity.RoleReviewer, identity.RoleRestaurantOwner)
)

// bind decodes the request into dst and runs struct validation. Validation
// failures are rendered by the server's error handler.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return c.Validate(dst)
}

// pathID returns the :id parameter, or a 404 when it is not a UUID.
func pathID(c echo.Context) (string, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", echo.ErrNotFound
	}
	return id.String(), nil
}

// directoryError maps repository errors onto HTTP errors.
func directoryError(err error) error {
	switch {
	case errors.Is(err, directory.ErrNotFound):
		return echo.ErrNotFound
	case errors.Is(err, directory.ErrInvalidReference):
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown city or price range")
	default:
		return err
	}
}
