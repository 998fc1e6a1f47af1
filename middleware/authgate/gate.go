package authgate

import (
	"net/http"
	"strings"

	"github.com/foodiehub/foodiehub/services/accesstoken"
	"github.com/foodiehub/foodiehub/services/logging"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	IdentityKey = "_authgate_identity"
	OutcomeKey  = "_authgate_outcome"

	bearerPrefix = "Bearer "
)

type Outcome int

const (
	NoCredential Outcome = iota
	Authenticated
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Authenticated:
		return "authenticated"
	case Rejected:
		return "rejected"
	default:
		return "no_credential"
	}
}

// Identity is the authenticated caller: one email and the roles granted at
// token issuance.
type Identity struct {
	Email string
	Roles []string
}

func (i *Identity) HasRole(role string) bool {
	if i == nil {
		return false
	}
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type Gate struct {
	codec  *accesstoken.Codec
	logger *logging.Service
}

func NewGate(codec *accesstoken.Codec, logger *logging.Service) *Gate {
	return &Gate{codec: codec, logger: logger}
}

// Authenticate classifies a raw Authorization header value. It does no I/O
// beyond decrypting the token.
func (g *Gate) Authenticate(header string) (Outcome, *Identity) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return NoCredential, nil
	}

	claims, err := g.codec.Decode(strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		return Rejected, nil
	}

	return Authenticated, &Identity{
		Email: claims.Email,
		Roles: claims.Roles,
	}
}

// Middleware records the outcome on every request and never rejects by
// itself. Route-level RequireRole decides access.
func (g *Gate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			outcome, identity := g.Authenticate(c.Request().Header.Get(echo.HeaderAuthorization))

			if outcome == Rejected {
				g.logger.Info("bearer token rejected",
					zap.String("path", c.Path()),
					zap.String("remote_ip", c.RealIP()))
			}

			c.Set(OutcomeKey, outcome)
			if identity != nil {
				c.Set(IdentityKey, identity)
			}

			return next(c)
		}
	}
}

// RequireRole allows the request when the caller holds at least one of
// roles. Callers without a usable token get 401, callers missing the role 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := GetIdentity(c)
			if identity == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			for _, role := range roles {
				if identity.HasRole(role) {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
		}
	}
}

func GetIdentity(c echo.Context) *Identity {
	if identity, ok := c.Get(IdentityKey).(*Identity); ok {
		return identity
	}
	return nil
}

func GetOutcome(c echo.Context) Outcome {
	if outcome, ok := c.Get(OutcomeKey).(Outcome); ok {
		return outcome
	}
	return NoCredential
}
