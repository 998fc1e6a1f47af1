package handlers

import (
	"errors"
	"net/http"

	"github.com/foodiehub/foodiehub/services/identity"
	"github.com/foodiehub/foodiehub/services/logging"
	"github.com/foodiehub/foodiehub/services/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type registerRequest struct {
	Username string   `json:"username" validate:"required,email"`
	Password string   `json:"password" validate:"required"`
	Roles    []string `json:"roles" validate:"required,min=1,dive,oneof=Reviewer RestaurantOwner"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthHandler struct {
	sessions *session.Service
	users    *identity.Service
	logger   *logging.Service
}

func NewAuthHandler(sessions *session.Service, users *identity.Service, logger *logging.Service) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		users:    users,
		logger:   logger.Named("auth"),
	}
}

func (h *AuthHandler) Routes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/refresh", h.Refresh)
	g.POST("/revoke", h.Revoke)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.users.ValidatePassword(req.Password); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.users.Register(c.Request().Context(), req.Username, req.Password, req.Roles)
	switch {
	case errors.Is(err, identity.ErrUserExists), errors.Is(err, identity.ErrUnknownRole):
		return echo.NewHTTPError(http.StatusBadRequest, "Something went wrong")
	case err != nil:
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "User was registered! Please login."})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	pair, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
		}
		return err
	}
	return c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	pair, err := h.sessions.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidOrExpiredRefreshToken) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired refresh token")
		}
		return err
	}
	return c.JSON(http.StatusOK, pair)
}

// Revoke ends a session. Unknown and already revoked tokens succeed too.
func (h *AuthHandler) Revoke(c echo.Context) error {
	var req refreshRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.sessions.Revoke(c.Request().Context(), req.RefreshToken); err != nil {
		h.logger.Error("failed to revoke refresh token", zap.Error(err))
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
