package e2etesting

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type TokenPair struct {
	AccessToken      string    `json:"accessToken"`
	RefreshToken     string    `json:"refreshToken"`
	ExpiresIn        int       `json:"expiresIn"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

type TestUser struct {
	Email    string
	Password string
	Roles    []string
}

// AuthHelper drives the /api/auth endpoints of a running server.
type AuthHelper struct {
	HTTPClient *HTTPClient
}

func NewAuthHelper(httpClient *HTTPClient) *AuthHelper {
	return &AuthHelper{HTTPClient: httpClient}
}

func (h *AuthHelper) Register(user *TestUser) (*Response, error) {
	return h.HTTPClient.Post("/api/auth/register", map[string]any{
		"username": user.Email,
		"password": user.Password,
		"roles":    user.Roles,
	})
}

func (h *AuthHelper) Login(email, password string) (*Response, error) {
	return h.HTTPClient.Post("/api/auth/login", map[string]string{
		"username": email,
		"password": password,
	})
}

func (h *AuthHelper) Refresh(refreshToken string) (*Response, error) {
	return h.HTTPClient.Post("/api/auth/refresh", map[string]string{"refreshToken": refreshToken})
}

func (h *AuthHelper) Revoke(refreshToken string) (*Response, error) {
	return h.HTTPClient.Post("/api/auth/revoke", map[string]string{"refreshToken": refreshToken})
}

// RegisterAndLogin creates the user and returns its first token pair.
func (h *AuthHelper) RegisterAndLogin(t *testing.T, user *TestUser) *TokenPair {
	t.Helper()

	resp, err := h.Register(user)
	require.NoError(t, err)
	resp.AssertStatus(t, http.StatusOK)

	return h.MustLogin(t, user.Email, user.Password)
}

func (h *AuthHelper) MustLogin(t *testing.T, email, password string) *TokenPair {
	t.Helper()

	resp, err := h.Login(email, password)
	require.NoError(t, err)
	resp.AssertStatus(t, http.StatusOK)

	var pair TokenPair
	require.NoError(t, resp.GetJSON(&pair))
	require.NotEmpty(t, pair.AccessToken, fmt.Sprintf("login for %s returned no access token", email))
	return &pair
}

// Client returns an HTTP client authenticated with the pair's access token.
func (h *AuthHelper) Client(pair *TokenPair) *HTTPClient {
	return h.HTTPClient.WithBearer(pair.AccessToken)
}
