package accesstoken

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the payload carried inside an encrypted access token.
// Email is required; a token without roles grants none. Timestamps travel as
// whole seconds and an empty role list decodes as nil.
type AccessClaims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

func (c AccessClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
