package accesstoken

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/services/logging"
	"github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	ErrInvalidToken = errors.New("invalid access token")
	ErrInvalidKey   = fmt.Errorf("access token key must be %d bytes", config.TokenKeySize)
)

var (
	keyAlgorithms      = []jose.KeyAlgorithm{jose.DIRECT}
	contentEncryptions = []jose.ContentEncryption{jose.A256GCM}
)

// Encode serializes claims to JSON and encrypts them as a compact JWE
// (alg "dir", enc "A256GCM") under key.
func Encode(claims AccessClaims, key []byte) (string, error) {
	if len(key) != config.TokenKeySize {
		return "", ErrInvalidKey
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal access claims: %w", err)
	}

	encrypter, err := jose.NewEncrypter(
		jose.A256GCM,
		jose.Recipient{Algorithm: jose.DIRECT, Key: key},
		(&jose.EncrypterOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create encrypter: %w", err)
	}

	object, err := encrypter.Encrypt(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt access claims: %w", err)
	}

	return object.CompactSerialize()
}

// Decode decrypts token under key and parses its claims. Every failure is
// reported as ErrInvalidToken wrapping the underlying cause, so callers can
// log the cause and still match the error with errors.Is.
func Decode(token string, key []byte) (*AccessClaims, error) {
	if len(key) != config.TokenKeySize {
		return nil, invalid(ErrInvalidKey)
	}

	object, err := jose.ParseEncryptedCompact(token, keyAlgorithms, contentEncryptions)
	if err != nil {
		return nil, invalid(err)
	}

	payload, err := object.Decrypt(key)
	if err != nil {
		return nil, invalid(err)
	}

	var claims AccessClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, invalid(err)
	}
	if claims.Email == "" {
		return nil, invalid(errors.New("missing email claim"))
	}

	return &claims, nil
}

func invalid(cause error) error {
	return fmt.Errorf("%w: %w", ErrInvalidToken, cause)
}

// Codec applies the configured key, issuer, audience and lifetime on top of
// Encode and Decode.
type Codec struct {
	key       []byte
	issuer    string
	audience  string
	lifetime  time.Duration
	validator *jwt.Validator
	logger    *logging.Service
}

func NewCodec(cfg config.TokenConfig, logger *logging.Service) (*Codec, error) {
	if len(cfg.Key) != config.TokenKeySize {
		return nil, ErrInvalidKey
	}

	return &Codec{
		key:      []byte(cfg.Key),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		lifetime: cfg.AccessExpiry,
		validator: jwt.NewValidator(
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithAudience(cfg.Audience),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(5*time.Second),
		),
		logger: logger,
	}, nil
}

// Lifetime reports how long issued access tokens stay valid.
func (c *Codec) Lifetime() time.Duration {
	return c.lifetime
}

// Issue builds the claims for a new access token issued at now.
func (c *Codec) Issue(email string, roles []string, now time.Time) AccessClaims {
	return AccessClaims{
		Email: email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
		},
	}
}

func (c *Codec) Encode(claims AccessClaims) (string, error) {
	token, err := Encode(claims, c.key)
	if err != nil {
		c.logger.Error("failed to encode access token", zap.Error(err))
		return "", err
	}
	return token, nil
}

// Decode decrypts token and checks expiry, issuer and audience. The returned
// error is always the bare ErrInvalidToken; the reason is only logged.
func (c *Codec) Decode(token string) (*AccessClaims, error) {
	claims, err := Decode(token, c.key)
	if err != nil {
		c.logger.Debug("access token rejected", zap.Error(err))
		return nil, ErrInvalidToken
	}

	if err := c.validator.Validate(claims); err != nil {
		c.logger.Debug("access token claims rejected", zap.Error(err))
		return nil, ErrInvalidToken
	}

	return claims, nil
}
