package accesstoken

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/testutils"
	"github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := NewCodec(testutils.GetTestConfig().Token, nil)
	require.NoError(t, err)
	return codec
}

func TestNewCodec(t *testing.T) {
	t.Run("valid key", func(t *testing.T) {
		codec := newTestCodec(t)
		assert.Equal(t, 15*time.Minute, codec.Lifetime())
	})

	t.Run("short key", func(t *testing.T) {
		cfg := testutils.GetTestConfig().Token
		cfg.Key = "too-short"

		codec, err := NewCodec(cfg, nil)

		assert.Nil(t, codec)
		assert.ErrorIs(t, err, ErrInvalidKey)
	})
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)
	now := time.Now()

	t.Run("email and roles", func(t *testing.T) {
		claims := codec.Issue("alice@example.com", []string{"Reviewer"}, now)

		token, err := codec.Encode(claims)
		require.NoError(t, err)
		assert.Len(t, strings.Split(token, "."), 5)

		decoded, err := codec.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", decoded.Email)
		assert.Equal(t, []string{"Reviewer"}, decoded.Roles)
		assert.Equal(t, "https://localhost:7081/", decoded.Issuer)
		assert.Equal(t, jwt.ClaimStrings{"https://localhost:7081/"}, decoded.Audience)
		assert.Equal(t, now.Add(15*time.Minute).Unix(), decoded.ExpiresAt.Unix())
	})

	t.Run("no roles", func(t *testing.T) {
		claims := codec.Issue("bob@example.com", nil, now)

		token, err := codec.Encode(claims)
		require.NoError(t, err)

		decoded, err := codec.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", decoded.Email)
		assert.Empty(t, decoded.Roles)
	})

	t.Run("multiple roles", func(t *testing.T) {
		claims := codec.Issue("carol@example.com", []string{"Reviewer", "RestaurantOwner"}, now)

		token, err := codec.Encode(claims)
		require.NoError(t, err)

		decoded, err := codec.Decode(token)
		require.NoError(t, err)
		assert.True(t, decoded.HasRole("Reviewer"))
		assert.True(t, decoded.HasRole("RestaurantOwner"))
		assert.False(t, decoded.HasRole("Admin"))
	})

	t.Run("empty roles and sub-second times", func(t *testing.T) {
		issuedAt := now.Truncate(time.Second).Add(750 * time.Millisecond)
		claims := codec.Issue("dave@example.com", []string{}, issuedAt)

		token, err := codec.Encode(claims)
		require.NoError(t, err)

		decoded, err := codec.Decode(token)
		require.NoError(t, err)
		assert.Nil(t, decoded.Roles)
		assert.True(t, decoded.IssuedAt.Equal(issuedAt.Truncate(time.Second)))
		assert.True(t, decoded.ExpiresAt.Equal(issuedAt.Add(15*time.Minute).Truncate(time.Second)))
		assert.Equal(t, claims.Email, decoded.Email)
		assert.Equal(t, claims.Audience, decoded.Audience)
	})
}

func TestCodec_EncryptionIsRandomized(t *testing.T) {
	codec := newTestCodec(t)
	claims := codec.Issue("alice@example.com", []string{"Reviewer"}, time.Now())

	first, err := codec.Encode(claims)
	require.NoError(t, err)
	second, err := codec.Encode(claims)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCodec_PayloadIsNotReadable(t *testing.T) {
	codec := newTestCodec(t)
	claims := codec.Issue("alice@example.com", []string{"Reviewer"}, time.Now())

	token, err := codec.Encode(claims)
	require.NoError(t, err)

	assert.NotContains(t, token, "alice")
	_, err = jwt.Parse(token, func(*jwt.Token) (any, error) { return []byte(testutils.TestTokenKey), nil })
	assert.Error(t, err)
}

func TestCodec_Decode_Rejections(t *testing.T) {
	codec := newTestCodec(t)
	now := time.Now()

	valid, err := codec.Encode(codec.Issue("alice@example.com", []string{"Reviewer"}, now))
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := codec.Decode("not-a-token")
		testutils.AssertErrorType(t, ErrInvalidToken, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := codec.Decode("")
		testutils.AssertErrorType(t, ErrInvalidToken, err)
	})

	t.Run("wrong key", func(t *testing.T) {
		cfg := testutils.GetTestConfig().Token
		cfg.Key = "ffffffffffffffffffffffffffffffff"
		other, err := NewCodec(cfg, nil)
		require.NoError(t, err)

		_, err = other.Decode(valid)
		testutils.AssertErrorType(t, ErrInvalidToken, err)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		parts := strings.Split(valid, ".")
		ciphertext := []byte(parts[3])
		if ciphertext[0] == 'A' {
			ciphertext[0] = 'B'
		} else {
			ciphertext[0] = 'A'
		}
		parts[3] = string(ciphertext)

		_, err := codec.Decode(strings.Join(parts, "."))
		testutils.AssertErrorType(t, ErrInvalidToken, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := codec.Encode(codec.Issue("alice@example.com", nil, now.Add(-time.Hour)))
		require.NoError(t, err)

		_, err = codec.Decode(token)
		testutils.AssertErrorType(t, ErrInvalidToken, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := codec.Issue("alice@example.com", nil, now)
		claims.Issuer = "https://evil.example.com/"
		token, err := codec.Encode(claims)
		require.NoError(t, err)

		_, err = codec.Decode(token)
		testutils.AssertErrorType(t, ErrInvalidToken, err)
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := codec.Issue("alice@example.com", nil, now)
		claims.Audience = jwt.ClaimStrings{"someone-else"}
		token, err := codec.Encode(claims)
		require.NoError(t, err)

		_, err = codec.Decode(token)
		testutils.AssertErrorType(t, ErrInvalidToken, err)
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := codec.Issue("alice@example.com", nil, now)
		claims.ExpiresAt = nil
		token, err := codec.Encode(claims)
		require.NoError(t, err)

		_, err = codec.Decode(token)
		testutils.AssertErrorType(t, ErrInvalidToken, err)
	})

	t.Run("missing email", func(t *testing.T) {
		claims := codec.Issue("", []string{"Reviewer"}, now)
		token, err := codec.Encode(claims)
		require.NoError(t, err)

		_, err = codec.Decode(token)
		testutils.AssertErrorType(t, ErrInvalidToken, err)
	})
}

func TestDecode_WrapsCause(t *testing.T) {
	key := []byte(testutils.TestTokenKey)

	_, err := Decode("a.b.c.d.e", key)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
	assert.NotEqual(t, ErrInvalidToken.Error(), err.Error())
}

func TestDecode_RejectsOtherAlgorithms(t *testing.T) {
	key := []byte(testutils.TestTokenKey)
	payload, err := json.Marshal(map[string]any{"email": "alice@example.com"})
	require.NoError(t, err)

	encrypter, err := jose.NewEncrypter(
		jose.A128GCM,
		jose.Recipient{Algorithm: jose.DIRECT, Key: key[:16]},
		nil,
	)
	require.NoError(t, err)
	object, err := encrypter.Encrypt(payload)
	require.NoError(t, err)
	token, err := object.CompactSerialize()
	require.NoError(t, err)

	_, err = Decode(token, key)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEncode_InvalidKey(t *testing.T) {
	_, err := Encode(AccessClaims{Email: "alice@example.com"}, []byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = Decode("a.b.c.d.e", make([]byte, config.TokenKeySize-1))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
