package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/foodiehub/foodiehub/services/accesstoken"
	"github.com/foodiehub/foodiehub/services/refreshtoken"
	"github.com/foodiehub/foodiehub/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCredentials struct {
	mock.Mock
}

func (m *mockCredentials) Verify(ctx context.Context, username, password string) (*Principal, error) {
	args := m.Called(ctx, username, password)
	if p := args.Get(0); p != nil {
		return p.(*Principal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCredentials) Lookup(ctx context.Context, userID string) (*Principal, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.(*Principal), args.Error(1)
	}
	return nil, args.Error(1)
}

type fixture struct {
	service *Service
	codec   *accesstoken.Codec
	store   refreshtoken.Store
	creds   *mockCredentials
	now     time.Time
}

func newFixture(t *testing.T, store refreshtoken.Store) *fixture {
	t.Helper()
	cfg := testutils.GetTestConfig()
	codec, err := accesstoken.NewCodec(cfg.Token, nil)
	require.NoError(t, err)

	f := &fixture{
		codec: codec,
		store: store,
		creds: &mockCredentials{},
		now:   time.Now(),
	}
	f.service = NewService(codec, store, f.creds, cfg.Token.RefreshExpiry, nil, WithClock(func() time.Time { return f.now }))
	return f
}

func alice() *Principal {
	return &Principal{UserID: "user-alice", Email: "alice@example.com", Roles: []string{"Reviewer"}}
}

func TestService_Login(t *testing.T) {
	f := newFixture(t, refreshtoken.NewMemoryStore())
	ctx := context.Background()
	f.creds.On("Verify", ctx, "alice@example.com", "secret").Return(alice(), nil)

	pair, err := f.service.Login(ctx, "alice@example.com", "secret")

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Len(t, pair.RefreshToken, 32)
	assert.Equal(t, 900, pair.ExpiresIn)
	assert.Equal(t, f.now.Add(7*24*time.Hour), pair.RefreshExpiresAt)

	claims, err := f.codec.Decode(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, []string{"Reviewer"}, claims.Roles)

	stored, err := f.store.Find(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-alice", stored.UserID)
	assert.False(t, stored.IsRevoked)
	f.creds.AssertExpectations(t)
}

func TestService_Login_UniformRejection(t *testing.T) {
	f := newFixture(t, refreshtoken.NewMemoryStore())
	ctx := context.Background()
	email := gofakeit.Email()
	f.creds.On("Verify", ctx, email, "wrong").Return(nil, ErrInvalidCredentials)
	f.creds.On("Verify", ctx, "nobody@example.com", "secret").Return(nil, fmt.Errorf("user lookup: %w", ErrInvalidCredentials))

	_, wrongPassword := f.service.Login(ctx, email, "wrong")
	_, unknownUser := f.service.Login(ctx, "nobody@example.com", "secret")

	testutils.AssertErrorType(t, ErrInvalidCredentials, wrongPassword)
	testutils.AssertErrorType(t, ErrInvalidCredentials, unknownUser)
	assert.Equal(t, wrongPassword, unknownUser)
}

func TestService_Login_StorageFailure(t *testing.T) {
	f := newFixture(t, refreshtoken.NewMemoryStore())
	ctx := context.Background()
	boom := errors.New("connection refused")
	f.creds.On("Verify", ctx, "alice@example.com", "secret").Return(nil, boom)

	_, err := f.service.Login(ctx, "alice@example.com", "secret")

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Refresh_SingleUse(t *testing.T) {
	for name, store := range map[string]func(t *testing.T) refreshtoken.Store{
		"memory": func(t *testing.T) refreshtoken.Store { return refreshtoken.NewMemoryStore() },
		"gorm": func(t *testing.T) refreshtoken.Store {
			return refreshtoken.NewGormStore(testutils.SetupTestDB(t, &refreshtoken.RefreshToken{}), nil)
		},
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, store(t))
			ctx := context.Background()
			f.creds.On("Verify", ctx, "alice@example.com", "secret").Return(alice(), nil)
			f.creds.On("Lookup", ctx, "user-alice").Return(alice(), nil)

			first, err := f.service.Login(ctx, "alice@example.com", "secret")
			require.NoError(t, err)

			second, err := f.service.Refresh(ctx, first.RefreshToken)
			require.NoError(t, err)
			assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
			assert.NotEqual(t, first.AccessToken, second.AccessToken)

			_, err = f.service.Refresh(ctx, first.RefreshToken)
			testutils.AssertErrorType(t, ErrInvalidOrExpiredRefreshToken, err)

			old, err := f.store.Find(ctx, first.RefreshToken)
			require.NoError(t, err)
			assert.True(t, old.IsRevoked)

			_, err = f.service.Refresh(ctx, second.RefreshToken)
			assert.NoError(t, err)
		})
	}
}

func TestService_Refresh_PicksUpRoleChanges(t *testing.T) {
	f := newFixture(t, refreshtoken.NewMemoryStore())
	ctx := context.Background()
	promoted := alice()
	promoted.Roles = []string{"Reviewer", "RestaurantOwner"}
	f.creds.On("Verify", ctx, "alice@example.com", "secret").Return(alice(), nil)
	f.creds.On("Lookup", ctx, "user-alice").Return(promoted, nil)

	pair, err := f.service.Login(ctx, "alice@example.com", "secret")
	require.NoError(t, err)

	refreshed, err := f.service.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := f.codec.Decode(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, []string{"Reviewer", "RestaurantOwner"}, claims.Roles)
}

func TestService_Refresh_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown token", func(t *testing.T) {
		f := newFixture(t, refreshtoken.NewMemoryStore())

		_, err := f.service.Refresh(ctx, "0123456789abcdef0123456789abcdef")

		testutils.AssertErrorType(t, ErrInvalidOrExpiredRefreshToken, err)
	})

	t.Run("expired but not revoked", func(t *testing.T) {
		f := newFixture(t, refreshtoken.NewMemoryStore())
		record := &refreshtoken.RefreshToken{Token: "expired", UserID: "user-alice", ExpiresAt: f.now.Add(-time.Second)}
		require.NoError(t, f.store.Insert(ctx, record))

		_, err := f.service.Refresh(ctx, "expired")

		testutils.AssertErrorType(t, ErrInvalidOrExpiredRefreshToken, err)
		f.creds.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	})

	t.Run("expires after clock advances", func(t *testing.T) {
		f := newFixture(t, refreshtoken.NewMemoryStore())
		f.creds.On("Verify", ctx, "alice@example.com", "secret").Return(alice(), nil)

		pair, err := f.service.Login(ctx, "alice@example.com", "secret")
		require.NoError(t, err)

		f.now = f.now.Add(7*24*time.Hour + time.Minute)
		_, err = f.service.Refresh(ctx, pair.RefreshToken)

		testutils.AssertErrorType(t, ErrInvalidOrExpiredRefreshToken, err)
	})

	t.Run("revoked", func(t *testing.T) {
		f := newFixture(t, refreshtoken.NewMemoryStore())
		record := &refreshtoken.RefreshToken{Token: "revoked", UserID: "user-alice", ExpiresAt: f.now.Add(time.Hour), IsRevoked: true}
		require.NoError(t, f.store.Insert(ctx, record))

		_, err := f.service.Refresh(ctx, "revoked")

		testutils.AssertErrorType(t, ErrInvalidOrExpiredRefreshToken, err)
	})

	t.Run("owner deleted", func(t *testing.T) {
		f := newFixture(t, refreshtoken.NewMemoryStore())
		record := &refreshtoken.RefreshToken{Token: "orphan", UserID: "gone", ExpiresAt: f.now.Add(time.Hour)}
		require.NoError(t, f.store.Insert(ctx, record))
		f.creds.On("Lookup", ctx, "gone").Return(nil, ErrUnknownPrincipal)

		_, err := f.service.Refresh(ctx, "orphan")

		testutils.AssertErrorType(t, ErrInvalidOrExpiredRefreshToken, err)
		stored, err := f.store.Find(ctx, "orphan")
		require.NoError(t, err)
		assert.True(t, stored.IsRevoked)
	})
}

func TestService_Refresh_ConcurrentCallersSingleWinner(t *testing.T) {
	f := newFixture(t, refreshtoken.NewMemoryStore())
	ctx := context.Background()
	f.creds.On("Verify", ctx, "alice@example.com", "secret").Return(alice(), nil)
	f.creds.On("Lookup", ctx, "user-alice").Return(alice(), nil)

	pair, err := f.service.Login(ctx, "alice@example.com", "secret")
	require.NoError(t, err)

	var wins, rejected atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.Refresh(ctx, pair.RefreshToken)
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, ErrInvalidOrExpiredRefreshToken):
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(9), rejected.Load())
}

func TestService_Revoke_Idempotent(t *testing.T) {
	f := newFixture(t, refreshtoken.NewMemoryStore())
	ctx := context.Background()
	f.creds.On("Verify", ctx, "alice@example.com", "secret").Return(alice(), nil)

	pair, err := f.service.Login(ctx, "alice@example.com", "secret")
	require.NoError(t, err)

	first := f.service.Revoke(ctx, pair.RefreshToken)
	second := f.service.Revoke(ctx, pair.RefreshToken)
	unknown := f.service.Revoke(ctx, "never-issued")

	assert.NoError(t, first)
	assert.NoError(t, second)
	assert.NoError(t, unknown)

	_, err = f.service.Refresh(ctx, pair.RefreshToken)
	testutils.AssertErrorType(t, ErrInvalidOrExpiredRefreshToken, err)
}
