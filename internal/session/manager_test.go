package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hirable/webgate/internal/models"
	"github.com/hirable/webgate/internal/storage/token"
	pkgerrors "github.com/hirable/webgate/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	loginFn    func(ctx context.Context, email, password string) (*models.LoginResponse, error)
	registered int
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthService) RegisterCandidate(ctx context.Context, data models.CandidateSignup) (*models.RegisterResponse, error) {
	f.registered++
	return &models.RegisterResponse{
		User: models.RegisteredUser{ID: "user-new", Email: data.Email, Role: string(models.RoleCandidate)},
	}, nil
}

func (f *fakeAuthService) RegisterEmployer(ctx context.Context, data models.EmployerSignup) (*models.RegisterResponse, error) {
	f.registered++
	return &models.RegisterResponse{
		User: models.RegisteredUser{ID: "user-new", Email: data.Email, Role: string(models.RoleEmployer)},
	}, nil
}

func testToken(t *testing.T, role models.Role, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"email":  "ana@example.com",
		"role":   string(role),
		"userId": "user-1",
	}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func loginWith(resp *models.LoginResponse, err error) *fakeAuthService {
	return &fakeAuthService{
		loginFn: func(ctx context.Context, email, password string) (*models.LoginResponse, error) {
			return resp, err
		},
	}
}

func TestManager_Initialize(t *testing.T) {
	ctx := context.Background()
	decoder := token.NewDecoder()

	t.Run("restores a valid stored token", func(t *testing.T) {
		store := token.NewMemoryStore()
		require.NoError(t, store.Set(ctx, testToken(t, models.RoleCandidate, time.Now().Add(time.Hour))))
		m := NewManager(store, decoder, loginWith(nil, nil), nil)

		assert.True(t, m.IsLoading())
		assert.Equal(t, StateInitializing, m.State())

		require.NoError(t, m.Initialize(ctx))
		assert.False(t, m.IsLoading())
		assert.Equal(t, StateAuthenticated, m.State())

		user := m.CurrentUser()
		require.NotNil(t, user)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, models.RoleCandidate, user.Role)
	})

	t.Run("empty store settles unauthenticated", func(t *testing.T) {
		m := NewManager(token.NewMemoryStore(), decoder, loginWith(nil, nil), nil)
		require.NoError(t, m.Initialize(ctx))
		assert.Equal(t, StateUnauthenticated, m.State())
		assert.Nil(t, m.CurrentUser())
	})

	t.Run("expired stored token settles unauthenticated", func(t *testing.T) {
		store := token.NewMemoryStore()
		require.NoError(t, store.Set(ctx, testToken(t, models.RoleCandidate, time.Now().Add(-time.Minute))))
		m := NewManager(store, decoder, loginWith(nil, nil), nil)

		require.NoError(t, m.Initialize(ctx))
		assert.Equal(t, StateUnauthenticated, m.State())
	})

	t.Run("storage failure still settles the state", func(t *testing.T) {
		m := NewManager(token.NewUnavailableStore(), decoder, loginWith(nil, nil), nil)

		err := m.Initialize(ctx)
		assert.ErrorIs(t, err, pkgerrors.ErrStorageUnavailable)
		assert.False(t, m.IsLoading())
		assert.Equal(t, StateUnauthenticated, m.State())
	})
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()
	decoder := token.NewDecoder()

	t.Run("success stores the token and derives the user", func(t *testing.T) {
		raw := testToken(t, models.RoleEmployer, time.Now().Add(time.Hour))
		store := token.NewMemoryStore()
		m := NewManager(store, decoder, loginWith(&models.LoginResponse{AccessToken: raw}, nil), nil)

		require.NoError(t, m.Login(ctx, "ana@example.com", "secret"))
		assert.True(t, m.IsAuthenticated())
		assert.Equal(t, StateAuthenticated, m.State())

		stored, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, raw, stored)

		user := m.CurrentUser()
		require.NotNil(t, user)
		assert.Equal(t, models.RoleEmployer, user.Role)
	})

	t.Run("backend rejection clears state and surfaces the error", func(t *testing.T) {
		store := token.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "stale"))
		apiErr := &pkgerrors.APIError{Status: 404, Message: "Email ou senha inválidos"}
		m := NewManager(store, decoder, loginWith(nil, apiErr), nil)

		err := m.Login(ctx, "ana@example.com", "wrong")
		require.Error(t, err)
		got := pkgerrors.AsAPIError(err)
		require.NotNil(t, got)
		assert.Equal(t, 404, got.Status)

		assert.False(t, m.IsAuthenticated())
		_, err = store.Get(ctx)
		assert.ErrorIs(t, err, pkgerrors.ErrNoToken)
	})

	t.Run("undecodable token clears state", func(t *testing.T) {
		store := token.NewMemoryStore()
		m := NewManager(store, decoder, loginWith(&models.LoginResponse{AccessToken: "not.a.jwt"}, nil), nil)

		err := m.Login(ctx, "ana@example.com", "secret")
		assert.ErrorIs(t, err, pkgerrors.ErrMalformedToken)
		assert.False(t, m.IsAuthenticated())
	})

	t.Run("store failure clears state", func(t *testing.T) {
		raw := testToken(t, models.RoleCandidate, time.Now().Add(time.Hour))
		m := NewManager(token.NewUnavailableStore(), decoder, loginWith(&models.LoginResponse{AccessToken: raw}, nil), nil)

		err := m.Login(ctx, "ana@example.com", "secret")
		assert.ErrorIs(t, err, pkgerrors.ErrStorageUnavailable)
		assert.False(t, m.IsAuthenticated())
	})

	t.Run("failed login settles an initializing session", func(t *testing.T) {
		m := NewManager(token.NewMemoryStore(), decoder, loginWith(nil, &pkgerrors.APIError{Status: 401, Message: "nope"}), nil)

		require.Error(t, m.Login(ctx, "ana@example.com", "wrong"))
		assert.Equal(t, StateUnauthenticated, m.State())
	})
}

func TestManager_Logout(t *testing.T) {
	ctx := context.Background()
	decoder := token.NewDecoder()

	raw := testToken(t, models.RoleCandidate, time.Now().Add(time.Hour))
	store := token.NewMemoryStore()
	m := NewManager(store, decoder, loginWith(&models.LoginResponse{AccessToken: raw}, nil), nil)
	require.NoError(t, m.Login(ctx, "ana@example.com", "secret"))

	m.Logout(ctx)

	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.CurrentUser())
	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, pkgerrors.ErrNoToken)
}

func TestManager_Register(t *testing.T) {
	ctx := context.Background()
	decoder := token.NewDecoder()

	t.Run("candidate registration does not touch the session", func(t *testing.T) {
		auth := loginWith(nil, nil)
		store := token.NewMemoryStore()
		m := NewManager(store, decoder, auth, nil)
		require.NoError(t, m.Initialize(ctx))

		resp, err := m.RegisterCandidate(ctx, models.CandidateSignup{
			FullName: "Ana Souza",
			Email:    "ana@example.com",
			Password: "secret",
		})
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", resp.User.Email)
		assert.Equal(t, 1, auth.registered)

		assert.False(t, m.IsAuthenticated())
		_, err = store.Get(ctx)
		assert.ErrorIs(t, err, pkgerrors.ErrNoToken)
	})

	t.Run("employer registration does not touch the session", func(t *testing.T) {
		auth := loginWith(nil, nil)
		m := NewManager(token.NewMemoryStore(), decoder, auth, nil)
		require.NoError(t, m.Initialize(ctx))

		resp, err := m.RegisterEmployer(ctx, models.EmployerSignup{
			CompanyName: "Acme",
			Email:       "rh@acme.com",
			Password:    "secret",
		})
		require.NoError(t, err)
		assert.Equal(t, "rh@acme.com", resp.User.Email)
		assert.False(t, m.IsAuthenticated())
	})
}

func TestManager_CurrentUserIsACopy(t *testing.T) {
	ctx := context.Background()
	raw := testToken(t, models.RoleCandidate, time.Now().Add(time.Hour))
	m := NewManager(token.NewMemoryStore(), token.NewDecoder(), loginWith(&models.LoginResponse{AccessToken: raw}, nil), nil)
	require.NoError(t, m.Login(ctx, "ana@example.com", "secret"))

	first := m.CurrentUser()
	first.Role = "TAMPERED"

	second := m.CurrentUser()
	assert.Equal(t, models.RoleCandidate, second.Role)
}
