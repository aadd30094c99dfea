package token

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hirable/webgate/internal/models"
	pkgerrors "github.com/hirable/webgate/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, email string, role models.Role, userID string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"email":  email,
		"role":   string(role),
		"userId": userID,
		"iat":    time.Now().Add(-time.Minute).Unix(),
	}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestDecoder_Decode(t *testing.T) {
	decoder := NewDecoder()

	t.Run("valid token", func(t *testing.T) {
		raw := signedToken(t, "ana@example.com", models.RoleCandidate, "user-1", time.Now().Add(time.Hour))

		payload := decoder.Decode(raw)
		require.NotNil(t, payload)
		assert.Equal(t, "ana@example.com", payload.Email)
		assert.Equal(t, models.RoleCandidate, payload.Role)
		assert.Equal(t, "user-1", payload.UserID)
		assert.NotZero(t, payload.ExpiresAt)
	})

	t.Run("token without exp never expires", func(t *testing.T) {
		raw := signedToken(t, "ana@example.com", models.RoleCandidate, "user-1", time.Time{})

		payload := decoder.Decode(raw)
		require.NotNil(t, payload)
		assert.Zero(t, payload.ExpiresAt)
	})

	t.Run("expired token is discarded", func(t *testing.T) {
		raw := signedToken(t, "ana@example.com", models.RoleCandidate, "user-1", time.Now().Add(-10*time.Second))

		assert.Nil(t, decoder.Decode(raw))
	})

	t.Run("expiry uses the decoder clock", func(t *testing.T) {
		exp := time.Now().Add(time.Hour)
		raw := signedToken(t, "ana@example.com", models.RoleCandidate, "user-1", exp)

		future := NewDecoderAt(func() time.Time { return exp.Add(time.Second) })
		assert.Nil(t, future.Decode(raw))

		past := NewDecoderAt(func() time.Time { return exp.Add(-time.Second) })
		assert.NotNil(t, past.Decode(raw))
	})

	t.Run("wrong segment count", func(t *testing.T) {
		assert.Nil(t, decoder.Decode("justone"))
		assert.Nil(t, decoder.Decode("two.segments"))
		assert.Nil(t, decoder.Decode("a.b.c.d"))
	})

	t.Run("invalid base64", func(t *testing.T) {
		assert.Nil(t, decoder.Decode("!!!.@@@.###"))
	})

	t.Run("invalid JSON payload", func(t *testing.T) {
		header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
		payload := base64.RawURLEncoding.EncodeToString([]byte(`{not json`))
		assert.Nil(t, decoder.Decode(header+"."+payload+".sig"))
	})

	t.Run("empty string", func(t *testing.T) {
		assert.Nil(t, decoder.Decode(""))
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("empty store reports no token", func(t *testing.T) {
		_, err := store.Get(ctx)
		assert.ErrorIs(t, err, pkgerrors.ErrNoToken)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "tok-1"))
		got, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tok-1", got)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "tok-2"))
		got, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tok-2", got)
	})

	t.Run("clear removes the token", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		_, err := store.Get(ctx)
		assert.ErrorIs(t, err, pkgerrors.ErrNoToken)
	})
}

func TestUnavailableStore(t *testing.T) {
	ctx := context.Background()
	store := NewUnavailableStore()

	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, pkgerrors.ErrStorageUnavailable)
	assert.ErrorIs(t, store.Set(ctx, "tok"), pkgerrors.ErrStorageUnavailable)
	assert.ErrorIs(t, store.Clear(ctx), pkgerrors.ErrStorageUnavailable)
}

func TestDecoded(t *testing.T) {
	ctx := context.Background()
	decoder := NewDecoder()

	t.Run("valid stored token", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Set(ctx, signedToken(t, "ana@example.com", models.RoleCandidate, "user-1", time.Now().Add(time.Hour))))

		payload, err := Decoded(ctx, store, decoder)
		require.NoError(t, err)
		require.NotNil(t, payload)
		assert.Equal(t, models.RoleCandidate, payload.Role)
	})

	t.Run("no token yields nil payload and no error", func(t *testing.T) {
		payload, err := Decoded(ctx, NewMemoryStore(), decoder)
		require.NoError(t, err)
		assert.Nil(t, payload)
	})

	t.Run("expired stored token yields nil payload", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Set(ctx, signedToken(t, "ana@example.com", models.RoleCandidate, "user-1", time.Now().Add(-time.Minute))))

		payload, err := Decoded(ctx, store, decoder)
		require.NoError(t, err)
		assert.Nil(t, payload)
	})

	t.Run("unavailable storage surfaces the error", func(t *testing.T) {
		_, err := Decoded(ctx, NewUnavailableStore(), decoder)
		assert.ErrorIs(t, err, pkgerrors.ErrStorageUnavailable)
	})
}

func TestContextStore(t *testing.T) {
	store := NewContextStore()

	t.Run("reads the request token", func(t *testing.T) {
		ctx := ContextWithToken(context.Background(), "tok-9")
		got, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tok-9", got)
	})

	t.Run("no token in context", func(t *testing.T) {
		_, err := store.Get(context.Background())
		assert.ErrorIs(t, err, pkgerrors.ErrNoToken)
	})

	t.Run("read only", func(t *testing.T) {
		assert.ErrorIs(t, store.Set(context.Background(), "tok"), pkgerrors.ErrStorageUnavailable)
		assert.ErrorIs(t, store.Clear(context.Background()), pkgerrors.ErrStorageUnavailable)
	})
}
