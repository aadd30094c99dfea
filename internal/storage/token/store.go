package token

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hirable/webgate/internal/models"
	pkgerrors "github.com/hirable/webgate/pkg/errors"
)

// StorageKey is the slot name under which the bearer credential is kept.
const StorageKey = "hirable_access_token"

// Store holds a single bearer credential. A store that has no backing
// medium reports ErrStorageUnavailable explicitly so callers can
// distinguish "no storage" from "no token" (ErrNoToken).
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Decoder extracts claims from a credential without verifying its
// signature; the gateway trusts the backend to have signed it and only
// needs the claims. The clock is injectable for expiry tests.
type Decoder struct {
	now func() time.Time
}

func NewDecoder() *Decoder {
	return &Decoder{now: time.Now}
}

// NewDecoderAt builds a decoder with a fixed clock.
func NewDecoderAt(now func() time.Time) *Decoder {
	return &Decoder{now: now}
}

type sessionClaims struct {
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	UserID string      `json:"userId"`
	jwt.RegisteredClaims
}

// Decode parses the three dot-separated base64url segments of the
// credential. It returns nil on malformed structure, malformed JSON and on
// an exp claim in the past. It never panics and never returns an error;
// a bad token is simply not a token.
func (d *Decoder) Decode(tokenString string) *models.TokenPayload {
	claims := &sessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		slog.Debug("failed to decode token", "error", err)
		return nil
	}

	payload := &models.TokenPayload{
		Email:  claims.Email,
		Role:   claims.Role,
		UserID: claims.UserID,
	}
	if claims.IssuedAt != nil {
		payload.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		payload.ExpiresAt = claims.ExpiresAt.Unix()
	}

	if payload.Expired(d.now()) {
		slog.Debug("discarding expired token", "user_id", payload.UserID)
		return nil
	}
	return payload
}

// Decoded composes Get and Decode. A missing or invalid token yields
// (nil, nil); only storage failures surface as errors.
func Decoded(ctx context.Context, s Store, d *Decoder) (*models.TokenPayload, error) {
	raw, err := s.Get(ctx)
	if errors.Is(err, pkgerrors.ErrNoToken) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.Decode(raw), nil
}

// MemoryStore keeps the credential for the lifetime of one process, the
// equivalent of a single browsing session.
type MemoryStore struct {
	mu      sync.RWMutex
	token   string
	present bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return "", pkgerrors.ErrNoToken
	}
	return s.token, nil
}

func (s *MemoryStore) Set(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.present = true
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.present = false
	return nil
}

// UnavailableStore models an environment with no storage medium at all.
// Every operation reports ErrStorageUnavailable.
type UnavailableStore struct{}

func NewUnavailableStore() UnavailableStore { return UnavailableStore{} }

func (UnavailableStore) Get(ctx context.Context) (string, error) {
	return "", pkgerrors.ErrStorageUnavailable
}

func (UnavailableStore) Set(ctx context.Context, token string) error {
	return pkgerrors.ErrStorageUnavailable
}

func (UnavailableStore) Clear(ctx context.Context) error {
	return pkgerrors.ErrStorageUnavailable
}
