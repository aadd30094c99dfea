package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hirable/webgate/internal/audit"
	"github.com/hirable/webgate/internal/infrastructure/observability"
	"github.com/hirable/webgate/internal/models"
	service "github.com/hirable/webgate/internal/services"
	"github.com/hirable/webgate/internal/storage/token"
	pkgerrors "github.com/hirable/webgate/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

// State is the lifecycle of a session. A manager starts Initializing and
// settles into Authenticated or Unauthenticated after the one-time boot
// check; no authorization decision may be made before it settles.
type State int

const (
	StateInitializing State = iota
	StateAuthenticated
	StateUnauthenticated
)

// Manager is the single source of truth for "who is logged in". It owns
// the derived user view; the underlying credential is owned by the token
// store and nothing else touches the storage medium.
type Manager struct {
	store   token.Store
	decoder *token.Decoder
	auth    service.AuthService
	audit   audit.Publisher

	mu          sync.RWMutex
	initialized bool
	user        *models.User
}

func NewManager(store token.Store, decoder *token.Decoder, auth service.AuthService, auditor audit.Publisher) *Manager {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Manager{
		store:   store,
		decoder: decoder,
		auth:    auth,
		audit:   auditor,
	}
}

// Initialize performs the boot check against the token store. A valid,
// unexpired stored credential restores the session; anything else settles
// into Unauthenticated. A storage failure is reported but still settles
// the state, so the UI never hangs in Initializing.
func (m *Manager) Initialize(ctx context.Context) error {
	payload, err := token.Decoded(ctx, m.store, m.decoder)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.initialized = true
	if err != nil {
		m.user = nil
		slog.Warn("session boot check failed, starting unauthenticated", "error", err)
		return err
	}
	if payload == nil {
		m.user = nil
		return nil
	}
	m.user = payload.User()
	slog.Info("session restored", "user_id", m.user.ID, "role", m.user.Role)
	return nil
}

// Login exchanges credentials for a token, stores it and derives the user
// view. On any failure the stale token and user are cleared before the
// typed error is returned to the caller.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	tracer := otel.Tracer("webgate")
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	resp, err := m.auth.Login(ctx, email, password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login failed")
		m.reset(ctx)
		observability.SessionLogins.WithLabelValues("failure").Inc()
		m.audit.Publish(ctx, audit.Event{EventType: audit.EventLoginFailed, Email: email})
		return err
	}

	payload := m.decoder.Decode(resp.AccessToken)
	if payload == nil {
		span.SetStatus(codes.Error, "undecodable access token")
		slog.Error("backend returned an undecodable access token", "email", email)
		m.reset(ctx)
		return pkgerrors.ErrMalformedToken
	}

	if err := m.store.Set(ctx, resp.AccessToken); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "token store failed")
		m.reset(ctx)
		return err
	}

	m.mu.Lock()
	m.initialized = true
	m.user = payload.User()
	m.mu.Unlock()

	slog.Info("user logged in", "user_id", payload.UserID, "role", payload.Role)
	observability.SessionLogins.WithLabelValues("success").Inc()
	m.audit.Publish(ctx, audit.Event{
		EventType: audit.EventLogin,
		UserID:    payload.UserID,
		Email:     payload.Email,
		Role:      payload.Role,
	})
	return nil
}

// Logout is purely local token invalidation; the backend is not called.
// Store and user are cleared within the same call.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.RLock()
	user := m.user
	m.mu.RUnlock()

	m.reset(ctx)
	if user != nil {
		slog.Info("user logged out", "user_id", user.ID)
		m.audit.Publish(ctx, audit.Event{
			EventType: audit.EventLogout,
			UserID:    user.ID,
			Email:     user.Email,
			Role:      user.Role,
		})
	}
}

// RegisterCandidate creates a candidate account. Registration does not log
// the user in; session state is untouched and errors pass through.
func (m *Manager) RegisterCandidate(ctx context.Context, data models.CandidateSignup) (*models.RegisterResponse, error) {
	resp, err := m.auth.RegisterCandidate(ctx, data)
	if err != nil {
		return nil, err
	}
	m.audit.Publish(ctx, audit.Event{
		EventType: audit.EventRegistered,
		UserID:    resp.User.ID,
		Email:     resp.User.Email,
		Role:      models.RoleCandidate,
	})
	return resp, nil
}

// RegisterEmployer mirrors RegisterCandidate for the employer flow.
func (m *Manager) RegisterEmployer(ctx context.Context, data models.EmployerSignup) (*models.RegisterResponse, error) {
	resp, err := m.auth.RegisterEmployer(ctx, data)
	if err != nil {
		return nil, err
	}
	m.audit.Publish(ctx, audit.Event{
		EventType: audit.EventRegistered,
		UserID:    resp.User.ID,
		Email:     resp.User.Email,
		Role:      models.RoleEmployer,
	})
	return resp, nil
}

func (m *Manager) reset(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		slog.Warn("failed to clear token store", "error", err)
	}
	m.mu.Lock()
	// An explicit auth attempt settles the session even when it fails.
	m.initialized = true
	m.user = nil
	m.mu.Unlock()
}

// CurrentUser returns a copy of the session user, or nil.
func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// IsLoading reports whether the boot check is still pending.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.initialized
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	switch {
	case !m.initialized:
		return StateInitializing
	case m.user != nil:
		return StateAuthenticated
	default:
		return StateUnauthenticated
	}
}
