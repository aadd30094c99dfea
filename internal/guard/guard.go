package guard

import (
	"log/slog"
	"sync"
	"time"

	"github.com/hirable/webgate/internal/authz"
	"github.com/hirable/webgate/internal/models"
	"github.com/hirable/webgate/internal/session"
)

// Decision is what a guarded screen should do right now.
type Decision int

const (
	// DecisionLoading: the session is still initializing; show a
	// placeholder, no redirect, no content.
	DecisionLoading Decision = iota
	// DecisionRender: the current user may view the content.
	DecisionRender
	// DecisionDeny: render nothing; a notification has been shown and a
	// navigation is scheduled.
	DecisionDeny
)

// DeniedMessage and DeniedDescription are the user-facing denial strings.
const (
	DeniedMessage     = "Você não tem permissão para acessar esta página"
	DeniedDescription = "Você será redirecionado em instantes."
)

// DefaultRedirectDelay is how long the denial notification stays on screen
// before navigation.
const DefaultRedirectDelay = 500 * time.Millisecond

// Notifier presents the denial notification to the user.
type Notifier interface {
	NotifyDenied(message, description string)
}

// Navigator performs the scheduled navigation.
type Navigator interface {
	Navigate(path string)
}

// Config describes one guarded screen.
type Config struct {
	AllowedRoles []models.Role
	// RedirectTo overrides the role's default redirect on denial.
	RedirectTo string
	// Delay before the scheduled navigation fires; DefaultRedirectDelay
	// when zero.
	Delay time.Duration
}

// Guard gates one screen. Evaluate is called on every render; the denial
// notification and the scheduled navigation fire at most once per
// unauthorized episode, and the pending navigation is a cancellable handle
// rather than a fire-and-forget timer.
type Guard struct {
	session   *session.Manager
	table     *authz.Table
	notifier  Notifier
	navigator Navigator
	cfg       Config

	mu     sync.Mutex
	denied bool
	timer  *time.Timer
}

func New(sess *session.Manager, table *authz.Table, notifier Notifier, navigator Navigator, cfg Config) *Guard {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultRedirectDelay
	}
	return &Guard{
		session:   sess,
		table:     table,
		notifier:  notifier,
		navigator: navigator,
		cfg:       cfg,
	}
}

// Evaluate decides the current render state. Re-evaluating an unchanged
// unauthorized state is a no-op beyond returning DecisionDeny; regaining
// authorization cancels any pending navigation and resets the episode.
func (g *Guard) Evaluate() Decision {
	if g.session.IsLoading() {
		return DecisionLoading
	}

	user := g.session.CurrentUser()
	authorized := user != nil && roleAllowed(g.cfg.AllowedRoles, user.Role)

	g.mu.Lock()
	defer g.mu.Unlock()

	if authorized {
		g.cancelPendingLocked()
		g.denied = false
		return DecisionRender
	}

	if g.denied {
		return DecisionDeny
	}
	g.denied = true

	g.notifier.NotifyDenied(DeniedMessage, DeniedDescription)

	target := g.redirectTarget(user)
	slog.Info("access denied, scheduling redirect", "target", target)
	g.timer = time.AfterFunc(g.cfg.Delay, func() {
		g.navigator.Navigate(target)
	})
	return DecisionDeny
}

// Release cancels any pending navigation; call it when the guarded screen
// goes away before the delay elapses.
func (g *Guard) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelPendingLocked()
}

func (g *Guard) cancelPendingLocked() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

func (g *Guard) redirectTarget(user *models.User) string {
	if g.cfg.RedirectTo != "" {
		return g.cfg.RedirectTo
	}
	if user != nil {
		if target, err := g.table.DefaultRedirect(user.Role); err == nil {
			return target
		}
	}
	return authz.LoginRoute
}

func roleAllowed(allowed []models.Role, role models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
