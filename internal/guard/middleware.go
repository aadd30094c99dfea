package guard

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hirable/webgate/internal/audit"
	"github.com/hirable/webgate/internal/authz"
	"github.com/hirable/webgate/internal/infrastructure/observability"
	"github.com/hirable/webgate/internal/models"
	"github.com/hirable/webgate/internal/storage/token"
)

type userContextKey struct{}

// UserFromContext returns the session user the middleware attached, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*models.User)
	return user, ok
}

// FlashCookie carries the denial notification across the redirect.
const FlashCookie = "hirable_flash"

// Middleware is the gateway-side rendering of the role guard: it decodes
// the request credential, consults the permission table for the request
// path and either forwards with the user in context or answers with one
// denial notification and a redirect to the safe default.
func Middleware(table *authz.Table, decoder *token.Decoder, auditor audit.Publisher) func(http.Handler) http.Handler {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			var user *models.User
			if raw, ok := requestToken(r); ok {
				ctx = token.ContextWithToken(ctx, raw)
				if payload := decoder.Decode(raw); payload != nil {
					user = payload.User()
				}
			}

			var role models.Role
			if user != nil {
				role = user.Role
			}

			// Unrestricted routes stay reachable without a session; only
			// routes with an explicit role set require one.
			allowed := len(table.AllowedRoles(r.URL.Path)) == 0 || table.IsAllowed(r.URL.Path, role)
			if allowed {
				if user != nil {
					ctx = context.WithValue(ctx, userContextKey{}, user)
				}
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			target := authz.LoginRoute
			if user != nil {
				if redirect, err := table.DefaultRedirect(user.Role); err == nil {
					target = redirect
				}
			}

			slog.Info("request denied", "path", r.URL.Path, "role", role, "redirect", target)
			observability.AccessDenials.WithLabelValues(r.URL.Path).Inc()
			auditor.Publish(r.Context(), audit.Event{
				EventType: audit.EventAccessDenied,
				UserID:    userID(user),
				Role:      role,
				Path:      r.URL.Path,
			})

			http.SetCookie(w, &http.Cookie{
				Name:     FlashCookie,
				Value:    "access-denied",
				Path:     "/",
				HttpOnly: true,
			})
			http.Redirect(w, r, target, http.StatusSeeOther)
		})
	}
}

// requestToken extracts the bearer credential from the Authorization
// header, falling back to the session cookie set at login.
func requestToken(r *http.Request) (string, bool) {
	const bearer = "Bearer "
	if value := r.Header.Get("Authorization"); strings.HasPrefix(value, bearer) {
		if tok := value[len(bearer):]; tok != "" {
			return tok, true
		}
	}
	if cookie, err := r.Cookie(token.StorageKey); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	return "", false
}

func userID(user *models.User) string {
	if user == nil {
		return ""
	}
	return user.ID
}
