package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/butiken/storefront/internal/model"
	"github.com/butiken/storefront/internal/services/identity"
	"github.com/butiken/storefront/internal/session"
)

type contextKey string

const stateContextKey = contextKey("state")

// RememberCookieName is the persistent sign-in cookie
const RememberCookieName = "account_session_id"

// State is the per-request view of the visitor: their session, the
// identity resolved for this request, and any notice the resolution
// produced. Handlers mutate Session in place; the middleware persists it
// after the handler returns. Logout swaps Session for a rotated one.
type State struct {
	Session  *session.Session
	Identity model.Identity
	Notice   string
}

// GetState retrieves the request state from the context. It is always set
// inside the session middleware; calling it elsewhere is a programming
// error.
func GetState(ctx context.Context) *State {
	state, ok := ctx.Value(stateContextKey).(*State)
	if !ok {
		panic("request state missing from context")
	}
	return state
}

// WithSession returns middleware that loads (or creates) the visitor's
// session, resolves their identity from the session or the remember
// cookie, and saves the session back once the handler finishes
func WithSession(manager *session.Manager, resolver *identity.Resolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := manager.Load(r.Context(), w, r)
			if err != nil {
				logger.Error("session load failed",
					slog.String("error", err.Error()))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			rememberToken := ""
			if cookie, err := r.Cookie(RememberCookieName); err == nil {
				rememberToken = cookie.Value
			}

			state := &State{Session: sess}
			state.Identity, state.Notice = resolver.Resolve(r.Context(), sess, rememberToken)

			ctx := context.WithValue(r.Context(), stateContextKey, state)
			next.ServeHTTP(w, r.WithContext(ctx))

			// state.Session, not sess: logout rotates the session mid-request
			if err := manager.Save(r.Context(), state.Session); err != nil {
				logger.Error("session save failed",
					slog.String("session_id", state.Session.ID),
					slog.String("error", err.Error()))
			}
		})
	}
}
