package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/butiken/storefront/internal/model"
)

// CookieName is the name of the session cookie
const CookieName = "session"

// Manager loads sessions from the session cookie, creates fresh ones for
// new visitors, and rotates ids on logout to prevent session fixation.
type Manager struct {
	store  Store
	secure bool
}

// NewManager creates a session manager over the given store. secure
// controls the cookie Secure flag (off for local development).
func NewManager(store Store, secure bool) *Manager {
	return &Manager{store: store, secure: secure}
}

// Load returns the visitor's session, creating a new one (and setting the
// cookie) when no valid session cookie is present
func (m *Manager) Load(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err == nil && cookie.Value != "" {
		sess, err := m.store.Get(ctx, cookie.Value)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, model.ErrSessionNotFound) {
			return nil, err
		}
	}
	return m.create(w), nil
}

// Save persists the session state back to the store
func (m *Manager) Save(ctx context.Context, sess *Session) error {
	return m.store.Save(ctx, sess)
}

// Rotate discards the session and issues a brand-new id and cookie.
// Nothing carries over from the old session.
func (m *Manager) Rotate(ctx context.Context, w http.ResponseWriter, sess *Session) (*Session, error) {
	if err := m.store.Delete(ctx, sess.ID); err != nil {
		return nil, err
	}
	return m.create(w), nil
}

func (m *Manager) create(w http.ResponseWriter) *Session {
	sess := &Session{ID: uuid.NewString()}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}
