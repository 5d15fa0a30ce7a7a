package identity

import (
	"context"
	"errors"
	"log/slog"

	"github.com/butiken/storefront/internal/model"
	"github.com/butiken/storefront/internal/session"
	"github.com/butiken/storefront/internal/storage"
)

// NoticeRetrievalFailed is surfaced when a remember-cookie is present but
// no longer matches an account
const NoticeRetrievalFailed = "Account session retrieval failed. Please sign in again!"

// Resolver establishes the visitor identity for a request
type Resolver struct {
	storage storage.Store
	logger  *slog.Logger
}

// New creates a new identity Resolver
func New(store storage.Store, logger *slog.Logger) *Resolver {
	return &Resolver{storage: store, logger: logger}
}

// Resolve determines the identity for one request, first match wins:
//
//  1. A session that already carries an identity is authenticated.
//  2. A remember-token is looked up against the credential store; a match
//     promotes the account into the session for the rest of its life. A
//     stale token degrades to Guest with a notice for the caller.
//  3. Otherwise the visitor is a guest.
//
// The remember-token is re-validated on every request; it is never trusted
// from an earlier resolution.
func (r *Resolver) Resolve(ctx context.Context, sess *session.Session, rememberToken string) (model.Identity, string) {
	if sess.User != nil {
		return model.Authenticated(sess.User.Username, sess.User.Email), ""
	}

	if rememberToken != "" {
		acct, err := r.storage.GetAccountByRememberToken(ctx, rememberToken)
		if err != nil {
			if !errors.Is(err, model.ErrAccountNotFound) {
				r.logger.Error("remember token lookup failed",
					slog.String("error", err.Error()))
			}
			return model.Guest(), NoticeRetrievalFailed
		}

		sess.User = &session.User{Email: acct.Email, Username: acct.Username}
		return model.Authenticated(acct.Username, acct.Email), ""
	}

	return model.Guest(), ""
}
