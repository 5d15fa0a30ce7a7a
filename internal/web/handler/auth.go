package handler

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/butiken/storefront/internal/services/auth"
	"github.com/butiken/storefront/internal/session"
	"github.com/butiken/storefront/internal/web/middleware"
	"github.com/butiken/storefront/internal/web/view"
)

const loginErrorMessage = "Incorrect email and/or password."

// AuthHandler handles the sign-in, registration and sign-out pages
type AuthHandler struct {
	authService   *auth.Service
	sessions      *session.Manager
	secureCookies bool
	rememberTTL   time.Duration
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. A zero rememberTTL falls back
// to the default remember-cookie lifetime.
func NewAuthHandler(authService *auth.Service, sessions *session.Manager, secureCookies bool, rememberTTL time.Duration, logger *slog.Logger) *AuthHandler {
	if rememberTTL <= 0 {
		rememberTTL = auth.RememberDuration
	}
	return &AuthHandler{
		authService:   authService,
		sessions:      sessions,
		secureCookies: secureCookies,
		rememberTTL:   rememberTTL,
		logger:        logger,
	}
}

// LoginPage renders the sign-in page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	state := middleware.GetState(r.Context())
	if state.Identity.IsAuthenticated() {
		// Already signed in, back to the store
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	status := ""
	if flash := middleware.GetFlash(r.Context()); flash != nil {
		status = flash.Message
	}

	// Registration redirects here with the fresh email prefilled
	h.renderLogin(w, r.URL.Query().Get("email"), status, "")
}

// Login handles the sign-in form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state := middleware.GetState(r.Context())

	if err := r.ParseForm(); err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	remember := r.PostFormValue("remember") != ""

	token, err := h.authService.Login(r.Context(), state.Session, email, password, remember, clientAddr(r))
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.renderLogin(w, email, "", loginErrorMessage)
		return
	case err != nil:
		h.logger.Error("login failed",
			slog.String("error", err.Error()))
		RenderError(w, http.StatusInternalServerError, "Sign in failed. Please try again!")
		return
	}

	if token != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.RememberCookieName,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(h.rememberTTL),
			Secure:   h.secureCookies,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout signs the visitor out: the persistent token is revoked, the
// remember cookie cleared, and the session replaced with a fresh id so
// the old one cannot be replayed
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	state := middleware.GetState(r.Context())

	rememberToken := ""
	if cookie, err := r.Cookie(middleware.RememberCookieName); err == nil {
		rememberToken = cookie.Value
	}

	if err := h.authService.Logout(r.Context(), state.Session, rememberToken); err != nil {
		h.logger.Error("logout failed",
			slog.String("error", err.Error()))
		RenderError(w, http.StatusInternalServerError, "Sign out failed. Please try again!")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.RememberCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   h.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	fresh, err := h.sessions.Rotate(r.Context(), w, state.Session)
	if err != nil {
		h.logger.Error("session rotation failed",
			slog.String("error", err.Error()))
		RenderError(w, http.StatusInternalServerError, "Sign out failed. Please try again!")
		return
	}
	state.Session = fresh

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	state := middleware.GetState(r.Context())
	if state.Identity.IsAuthenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.renderRegister(w, auth.RegisterInput{}, nil)
}

// Register handles the registration form submission. Success does not sign
// the account in; the visitor lands on the sign-in page with their email
// prefilled.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	state := middleware.GetState(r.Context())

	if err := r.ParseForm(); err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	in := auth.RegisterInput{
		Email:    r.PostFormValue("email"),
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
		Captcha:  r.PostFormValue("captcha"),
	}

	fieldErrs, err := h.authService.Register(r.Context(), state.Session, in)
	if err != nil {
		h.logger.Error("registration failed",
			slog.String("error", err.Error()))
		RenderError(w, http.StatusInternalServerError, "Registration failed. Please try again!")
		return
	}
	if len(fieldErrs) > 0 {
		h.renderRegister(w, in, fieldErrs)
		return
	}

	middleware.SetFlash(w, "success", "Account created! Please sign in.")
	http.Redirect(w, r, "/login?email="+url.QueryEscape(in.Email), http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, email, status, loginError string) {
	doc := view.Page("login")
	doc = view.Replace(doc, "---email_value---", email)
	doc = view.Replace(doc, "---login_status---", status)
	doc = view.Replace(doc, "---login_error---", loginError)
	writeHTML(w, http.StatusOK, doc)
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, in auth.RegisterInput, fieldErrs auth.FieldErrors) {
	doc := view.Page("register")
	doc = view.Replace(doc, "---email_value---", in.Email)
	doc = view.Replace(doc, "---username_value---", in.Username)
	doc = view.Replace(doc, "---email_error---", fieldErrs["email"])
	doc = view.Replace(doc, "---username_error---", fieldErrs["username"])
	doc = view.Replace(doc, "---password_error---", fieldErrs["password"])
	doc = view.Replace(doc, "---captcha_error---", fieldErrs["captcha"])
	writeHTML(w, http.StatusOK, doc)
}

// clientAddr extracts the client IP without the port
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
