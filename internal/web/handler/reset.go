package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/butiken/storefront/internal/services/auth"
	"github.com/butiken/storefront/internal/web/view"
)

// ResetHandler serves the password-reset page
type ResetHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewResetHandler creates a new ResetHandler
func NewResetHandler(authService *auth.Service, logger *slog.Logger) *ResetHandler {
	return &ResetHandler{authService: authService, logger: logger}
}

// ResetPage renders the password-reset form
func (h *ResetHandler) ResetPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "", "")
}

// Reset handles the reset form submission. The outcome, including whether
// the email was registered at all, is stated on the page.
func (h *ResetHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}
	email := r.PostFormValue("email")

	err := h.authService.ResetPassword(r.Context(), email)
	switch {
	case errors.Is(err, auth.ErrNotRegistered):
		h.render(w, email, fmt.Sprintf("%s is not registered.", email))
	case err != nil:
		h.logger.Error("password reset failed",
			slog.String("error", err.Error()))
		h.render(w, email, "Password reset failed. Please try again!")
	default:
		h.render(w, "", fmt.Sprintf("Password has been reset! A new password has been sent to %s", email))
	}
}

func (h *ResetHandler) render(w http.ResponseWriter, email, status string) {
	doc := view.Page("reset")
	doc = view.Replace(doc, "---email_value---", email)
	doc = view.Replace(doc, "---reset_status---", status)
	writeHTML(w, http.StatusOK, doc)
}
