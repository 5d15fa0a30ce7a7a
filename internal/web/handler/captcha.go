package handler

import (
	"log/slog"
	"net/http"

	"github.com/butiken/storefront/internal/captcha"
	"github.com/butiken/storefront/internal/dependencies/random"
	"github.com/butiken/storefront/internal/web/middleware"
)

// CaptchaHandler renders the registration challenge image
type CaptchaHandler struct {
	random random.Random
	logger *slog.Logger
}

// NewCaptchaHandler creates a new CaptchaHandler
func NewCaptchaHandler(rnd random.Random, logger *slog.Logger) *CaptchaHandler {
	return &CaptchaHandler{random: rnd, logger: logger}
}

// Image draws a fresh challenge and stores its code in the session. Each
// render replaces the previous code, so only the latest image counts.
func (h *CaptchaHandler) Image(w http.ResponseWriter, r *http.Request) {
	state := middleware.GetState(r.Context())

	code := captcha.NewCode(h.random)
	state.Session.Captcha = code

	img, err := captcha.Render(code, h.random)
	if err != nil {
		h.logger.Error("captcha render failed",
			slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(img) //nolint:errcheck
}
