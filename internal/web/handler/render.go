package handler

import (
	"net/http"

	"github.com/butiken/storefront/internal/web/middleware"
	"github.com/butiken/storefront/internal/web/view"
)

// writeHTML writes a rendered page with the HTML content type
func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body)) //nolint:errcheck
}

// fillAccountHeader fills the shared header markers. A signed-in visitor
// sees their name and a sign-out link; everyone else sees the sign-in link
// and either the resolution notice or the default status line.
func fillAccountHeader(piece string, state *middleware.State) string {
	if state.Identity.IsAuthenticated() {
		piece = view.Replace(piece, "---username---", ", "+state.Identity.Username+"!")
		piece = view.Replace(piece, "---email---", state.Identity.Email)
		piece = view.ReplaceHTML(piece, "---sign_in_out_page---", "logout")
		piece = view.ReplaceHTML(piece, "---sign_in_out_status---", "Sign out")
		return piece
	}

	status := state.Notice
	if status == "" {
		status = "Not signed in"
	}
	piece = view.Replace(piece, "---username---", "")
	piece = view.Replace(piece, "---email---", status)
	piece = view.ReplaceHTML(piece, "---sign_in_out_page---", "login")
	piece = view.ReplaceHTML(piece, "---sign_in_out_status---", "Sign in")
	return piece
}

// RenderError writes the terminal error page
func RenderError(w http.ResponseWriter, status int, message string) {
	doc := view.Replace(view.Page("error"), "---error---", message)
	writeHTML(w, status, doc)
}
