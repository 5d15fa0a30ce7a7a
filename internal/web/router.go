package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/butiken/storefront/internal/dependencies/random"
	basemw "github.com/butiken/storefront/internal/middleware"
	"github.com/butiken/storefront/internal/services/auth"
	"github.com/butiken/storefront/internal/services/cart"
	"github.com/butiken/storefront/internal/services/contact"
	"github.com/butiken/storefront/internal/services/identity"
	"github.com/butiken/storefront/internal/session"
	"github.com/butiken/storefront/internal/storage"
	"github.com/butiken/storefront/internal/web/handler"
	"github.com/butiken/storefront/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	Storage        storage.Store
	Sessions       *session.Manager
	Resolver       *identity.Resolver
	CartEngine     *cart.Engine
	AuthService    *auth.Service
	ContactService *contact.Service
	Random         random.Random
	SecureCookies  bool
	// RememberTTL is the remember-cookie lifetime; zero uses the default
	RememberTTL time.Duration
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Global middleware
	r.Use(basemw.Recovery(cfg.Logger, panicPage))
	r.Use(basemw.Logging(cfg.Logger))
	r.Use(middleware.WithFlash())
	r.Use(middleware.WithSession(cfg.Sessions, cfg.Resolver, cfg.Logger))

	// Handlers
	storeHandler := handler.NewStoreHandler(cfg.Storage, cfg.CartEngine, cfg.Logger)
	cartHandler := handler.NewCartHandler(cfg.CartEngine, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Sessions, cfg.SecureCookies, cfg.RememberTTL, cfg.Logger)
	resetHandler := handler.NewResetHandler(cfg.AuthService, cfg.Logger)
	contactHandler := handler.NewContactHandler(cfg.ContactService, cfg.Logger)
	captchaHandler := handler.NewCaptchaHandler(cfg.Random, cfg.Logger)

	r.HandleFunc("/", storeHandler.Home).Methods(http.MethodGet)
	r.HandleFunc("/cart", cartHandler.Show).Methods(http.MethodGet)

	r.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodGet)
	r.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	r.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/captcha.png", captchaHandler.Image).Methods(http.MethodGet)

	r.HandleFunc("/reset", resetHandler.ResetPage).Methods(http.MethodGet)
	r.HandleFunc("/reset", resetHandler.Reset).Methods(http.MethodPost)

	r.HandleFunc("/contact", contactHandler.ContactPage).Methods(http.MethodGet)
	r.HandleFunc("/contact", contactHandler.Contact).Methods(http.MethodPost)

	return r
}

func panicPage(w http.ResponseWriter, _ *http.Request, _ any) {
	handler.RenderError(w, http.StatusInternalServerError, "Something went wrong. Please try again!")
}
