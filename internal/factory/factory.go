package factory

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/butiken/storefront/internal/dependencies/clock"
	"github.com/butiken/storefront/internal/dependencies/random"
	"github.com/butiken/storefront/internal/loginlog"
	"github.com/butiken/storefront/internal/mail"
	"github.com/butiken/storefront/internal/services/auth"
	"github.com/butiken/storefront/internal/services/cart"
	"github.com/butiken/storefront/internal/services/contact"
	"github.com/butiken/storefront/internal/services/identity"
	"github.com/butiken/storefront/internal/session"
	sessionmemory "github.com/butiken/storefront/internal/session/memory"
	sessionredis "github.com/butiken/storefront/internal/session/redis"
	"github.com/butiken/storefront/internal/storage"
	"github.com/butiken/storefront/internal/storage/memory"
	"github.com/butiken/storefront/internal/storage/postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage  storage.Store
	Sessions *session.Manager

	// External dependencies
	Clock    clock.Clock
	Random   random.Random
	Mailer   mail.Mailer
	LoginLog loginlog.Recorder

	// Services
	Resolver       *identity.Resolver
	CartEngine     *cart.Engine
	AuthService    *auth.Service
	ContactService *contact.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// DatabaseURL selects the postgres store; empty uses in-memory storage
	DatabaseURL string
	// RedisURL selects the redis session store; empty uses in-memory sessions
	RedisURL string
	// SessionTTL bounds how long an idle redis session survives; zero keeps
	// the store default
	SessionTTL time.Duration
	// SecureCookies controls the Secure flag on issued cookies
	SecureCookies bool
	// LoginLogPath is the login log file; empty records logins in memory only
	LoginLogPath string
	// Mailer overrides the outbound mailer (optional)
	// If nil and SMTP is set, an SMTP mailer is built; otherwise mail is
	// recorded in memory
	Mailer mail.Mailer
	// SMTP holds the SMTP account used when Mailer is not provided
	SMTP mail.SMTPConfig
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Store
	if cfg.DatabaseURL != "" {
		pgStore, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := pgStore.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		store = pgStore
	} else {
		store = memory.New()
	}

	var sessStore session.Store
	if cfg.RedisURL != "" {
		redisCfg := sessionredis.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		if cfg.SessionTTL > 0 {
			redisCfg.SessionTTL = cfg.SessionTTL
		}
		redisStore, err := sessionredis.New(redisCfg)
		if err != nil {
			return nil, err
		}
		sessStore = redisStore
	} else {
		sessStore = sessionmemory.New()
	}

	var logins loginlog.Recorder
	if cfg.LoginLogPath != "" {
		logins = loginlog.NewFileLogger(cfg.LoginLogPath)
	} else {
		logins = loginlog.NewMemoryRecorder()
	}

	mailer := cfg.Mailer
	if mailer == nil {
		if cfg.SMTP.Host != "" {
			mailer = mail.NewSMTPMailer(cfg.SMTP)
		} else {
			mailer = mail.NewRecorder()
		}
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, sessStore, clk, rnd, logins, mailer, cfg.SecureCookies, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Store,
	sessStore session.Store,
	clk clock.Clock,
	rnd random.Random,
	logins loginlog.Recorder,
	mailer mail.Mailer,
	secureCookies bool,
	logger *slog.Logger,
) *App {
	sessions := session.NewManager(sessStore, secureCookies)

	resolver := identity.New(store, logger)
	cartEngine := cart.New(store, logger)
	authService := auth.New(store, clk, rnd, logins, mailer, logger)
	contactService := contact.New(mailer, logger)

	return &App{
		Storage:        store,
		Sessions:       sessions,
		Clock:          clk,
		Random:         rnd,
		Mailer:         mailer,
		LoginLog:       logins,
		Resolver:       resolver,
		CartEngine:     cartEngine,
		AuthService:    authService,
		ContactService: contactService,
	}
}
