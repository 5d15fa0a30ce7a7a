package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/butiken/storefront/internal/config"
	"github.com/butiken/storefront/internal/factory"
	"github.com/butiken/storefront/internal/mail"
	"github.com/butiken/storefront/internal/web"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := factory.New(ctx, factory.Config{
		Logger:        logger,
		DatabaseURL:   cfg.DatabaseURL,
		RedisURL:      cfg.RedisURL,
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: cfg.SecureCookies,
		LoginLogPath:  cfg.LoginLogPath,
		SMTP: mail.SMTPConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUsername,
			Password:  cfg.SMTPPassword,
			From:      cfg.MailFrom,
			FromName:  cfg.MailFromName,
			ContactTo: cfg.ContactTo,
		},
	})
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	router := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		Storage:        app.Storage,
		Sessions:       app.Sessions,
		Resolver:       app.Resolver,
		CartEngine:     app.CartEngine,
		AuthService:    app.AuthService,
		ContactService: app.ContactService,
		Random:         app.Random,
		SecureCookies:  cfg.SecureCookies,
		RememberTTL:    cfg.RememberTTL,
	})

	serverConfig := web.DefaultServerConfig()
	serverConfig.Addr = cfg.Addr
	server := web.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
