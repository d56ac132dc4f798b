// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

// Command api is the entry point for the GranFondo Yalova HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Initialize the security core (tokens, field encryption).
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gfyalova/granfondo/internal/admin"
	"github.com/gfyalova/granfondo/internal/api"
	"github.com/gfyalova/granfondo/internal/contact"
	"github.com/gfyalova/granfondo/internal/events"
	"github.com/gfyalova/granfondo/internal/news"
	"github.com/gfyalova/granfondo/internal/platform/config"
	"github.com/gfyalova/granfondo/internal/platform/constants"
	"github.com/gfyalova/granfondo/internal/platform/mailer"
	"github.com/gfyalova/granfondo/internal/platform/migration"
	pgstore "github.com/gfyalova/granfondo/internal/platform/postgres"
	redisstore "github.com/gfyalova/granfondo/internal/platform/redis"
	"github.com/gfyalova/granfondo/internal/platform/sec"
	"github.com/gfyalova/granfondo/internal/registration"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[GranFondo Yalova] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security Core ──────────────────────────────────────────────────
	// The session signing secret is mandatory; the process refuses to start
	// without it. The field encryption key degrades with a loud warning
	// inside NewFieldCipher (legacy deployments ran without one).
	tokenService, err := sec.NewTokenService(cfg.SessionSecret, constants.AuthIssuer)
	must(log, err, "initialize token service")

	fieldCipher, err := sec.NewFieldCipher(cfg.DataEncryptionKey, log)
	must(log, err, "initialize field cipher")

	// ── 7. Mailer ─────────────────────────────────────────────────────────
	var notifier mailer.Notifier
	if cfg.MailerEnabled() {
		notifier, err = mailer.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, log)
		must(log, err, "initialize smtp mailer")
	} else {
		log.Warn("smtp_not_configured_using_log_notifier")
		notifier = mailer.NewLogNotifier(log)
	}

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	credentialRepository := admin.NewCredentialRepository(pool)
	revocationRepository := admin.NewRevocationRepository(rdb)

	// Account management requires a database role that can write the admin
	// schema. Verify at startup and refuse to run degraded.
	must(log, credentialRepository.VerifyAccess(startupCtx), "verify admin schema access")

	adminService := admin.NewService(credentialRepository, revocationRepository, tokenService, log)
	adminHandler := admin.NewHandler(adminService)

	applicationRepository := registration.NewApplicationRepository(pool)
	registrationService := registration.NewService(applicationRepository, fieldCipher, notifier, log)
	registrationHandler := registration.NewHandler(registrationService)

	eventRepository := events.NewEventRepository(pool)
	eventService := events.NewService(eventRepository, log)
	eventHandler := events.NewHandler(eventService)

	postRepository := news.NewPostRepository(pool)
	newsService := news.NewService(postRepository, log)
	newsHandler := news.NewHandler(newsService)

	messageRepository := contact.NewMessageRepository(pool)
	contactService := contact.NewService(messageRepository, notifier, cfg.NotifyEmail, log)
	contactHandler := contact.NewHandler(contactService)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Admin:        adminHandler,
		Registration: registrationHandler,
		Events:       eventHandler,
		News:         newsHandler,
		Contact:      contactHandler,
	}

	// The admin service is the session verifier: middleware authentication
	// must consult the revocation deny-list, not just the token signature.
	server := api.NewServer(context.Background(), cfg, log, adminService, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
