// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/gfyalova/granfondo/internal/admin"
	"github.com/gfyalova/granfondo/internal/contact"
	"github.com/gfyalova/granfondo/internal/events"
	"github.com/gfyalova/granfondo/internal/news"
	"github.com/gfyalova/granfondo/internal/platform/config"
	"github.com/gfyalova/granfondo/internal/platform/constants"
	"github.com/gfyalova/granfondo/internal/platform/middleware"
	"github.com/gfyalova/granfondo/internal/registration"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Admin handles back-office authentication and account management.
	Admin *admin.Handler

	// Registration handles the public application form and its review queue.
	Registration *registration.Handler

	// Events handles the public calendar and its back-office CRUD.
	Events *events.Handler

	// News handles public articles and their back-office CRUD.
	News *news.Handler

	// Contact handles the public contact form and the back-office inbox.
	Contact *contact.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.SessionVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		// Public site surface
		api.Mount("/events", h.Events.PublicRoutes())
		api.Mount("/news", h.News.PublicRoutes())
		api.Mount("/applications", h.Registration.PublicRoutes())
		api.Mount("/contact", h.Contact.PublicRoutes())

		// Back office. The admin handler guards its own routes (login is
		// public); everything else sits behind the cookie gate plus full
		// claim verification.
		api.Route("/admin", func(adminRouter chi.Router) {
			adminRouter.Group(func(g chi.Router) {
				g.Use(middleware.SessionGuard)
				g.Use(middleware.RequireAuth)
				g.Mount("/applications", h.Registration.AdminRoutes())
				g.Mount("/events", h.Events.AdminRoutes())
				g.Mount("/news", h.News.AdminRoutes())
				g.Mount("/contact", h.Contact.AdminRoutes())
			})
			adminRouter.Mount("/", h.Admin.Routes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
