// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

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

	"github.com/manovapp/manov/internal/core/author"
	"github.com/manovapp/manov/internal/core/chapter"
	"github.com/manovapp/manov/internal/core/language"
	"github.com/manovapp/manov/internal/core/novel"
	"github.com/manovapp/manov/internal/library/favorite"
	"github.com/manovapp/manov/internal/library/progress"
	"github.com/manovapp/manov/internal/platform/config"
	"github.com/manovapp/manov/internal/platform/constants"
	"github.com/manovapp/manov/internal/platform/middleware"
	"github.com/manovapp/manov/internal/social/comment"
	"github.com/manovapp/manov/internal/social/rating"
	"github.com/manovapp/manov/internal/users/account"
	"github.com/manovapp/manov/internal/users/auth"
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

	// Auth handles authentication routes (login, register).
	Auth *auth.Handler

	// Account handles profile, preference, and session management.
	Account *account.Handler

	// Novel handles the publication catalogue and discovery.
	Novel *novel.Handler

	// Chapter handles chapter content and its translation overlays.
	Chapter *chapter.Handler

	// Language manages the locale registry.
	Language *language.Handler

	// Author manages the writer registry.
	Author *author.Handler

	// Rating handles per-novel score reviews.
	Rating *rating.Handler

	// Comment handles threaded discussions on novels and chapters.
	Comment *comment.Handler

	// Favorite handles the user's saved-novels library.
	Favorite *favorite.Handler

	// Progress handles per-novel reading positions.
	Progress *progress.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
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
		api.Mount("/auth", h.Auth.Routes())

		h.Account.RegisterRoutes(api)
		h.Novel.RegisterRoutes(api)
		h.Chapter.RegisterRoutes(api)
		h.Language.RegisterRoutes(api)
		h.Author.RegisterRoutes(api)
		h.Rating.RegisterRoutes(api)
		h.Comment.RegisterRoutes(api)
		h.Favorite.RegisterRoutes(api)
		h.Progress.RegisterRoutes(api)
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
