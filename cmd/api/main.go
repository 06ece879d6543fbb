// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

// Command api is the entry point for the Manov HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/manovapp/manov/internal/api"
	"github.com/manovapp/manov/internal/core/author"
	"github.com/manovapp/manov/internal/core/chapter"
	"github.com/manovapp/manov/internal/core/language"
	"github.com/manovapp/manov/internal/core/novel"
	"github.com/manovapp/manov/internal/library/favorite"
	"github.com/manovapp/manov/internal/library/progress"
	"github.com/manovapp/manov/internal/platform/config"
	"github.com/manovapp/manov/internal/platform/constants"
	"github.com/manovapp/manov/internal/platform/migration"
	pgstore "github.com/manovapp/manov/internal/platform/postgres"
	redisstore "github.com/manovapp/manov/internal/platform/redis"
	"github.com/manovapp/manov/internal/platform/sec"
	"github.com/manovapp/manov/internal/social/comment"
	"github.com/manovapp/manov/internal/social/rating"
	"github.com/manovapp/manov/internal/users/account"
	"github.com/manovapp/manov/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "manov"))
	slog.SetDefault(log)

	log.Info("[Manov] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "manov"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for the process. Cancelled when main returns so that
	// background middleware goroutines (rate limiter cleanup) stop too.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Use a 30s deadline for startup so misconfiguration is caught quickly
	// rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
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

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────

	// Identity & account management
	userRepository := auth.NewUserRepository(pool)
	authSessionRepository := auth.NewSessionRepository(pool)
	resetTokenRepository := auth.NewResetTokenRepository(rdb)
	verificationTokenRepository := auth.NewVerificationTokenRepository(rdb)
	mailer := auth.NewLogMailer(log)
	authService := auth.NewService(userRepository, authSessionRepository, resetTokenRepository, verificationTokenRepository, jwtSvc, mailer)
	authHandler := auth.NewHandler(authService)

	accountService := account.NewService(
		account.NewAccountRepository(pool),
		account.NewPreferencesRepository(pool),
		account.NewSessionRepository(pool),
		log,
	)
	accountHandler := account.NewHandler(accountService)

	// Reference data
	languageService := language.NewService(language.NewPostgresRepository(pool), log)
	languageHandler := language.NewHandler(languageService)

	authorService := author.NewService(author.NewPostgresRepository(pool), log)
	authorHandler := author.NewHandler(authorService)

	// Catalogue
	// Localized reads fall back to the reader's stored locale preference.
	novelService := novel.NewService(novel.NewPostgresRepository(pool), languageService, authorService, cfg.DefaultOverlayLocale, log)
	novelHandler := novel.NewHandler(novelService, accountService)

	chapterService := chapter.NewService(chapter.NewPostgresRepository(pool), novelService, languageService, log)
	chapterHandler := chapter.NewHandler(chapterService, accountService)

	// Social
	ratingService := rating.NewService(rating.NewPostgresRepository(pool), novelService, log)
	ratingHandler := rating.NewHandler(ratingService)

	commentService := comment.NewService(comment.NewPostgresRepository(pool), novelService, chapterService, log)
	commentHandler := comment.NewHandler(commentService)

	// Library
	favoriteService := favorite.NewService(favorite.NewPostgresRepository(pool), novelService, log)
	favoriteHandler := favorite.NewHandler(favoriteService)

	progressService := progress.NewService(progress.NewPostgresRepository(pool), chapterService, log)
	progressHandler := progress.NewHandler(progressService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Account:   accountHandler,
		Novel:     novelHandler,
		Chapter:   chapterHandler,
		Language:  languageHandler,
		Author:    authorHandler,
		Rating:    ratingHandler,
		Comment:   commentHandler,
		Favorite:  favoriteHandler,
		Progress:  progressHandler,
	}

	server := api.NewServer(rootCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
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
