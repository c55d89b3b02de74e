// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/jwlee-dev/memopad/internal/api"
	"github.com/jwlee-dev/memopad/internal/auth"
	"github.com/jwlee-dev/memopad/internal/mcpserver"
	"github.com/jwlee-dev/memopad/internal/seed"
	"github.com/jwlee-dev/memopad/internal/session"
	"github.com/jwlee-dev/memopad/internal/sse"
	"github.com/jwlee-dev/memopad/internal/store"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("seed_path", cfg.Seed.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Open the SQLite database.
	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if app.mcpMode {
		return runMCP(ctx, db, cfg.MCP.Account)
	}

	// Seed memo source, optionally backed by a fixture file.
	seeds, err := seed.NewSource(cfg.Seed.Path)
	if err != nil {
		return fmt.Errorf("load seeds: %w", err)
	}

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)

	// Auth service, session manager, and API router.
	authSvc := auth.NewService(db, cfg.Session.TTL)
	sessions := session.NewManager(db, seeds)
	apiRouter := api.NewRouter(authSvc, sessions, broker, cfg.Session.CookieName, cfg.Session.Secure)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the seed fixture for edits so new accounts pick up changes
	// without a restart.
	if cfg.Seed.Watch {
		g.Go(func() error {
			return seeds.Watch(gCtx, logger, func() {
				broker.Publish(sse.Event{Type: "seed.updated", Data: map[string]string{}})
			})
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		broker.Close()

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// runMCP serves memo tools over stdio for the configured account.
func runMCP(ctx context.Context, db *store.DB, accountEmail string) error {
	if accountEmail == "" {
		return fmt.Errorf("mcp: account email is required")
	}
	acc, err := db.GetAccountByEmail(ctx, accountEmail)
	if err != nil {
		return fmt.Errorf("mcp: resolve account %s: %w", accountEmail, err)
	}
	return mcpserver.New(db, acc.ID).ServeStdio()
}
