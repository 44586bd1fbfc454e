package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/config"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/database"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/logging"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/repository"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/routes"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/server"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	var (
		repo         repository.Repository
		authHandler  *handlers.AuthHandler
		pgLogHandler *logging.PGHandler
		cleanupDone  = make(chan struct{})
	)

	if cfg.UsesMemoryStore() {
		slog.Warn("using in-memory store; data is lost on restart and auth endpoints are disabled")
		repo = repository.NewMemoryRepository()
	} else {
		if cfg.DBPassword == "" {
			slog.Error("DB_PASSWORD environment variable is required")
			os.Exit(1)
		}

		if err := database.Connect(cfg); err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		if err := database.Migrate(); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}

		// PostgreSQL log handler (ERROR+ async batch)
		pgLogHandler = logging.NewPGHandler(database.DB)
		logging.Setup(pgLogHandler)
		logging.StartCleanup(database.DB, cfg.LogRetention, cleanupDone)

		repo = repository.NewGormRepository(database.DB)
		authHandler = handlers.NewAuthHandler(services.NewAuthService(database.DB, cfg))
	}

	drilling := services.NewDrillingService(repo)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := server.New(cfg, routes.Handlers{
		Auth:   authHandler,
		Health: handlers.NewHealthHandler(drilling),
		Wells:  handlers.NewWellHandler(drilling),
		Layers: handlers.NewLayerHandler(drilling),
		Index:  handlers.NewIndexHandler(drilling),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	if pgLogHandler != nil {
		pgLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
