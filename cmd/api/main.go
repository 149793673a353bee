// Package main is the entry point for the Kniha Jízd API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/romanwintercz/kniha-jizd-api/internal/assist"
	"github.com/romanwintercz/kniha-jizd-api/internal/config"
	"github.com/romanwintercz/kniha-jizd-api/internal/handler"
	"github.com/romanwintercz/kniha-jizd-api/internal/kv"
	"github.com/romanwintercz/kniha-jizd-api/internal/middleware"
	"github.com/romanwintercz/kniha-jizd-api/internal/service"
	"github.com/romanwintercz/kniha-jizd-api/internal/store"
	"github.com/romanwintercz/kniha-jizd-api/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log
	// aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Persistence ------------------------------------------------------
	// Config guarantees exactly one backend is selected: Postgres for a
	// shared deployment, a plain directory for single-user setups.
	var backend kv.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		// Verify the DB is reachable before accepting traffic.
		if err := pool.Ping(ctx); err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}

		if err := migrateUp(cfg.DatabaseURL); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("database ready")
		backend = kv.NewPostgres(pool)
	} else {
		fileStore, err := kv.NewFile(cfg.DataDir)
		if err != nil {
			slog.Error("failed to open data directory", "error", err, "dir", cfg.DataDir)
			os.Exit(1)
		}
		slog.Info("file storage ready", "dir", cfg.DataDir)
		backend = fileStore
	}

	st, err := store.Open(ctx, backend)
	if err != nil {
		slog.Error("failed to load application state", "error", err)
		os.Exit(1)
	}

	// --- Services ---------------------------------------------------------
	deps := handler.Deps{
		Trips:     service.NewTripService(st),
		Vehicles:  service.NewVehicleService(st),
		Drivers:   service.NewDriverService(st),
		Orders:    service.NewOrderService(st),
		Templates: service.NewTemplateService(st),
		Reports:   service.NewReportService(st),
		Exchange:  service.NewExchangeService(st),
		Settings:  service.NewSettingsService(st),
	}

	if cfg.GeminiAPIKey != "" {
		parser, err := assist.NewGemini(ctx, cfg.GeminiAPIKey, assist.WithModel(cfg.GeminiModel))
		if err != nil {
			slog.Error("failed to initialize AI assist", "error", err)
			os.Exit(1)
		}
		deps.Assist = service.NewAssistService(st, parser)
		slog.Info("AI assist enabled")
	} else {
		slog.Info("AI assist disabled, GEMINI_API_KEY not set")
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger →
	// Recoverer. Recoverer catches panics and returns HTTP 500 instead of
	// crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Mount("/", handler.NewServer(deps).Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrateUp applies the embedded goose migrations. goose drives a
// database/sql connection, so it gets its own short-lived one via the pgx
// stdlib adapter rather than the pgxpool used for serving.
func migrateUp(databaseURL string) error {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return err
	}
	db := stdlib.OpenDB(*cfg.ConnConfig)
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}
