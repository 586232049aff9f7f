package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ats/internal/domain/auth"
	"ats/internal/domain/candidate"
	"ats/internal/domain/reports"
	"ats/internal/domain/search"
	"ats/internal/domain/verification"
	"ats/internal/platform/config"
	"ats/internal/platform/db"
	"ats/internal/platform/metrics"
	authhandler "ats/internal/transport/http/handlers/auth"
	candidatehandler "ats/internal/transport/http/handlers/candidates"
	reportshandler "ats/internal/transport/http/handlers/reports"
	verificationhandler "ats/internal/transport/http/handlers/verification"
	"ats/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Pool    *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

// New connects, migrates, seeds and wires the full router. The caller
// owns the returned App and must Close it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	app := &App{
		Config:  cfg,
		Pool:    pool,
		Metrics: metrics.New(),
	}
	app.Router = app.buildRouter()
	return app, nil
}

func (a *App) buildRouter() http.Handler {
	cfg := a.Config

	userStore := auth.NewStore(a.Pool)
	candidateStore := candidate.NewStore(a.Pool)
	verificationStore := verification.NewStore(a.Pool)

	candidateService := candidate.NewService(candidateStore)
	searchService := search.NewService(candidateStore, cfg.DateToleranceDays, cfg.TenureToleranceMths)
	verificationService := verification.NewService(verificationStore)
	reportsService := reports.NewService(candidateStore, verificationStore, cfg.ExportDir)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.Pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(a.Metrics.Snapshot())
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(userStore, cfg.JWTSecret, cfg.TokenTTL)
		r.With(middleware.LoginRateLimit(cfg.RateLimitPerMinute, time.Minute)).Post("/auth/login", authHandler.HandleLogin)
		r.Get("/auth/me", authHandler.HandleMe)

		candidateHandler := candidatehandler.NewHandler(candidateService, searchService, a.Metrics)
		verificationHandler := verificationhandler.NewHandler(verificationService, candidateService, a.Metrics)
		r.Route("/candidates", func(r chi.Router) {
			candidateHandler.RegisterRoutes(r)
			verificationHandler.RegisterRoutes(r)
		})

		reportsHandler := reportshandler.NewHandler(reportsService, searchService)
		reportsHandler.RegisterRoutes(r)
	})

	return router
}

func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}

// Run loads config, builds the app and serves until the listener fails.
func Run() {
	cfg := config.Load()

	ctx := context.Background()
	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("ATS server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
