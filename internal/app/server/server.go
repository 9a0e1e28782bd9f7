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

	"craftadmin/internal/domain/audit"
	"craftadmin/internal/domain/auth"
	"craftadmin/internal/domain/core"
	"craftadmin/internal/domain/reports"
	"craftadmin/internal/domain/schedule"
	"craftadmin/internal/platform/config"
	"craftadmin/internal/platform/db"
	"craftadmin/internal/platform/metrics"
	audithandler "craftadmin/internal/transport/http/handlers/audit"
	authhandler "craftadmin/internal/transport/http/handlers/auth"
	corehandler "craftadmin/internal/transport/http/handlers/core"
	reportshandler "craftadmin/internal/transport/http/handlers/reports"
	schedulehandler "craftadmin/internal/transport/http/handlers/schedule"
	"craftadmin/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Pool   *pgxpool.Pool
	Router http.Handler
}

// New wires the application: pool, migrations, seed, stores, services and
// the router. Callers own the returned App's lifecycle.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
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

	baselines := schedule.Baselines{
		DailyMinutes:  cfg.StandardDailyMinutes,
		WeeklyMinutes: cfg.StandardWeeklyMinutes,
		WeekStartDay:  cfg.WeekStartDay,
	}

	coreStore := core.NewStore(pool)
	scheduleStore := schedule.NewStore(pool)
	scheduleService := schedule.NewService(scheduleStore, baselines)
	reportsService := reports.NewService(scheduleStore, coreStore, baselines, cfg.TimesheetDir)
	authStore := auth.NewStore(pool)
	auditService := audit.New(pool)

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if collector != nil {
		router.Get("/metrics", metricsHandler(collector))
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authStore, cfg.JWTSecret).RegisterRoutes(r)
		corehandler.NewHandler(coreStore).RegisterRoutes(r)
		schedulehandler.NewHandler(scheduleService, auditService).RegisterRoutes(r)
		reportshandler.NewHandler(reportsService).RegisterRoutes(r)
		audithandler.NewHandler(auditService).RegisterRoutes(r)
	})

	return &App{Config: cfg, Pool: pool, Router: router}, nil
}

func (a *App) Close() {
	a.Pool.Close()
}

func Run() {
	cfg := config.Load()

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("craftadmin server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func metricsHandler(collector *metrics.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.GetUser(r.Context())
		if !ok || user.Role != auth.RoleAdmin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(collector.Snapshot())
	}
}
