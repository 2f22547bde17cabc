package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"roomdesk/internal/api"
	"roomdesk/internal/booking"
	"roomdesk/internal/catalog"
	"roomdesk/internal/config"
	"roomdesk/internal/eligibility"
	"roomdesk/internal/filter"
	"roomdesk/internal/metrics"
	"roomdesk/internal/models"
	"roomdesk/internal/store"
)

func main() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("ROOMDESK_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Catalog.BaseURL == "" {
		logger.Fatal().Msg("set catalog.base_url in config")
	}

	db, err := store.New(cfg.Database.Path, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open store error")
	}
	defer db.Close()

	client := catalog.NewClient(cfg.Catalog.BaseURL, &logger)
	var rdb *redis.Client
	if cfg.Redis.Address != "" && cfg.Catalog.CacheTTLSeconds > 0 {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		client.UseRedisCache(rdb, cfg.CatalogCacheTTL())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The catalog is fetched once per process. A failed fetch degrades to
	// an empty room set instead of aborting startup.
	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	rooms, err := client.FetchCatalog(fetchCtx)
	cancel()
	if err != nil {
		logger.Error().Err(err).Msg("catalog fetch failed, starting with no rooms")
		rooms = []models.Room{}
	}
	logger.Info().Int("rooms", len(rooms)).Msg("catalog loaded")

	engine := eligibility.New(eligibility.ParseBoundaryPolicy(cfg.Booking.BoundaryPolicy))
	logger.Info().Str("boundary_policy", engine.Policy().String()).Msg("eligibility engine ready")
	orch := booking.NewOrchestrator(engine, db, cfg.SessionTimeout(), &logger)

	server := api.NewHTTPServer(api.Options{
		Port:          cfg.Server.Port,
		RatePerSecond: cfg.Server.RatePerSecond,
		RateBurst:     cfg.Server.RateBurst,
		ReadTimeout:   cfg.RequestTimeout(),
	}, rooms, engine, filter.New(engine), orch, db, &logger)

	if cfg.Monitoring.HealthCheckPort == 0 {
		cfg.Monitoring.HealthCheckPort = 8090
	}
	go startHealthServer(ctx, cfg.Monitoring.HealthCheckPort, db, rdb, &logger)

	if cfg.Monitoring.PrometheusEnabled {
		if cfg.Monitoring.PrometheusPort == 0 {
			cfg.Monitoring.PrometheusPort = 9090
		}
		metrics.Register()
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	if cfg.Backup.Enabled {
		backup := store.NewBackupService(cfg.Database.Path, store.BackupConfig{
			Enabled:       true,
			IntervalHours: cfg.Backup.IntervalHours,
			StoragePath:   cfg.Backup.Path,
			RetentionDays: cfg.Backup.RetentionDays,
		}, &logger)
		go backup.Start(ctx)
	}

	go sessionCleanupLoop(ctx, orch, &logger)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown error")
		}
	}()

	logger.Info().Msg("roomdesk started")
	if err := server.Start(); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

// sessionCleanupLoop sweeps expired selection sessions.
func sessionCleanupLoop(ctx context.Context, orch *booking.Orchestrator, logger *zerolog.Logger) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := orch.CleanupSessions(); removed > 0 {
				logger.Info().Int("removed", removed).Msg("cleaned up expired sessions")
			}
		case <-ctx.Done():
			return
		}
	}
}

func startHealthServer(ctx context.Context, port int, db *store.Store, rdb *redis.Client, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		ctxPing, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := db.PingContext(ctxPing); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		if rdb != nil {
			if err := rdb.Ping(ctxPing).Err(); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("health server error")
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
