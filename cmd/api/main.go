package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shipquote/internal/api"
	"shipquote/internal/config"
	"shipquote/internal/engine"
	"shipquote/internal/logging"
	"shipquote/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	st, err := buildStore(cfg, logger)
	if err != nil {
		logger.Fatal("store init failed", zap.Error(err))
	}

	eng := engine.New(st, logger)
	srv := api.NewServer(eng, st, logger, api.Options{
		DefaultStore: cfg.DefaultStore,
		RateRPS:      cfg.RateRPS,
		RateBurst:    cfg.RateBurst,
	})

	httpSrv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           srv.Router(),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("api listening", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)
	logger.Info("shutdown complete")
}

// buildStore selects the zone store: Postgres when DATABASE_URL is set, a
// YAML fixture file when ZONES_FILE is set, otherwise an empty in-memory
// store. REDIS_URL wraps whichever store was picked in a configuration cache.
func buildStore(cfg *config.Config, logger *zap.Logger) (store.ZoneStore, error) {
	var st store.ZoneStore
	switch {
	case cfg.Postgres.URL != "":
		pg, err := store.NewPostgres(cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		if cfg.Migrate {
			if err := pg.MigrateDir(cfg.MigrationsDir); err != nil {
				logger.Warn("migrations skipped", zap.Error(err))
			}
		}
		st = pg
	case cfg.ZonesFile != "":
		m, err := store.LoadFile(cfg.ZonesFile)
		if err != nil {
			return nil, err
		}
		logger.Info("zones loaded from file", zap.String("path", cfg.ZonesFile))
		st = m
	default:
		logger.Warn("no DATABASE_URL or ZONES_FILE set; starting with an empty in-memory store")
		st = store.NewMemory()
	}

	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		ttl, err := time.ParseDuration(cfg.Redis.CacheTTL)
		if err != nil {
			ttl = 5 * time.Minute
		}
		st = store.NewCache(st, redis.NewClient(opt), ttl)
		logger.Info("zone config cache enabled", zap.Duration("ttl", ttl))
	}
	return st, nil
}
