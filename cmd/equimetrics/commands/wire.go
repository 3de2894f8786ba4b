package commands

import (
	"context"
	"fmt"

	"github.com/equimetrics/backend/internal/external/fmp"
	"github.com/equimetrics/backend/internal/external/quoteweb"
	"github.com/equimetrics/backend/internal/metrics"
	"github.com/equimetrics/backend/internal/provider"
	"github.com/equimetrics/backend/internal/reconcile"
	"github.com/equimetrics/backend/internal/store"
	"github.com/equimetrics/backend/pkg/config"
	"github.com/equimetrics/backend/pkg/database"
	"github.com/equimetrics/backend/pkg/logger"
	"github.com/equimetrics/backend/pkg/redis"
)

// app bundles the wired collaborators a command needs.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	provider *provider.CachingProvider
	service  *metrics.Service

	closers []func()
}

// close releases connections in reverse wiring order.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// buildApp wires config, logging, cache, sources and the metrics
// service. Postgres and the scraper fallback are attached only when
// enabled in config.
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)
	a := &app{cfg: cfg, log: log}

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.closers = append(a.closers, func() { redisClient.Close() })

	var limiter *redis.RateLimiter
	if redisClient.Enabled() {
		limiter = redis.NewRateLimiter(redisClient, "equimetrics")
	}

	fmpClient := fmp.NewClient(cfg, log, limiter)

	opts := []provider.Option{}
	if cfg.QuoteWeb.Enabled {
		opts = append(opts, provider.WithSnapshotFallback(quoteweb.NewClient(cfg, log)))
	}

	if cfg.Database.Enabled {
		db, err := database.New(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		repo := store.NewRecordRepository(db.Pool)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			a.close()
			return nil, err
		}
		opts = append(opts, provider.WithStore(repo))
		log.Info("Connected to database")
	}

	a.provider = provider.New(fmpClient, redis.NewCache(redisClient, "equimetrics"), log, opts...)
	a.service = metrics.New(a.provider, reconcile.Strategy(cfg.Metrics.Strategy), log)

	return a, nil
}
