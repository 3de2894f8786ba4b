// Package database manages the PostgreSQL pool behind the optional
// raw-record store.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/equimetrics/backend/pkg/config"
)

// pingTimeout bounds the connectivity probes in New and HealthCheck.
const pingTimeout = 5 * time.Second

// DB owns the pgx connection pool. pgxpool instances are created here
// and nowhere else.
type DB struct {
	Pool *pgxpool.Pool
}

// New builds the pool from DATABASE_URL and the DB_* pool knobs, then
// verifies connectivity before handing it out.
func New(ctx context.Context, cfg *config.Config) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close closes the pool. Safe to call more than once.
func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// HealthStatus is the database section of the health endpoint.
type HealthStatus struct {
	Healthy     bool          `json:"healthy"`
	PingLatency time.Duration `json:"ping_latency"`
	Error       string        `json:"error,omitempty"`
	Pool        PoolStats     `json:"pool"`
}

// PoolStats is the subset of pgx pool counters worth surfacing: enough
// to spot exhaustion (acquired vs max) and contention (empty acquires).
type PoolStats struct {
	AcquiredConns     int32 `json:"acquired_conns"`
	IdleConns         int32 `json:"idle_conns"`
	TotalConns        int32 `json:"total_conns"`
	MaxConns          int32 `json:"max_conns"`
	AcquireCount      int64 `json:"acquire_count"`
	EmptyAcquireCount int64 `json:"empty_acquire_count"`
}

// Stats snapshots the pool counters.
func (db *DB) Stats() PoolStats {
	s := db.Pool.Stat()
	return PoolStats{
		AcquiredConns:     s.AcquiredConns(),
		IdleConns:         s.IdleConns(),
		TotalConns:        s.TotalConns(),
		MaxConns:          s.MaxConns(),
		AcquireCount:      s.AcquireCount(),
		EmptyAcquireCount: s.EmptyAcquireCount(),
	}
}

// HealthCheck pings the database and reports pool pressure.
func (db *DB) HealthCheck(ctx context.Context) (*HealthStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := &HealthStatus{}
	start := time.Now()
	if err := db.Pool.Ping(ctx); err != nil {
		status.Error = err.Error()
		return status, err
	}
	status.PingLatency = time.Since(start)
	status.Pool = db.Stats()
	status.Healthy = true
	return status, nil
}
