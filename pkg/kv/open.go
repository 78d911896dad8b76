package kv

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"habittracker/pkg/config"
	"habittracker/pkg/db"
	"habittracker/pkg/redis"
)

// Open builds the backend named by cfg.Storage.Driver wrapped in Guarded.
// The returned func releases the underlying connections.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Backend, func(), error) {
	var (
		backend Backend
		closeFn = func() {}
	)

	switch cfg.Storage.Driver {
	case "", "memory":
		m := NewMemory()
		backend = m
		closeFn = func() { _ = m.Close() }

	case "redis":
		client := redis.NewRedisClient(cfg.Redis)
		r := NewRedis(client)
		if err := r.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		backend = r
		closeFn = func() { _ = r.Close() }

	case "postgres":
		pool, err := db.NewConnection(ctx, cfg.DB, logger)
		if err != nil {
			return nil, nil, err
		}
		p, err := NewPostgres(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		backend = p
		closeFn = pool.Close

	case "sqlite":
		s, err := OpenSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		backend = s
		closeFn = func() { _ = s.Close() }

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	driver := cfg.Storage.Driver
	if driver == "" {
		driver = "memory"
	}
	logger.Info("Storage backend opened", zap.String("driver", driver))
	return NewGuarded(backend, driver, cfg.Breaker, logger), closeFn, nil
}
