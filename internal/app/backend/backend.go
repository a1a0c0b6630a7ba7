// Package backend поднимает хранилище слотов и кэш по конфигу.
// Драйвер redis хранит слоты в том же redis, что и кэш; драйвер postgres
// применяет миграции и держит слоты в таблице documents.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/cache"
	"github.com/magabrotheeeer/gym-manager/internal/config"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/migrations"
	"github.com/magabrotheeeer/gym-manager/internal/storage"
	"github.com/magabrotheeeer/gym-manager/internal/storage/postgresql"
	redisstore "github.com/magabrotheeeer/gym-manager/internal/storage/redis"
)

const (
	DriverRedis    = "redis"
	DriverPostgres = "postgres"

	keyPrefix   = "gym:"
	cachePrefix = "gym:cache:"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Store хранилище слотов с проверкой готовности.
type Store interface {
	storage.Store
	CheckDatabaseReady(ctx context.Context) error
}

// Backend открытые ресурсы хранения. Cache равен nil, если redis недоступен при драйвере postgres.
type Backend struct {
	Store Store
	Cache *cache.Cache

	closers []func() error
	log     *slog.Logger
}

// Open подключается к хранилищу, выбранному в cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Backend, error) {
	const op = "backend.Open"
	b := &Backend{log: log}

	switch cfg.Driver {
	case DriverRedis:
		db, err := cache.Connect(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		b.closers = append(b.closers, db.Close)
		b.Cache = cache.New(db, cachePrefix)
		b.Store = redisstore.New(db, keyPrefix)

	case DriverPostgres:
		pg, err := postgresql.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		b.closers = append(b.closers, pg.Close)
		version, err := migrations.Run(pg.DB, cfg.MigrationsPath)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log.Info("schema is up to date", slog.Uint64("version", uint64(version)))
		if err := waitForDB(ctx, pg, 10, 3*time.Second); err != nil {
			b.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		b.Store = pg

		db, err := cache.Connect(ctx, cfg.RedisConnection)
		if err != nil {
			log.Warn("redis unavailable, insights cache disabled", sl.Err(err))
		} else {
			b.closers = append(b.closers, db.Close)
			b.Cache = cache.New(db, cachePrefix)
		}

	default:
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownDriver, cfg.Driver)
	}

	log.Info("storage opened", slog.String("driver", cfg.Driver))
	return b, nil
}

// Close закрывает все открытые подключения в обратном порядке.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			b.log.Error("failed to close storage resource", sl.Err(err))
		}
	}
	b.closers = nil
}

func waitForDB(ctx context.Context, s Store, retries int, delay time.Duration) error {
	var err error
	for range retries {
		if err = s.CheckDatabaseReady(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("database not ready after %d retries: %w", retries, err)
}
