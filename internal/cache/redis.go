// Package cache хранит JSON-значения с TTL в redis под общим пространством имен.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/gym-manager/internal/config"
)

// Connect открывает клиент redis и проверяет его ping-ом.
// Клиент общий для кэша и хранилища слотов, закрывает его владелец.
func Connect(ctx context.Context, cfg config.RedisConnection) (*redis.Client, error) {
	const op = "cache.Connect"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return db, nil
}

type Cache struct {
	db        *redis.Client
	namespace string
}

// New кэш поверх db. Все ключи получают префикс namespace.
func New(db *redis.Client, namespace string) *Cache {
	return &Cache{db: db, namespace: namespace}
}

func (c *Cache) key(k string) string {
	return c.namespace + k
}

// Get читает значение в result. false без ошибки, если ключа нет или он истек.
func (c *Cache) Get(ctx context.Context, key string, result any) (bool, error) {
	const op = "cache.Get"
	val, err := c.db.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err = json.Unmarshal(val, result); err != nil {
		return false, fmt.Errorf("%s: %s: %w", op, key, err)
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	const op = "cache.Set"
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.db.Set(ctx, c.key(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, key string) error {
	const op = "cache.Invalidate"
	if err := c.db.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
