// Package redis хранит слоты в redis: один ключ на слот, без TTL.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type Storage struct {
	db     *redis.Client
	prefix string
}

// New оборачивает готовый клиент. prefix добавляется ко всем ключам слотов.
func New(db *redis.Client, prefix string) *Storage {
	return &Storage{db: db, prefix: prefix}
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const op = "storage.redis.Get"
	val, err := s.db.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	const op = "storage.redis.Set"
	if err := s.db.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	const op = "storage.redis.Delete"
	if err := s.db.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CheckDatabaseReady проверяет соединение с redis.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	const op = "storage.redis.CheckDatabaseReady"
	if err := s.db.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
