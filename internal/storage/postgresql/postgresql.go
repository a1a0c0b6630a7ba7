// Package postgresql хранит слоты в таблице documents (key, value JSONB).
package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

type Storage struct {
	DB *sql.DB
}

// New открывает подключение к PostgreSQL и проверяет его.
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

// CheckDatabaseReady проверяет, что миграции применены.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	const op = "storage.postgresql.CheckDatabaseReady"
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'documents'
    )`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return fmt.Errorf("%s: table documents is missing", op)
	}
	return nil
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const op = "storage.postgresql.Get"

	var value []byte
	err := s.DB.QueryRowContext(ctx, `SELECT value FROM documents WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return value, true, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	const op = "storage.postgresql.Set"

	_, err := s.DB.ExecContext(ctx, `
        INSERT INTO documents (key, value, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE
        SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	const op = "storage.postgresql.Delete"

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM documents WHERE key = $1`, key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
