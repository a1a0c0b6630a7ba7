// Package migrations создает таблицу документов для слотов в PostgreSQL.
package migrations

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Run доводит схему до последней версии из каталога dir и возвращает эту версию.
// Если схема уже актуальна, ничего не делает.
func Run(db *sql.DB, dir string) (uint, error) {
	const op = "migrations.Run"

	driver, err := pgxv5.WithInstance(db, &pgxv5.Config{MigrationsTable: "gym_schema_migrations"})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "pgx_v5", driver)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if dirty {
		return version, fmt.Errorf("%s: schema version %d is dirty", op, version)
	}
	return version, nil
}
