package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

func runMigrations(conn *sql.DB, driver Driver, dsn string) error {
	src, err := iofs.New(migrationsFS, "migrations/"+string(driver))
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	var target database.Driver
	switch driver {
	case Postgres:
		// The postgres driver pins a connection until Close, so it gets a
		// pool of its own.
		migrateDB, err := sql.Open(string(Postgres), dsn)
		if err != nil {
			return fmt.Errorf("open migration database: %w", err)
		}
		target, err = postgres.WithInstance(migrateDB, &postgres.Config{})
		if err != nil {
			migrateDB.Close()
			return fmt.Errorf("create postgres driver: %w", err)
		}
		m, err := migrate.NewWithInstance("iofs", src, string(Postgres), target)
		if err != nil {
			target.Close()
			return fmt.Errorf("create migrate instance: %w", err)
		}
		defer m.Close()
		return up(m)
	case SQLite:
		// Closing the migrate instance would close conn, and an in-memory
		// database does not survive that.
		target, err = sqlite.WithInstance(conn, &sqlite.Config{})
		if err != nil {
			return fmt.Errorf("create sqlite driver: %w", err)
		}
		m, err := migrate.NewWithInstance("iofs", src, string(SQLite), target)
		if err != nil {
			return fmt.Errorf("create migrate instance: %w", err)
		}
		return up(m)
	}
	return fmt.Errorf("unsupported database driver %q", driver)
}

func up(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
