package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/traveljournal/journal-server/internal/store/migrations"
)

// Migrate applies all pending up migrations for the target.
func Migrate(target Target) error {
	m, err := newMigrator(target)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Reset drops every table by running all down migrations, then migrates up
// again. Used by the seeding tool.
func Reset(target Target) error {
	m, err := newMigrator(target)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// newMigrator opens a dedicated connection for golang-migrate, since
// closing the migrator also closes the database handle it was given.
func newMigrator(target Target) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, string(target.Dialect))
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}
	if err := target.ensureDir(); err != nil {
		return nil, err
	}

	db, err := sql.Open(target.DriverName(), target.DSN)
	if err != nil {
		return nil, fmt.Errorf("open migration connection: %w", err)
	}

	var driver database.Driver
	switch target.Dialect {
	case DialectSQLite:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	case DialectPostgres:
		driver, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	default:
		err = fmt.Errorf("unsupported dialect %q", target.Dialect)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(target.Dialect), driver)
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}
