package dbpkg

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// NewMigrate returns a migrate instance reading the migrations from fsys
// and applying them to the postgres database at the given url.
func NewMigrate(source string, fsys fs.FS) (*migrate.Migrate, error) {
	src, err := iofs.New(fsys, ".")
	if err != nil {
		return nil, err
	}

	return migrate.NewWithSourceInstance("iofs", src, source)
}

// MigrateUp applies all pending migrations using a single connection from db.
//
// The connection is returned to the pool afterwards, db stays open.
func MigrateUp(db *sql.DB, fsys fs.FS) error {
	ctx := context.Background()

	src, err := iofs.New(fsys, ".")
	if err != nil {
		return err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return err
	}

	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
	if err != nil {
		_ = conn.Close()
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		_ = driver.Close()
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
