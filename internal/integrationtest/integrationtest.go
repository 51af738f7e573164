// Package integrationtest provides db helpers used in integration tests.
package integrationtest

import (
	"database/sql"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/pet-ledger/cmd/httpserver"
	"github.com/go-petr/pet-ledger/db/migration"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/eventpkg"
	"github.com/rs/zerolog"
)

// LoadConfig loads the test configuration from the given configs directory.
func LoadConfig(t *testing.T, path string) configpkg.Config {
	t.Helper()

	config, err := configpkg.Load(path)
	if err != nil {
		t.Fatalf(`configpkg.Load(%q) returned error: %v`, path, err)
	}

	return config
}

// SetupServer returns test server that cleans up database after each integration test.
//
// Events are published to the given publisher, nil means events are dropped.
func SetupServer(t *testing.T, configPath string, publisher eventpkg.Publisher) *httpserver.Server {
	t.Helper()

	config := LoadConfig(t, configPath)

	zerolog.SetGlobalLevel(zerolog.FatalLevel)

	logger := middleware.CreateLogger(config)

	db := SetupDB(t, config.DBDriver, config.DBSource)

	gin.SetMode(gin.ReleaseMode)

	if publisher == nil {
		publisher = eventpkg.NopPublisher{}
	}

	server, err := httpserver.New(db, logger, config, publisher)
	if err != nil {
		t.Fatalf(`httpserver.New(db, logger, config, publisher) returned error: %v`, err)
	}

	return server
}

// Flush flushes all ledger tables without droping.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	if _, err := db.Exec(`TRUNCATE TABLE transactions, accounts RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}
}

// SetupDB sets up a migrated database for testing and then cleans it.
func SetupDB(t *testing.T, driver, source string) *sql.DB {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	if err := dbpkg.MigrateUp(db, migration.FS); err != nil {
		t.Fatalf("db migration failed. err: %v", err)
	}

	t.Cleanup(func() {
		Flush(t, db)

		if err := db.Close(); err != nil {
			t.Fatalf("db cleanup failed. err: %v", err)
		}
	})

	return db
}

// SetupTX sets up a database transaction to be used in tests.
//
// Once the tests are done it will rollback the transaction.
func SetupTX(t *testing.T, driver, source string) *sql.Tx {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	if err := dbpkg.MigrateUp(db, migration.FS); err != nil {
		t.Fatalf("db migration failed. err: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("db.Begin() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Fatalf("tx.Rollback() failed: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("db.Close() failed: %v", err)
		}
	})

	return tx
}
