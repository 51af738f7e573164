// Command migrate applies or reverts the embedded database migrations.
//
// Usage:
//
//	migrate up|down|drop|version
package main

import (
	"errors"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog/log"

	"github.com/go-petr/pet-ledger/db/migration"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: migrate up|down|drop|version")
	}

	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	m, err := dbpkg.NewMigrate(config.DBSource, migration.FS)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create migrate instance")
	}
	defer m.Close()

	cmd := os.Args[1]

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "drop":
		err = m.Drop()
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			logger.Fatal().Err(verr).Msg("cannot read migration version")
		}

		logger.Info().Uint("version", version).Bool("dirty", dirty).Send()

		return
	default:
		logger.Fatal().Str("command", cmd).Msg("unknown migrate command")
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal().Err(err).Str("command", cmd).Msg("migration failed")
	}

	logger.Info().Str("command", cmd).Msg("migration done")
}
