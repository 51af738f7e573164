// Package main runs the ledger API to manage accounts, deposits and withdrawals.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/go-petr/pet-ledger/cmd/httpserver"
	"github.com/go-petr/pet-ledger/db/migration"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/eventpkg"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}
	defer db.Close()

	if config.MigrateOnStart {
		if err := dbpkg.MigrateUp(db, migration.FS); err != nil {
			logger.Fatal().Err(err).Msg("cannot migrate database")
		}
	}

	publisher, err := eventpkg.New(eventpkg.Config{
		Broker:       config.EventsBroker,
		Topic:        config.EventsTopic,
		NATSURL:      config.NATSURL,
		KafkaBrokers: config.KafkaBrokerList(),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create events publisher")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("cannot close events publisher")
		}
	}()

	if config.Environement != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := httpserver.New(db, logger, config, publisher)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("cannot shutdown server")
		}
	}()

	logger.Info().Str("address", config.ServerAddress).Str("events_broker", config.EventsBroker).
		Msg("LEDGER API SERVER HAS STARTED")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("cannot start server")
		return
	}

	logger.Info().Msg("LEDGER API SERVER HAS STOPPED")
}
