package main

import (
	"github.com/compile-and-cry/GlobePay/internal/application/intakesvc"
	"github.com/compile-and-cry/GlobePay/internal/application/rates"
	"github.com/compile-and-cry/GlobePay/internal/infrastructure/clients"
	"github.com/compile-and-cry/GlobePay/internal/infrastructure/database"
	"github.com/compile-and-cry/GlobePay/internal/repositories/fxraterepo"
	"github.com/compile-and-cry/GlobePay/internal/repositories/paymentrepo"
	"github.com/compile-and-cry/GlobePay/internal/repositories/sessionrepo"
	"github.com/compile-and-cry/GlobePay/internal/server"
	"github.com/compile-and-cry/GlobePay/internal/server/websocket"
	"github.com/compile-and-cry/GlobePay/pkg/config"
	"github.com/compile-and-cry/GlobePay/pkg/logger"
)

func main() {
	logger := logger.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.ShutDown()

	if err := database.RunMigrations(db.Db, cfg.Database.MigrationsDir, logger); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	paymentRepo := paymentrepo.New(db, logger)
	sessionRepo := sessionrepo.New(db, logger)
	fxRateRepo := fxraterepo.New(db, logger)

	fxClient := clients.NewFxAPIClient(&cfg.FxAPI, logger)
	rateSvc := rates.New(fxClient, logger)

	intakeSvc := intakesvc.New(
		paymentRepo,
		sessionRepo,
		fxRateRepo,
		rateSvc,
		cfg.Intake,
		logger,
	)

	wsHub := websocket.NewWsHub(logger)
	go wsHub.Run()

	srv := server.New(cfg, intakeSvc, logger, wsHub)
	srv.Start()
}
