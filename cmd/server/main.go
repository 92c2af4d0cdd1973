package main

import (
	"fmt"
	"log"

	"rbac-dashboard/internal/config"
	"rbac-dashboard/internal/database"
	"rbac-dashboard/internal/logging"
	"rbac-dashboard/internal/server"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogDir, cfg.Env)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}

	db, err := database.Open(cfg.DBDSN, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}
	if err := database.Seed(db, cfg.AdminEmail, cfg.AdminPassword, logger); err != nil {
		logger.Fatal().Err(err).Msg("seeding failed")
	}

	r := server.NewRouter(cfg, db, logger)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logger.Info().Str("addr", addr).Msg("starting server")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
