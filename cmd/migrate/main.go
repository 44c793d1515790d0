package main

import (
	"fmt"
	"os"

	"chatserver/internal/config"
	"chatserver/internal/repository/postgres"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Store.Driver != "postgres" {
		log.Info().Str("driver", cfg.Store.Driver).Msg("Store initializes its own schema, nothing to migrate")
		return
	}

	sourceURL := "file://migrations"
	if len(os.Args) > 1 {
		sourceURL = fmt.Sprintf("file://%s", os.Args[1])
	}

	if err := postgres.RunMigrations(cfg.Database.DSN(), sourceURL); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
