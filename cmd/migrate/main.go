package main

import (
	"errors"
	"os"

	"github.com/avidato/farehold/config"
	"github.com/avidato/farehold/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init("")

	if len(os.Args) < 2 {
		log.Fatal().Msg("migration direction (up/down) is required")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	m, err := migrate.New("file://migrations", cfg.Database.URL())
	if err != nil {
		log.Fatal().Err(err).Msg("open migrations")
	}

	switch os.Args[1] {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	default:
		log.Fatal().Str("direction", os.Args[1]).Msg("invalid direction, use 'up' or 'down'")
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Str("direction", os.Args[1]).Msg("migrations applied")
}
