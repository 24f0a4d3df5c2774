package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/carelink-api/internal/config"
	"github.com/jwalitptl/carelink-api/internal/repository/postgres"
	"github.com/jwalitptl/carelink-api/migrations"
	"github.com/jwalitptl/carelink-api/pkg/logger"
)

func main() {
	var (
		command = flag.String("command", "", "Migration command: up, down, version, force")
		steps   = flag.Int("steps", 0, "Number of migration steps (for up/down)")
		version = flag.Int("version", 0, "Migration version (for force)")
	)
	flag.Parse()

	if *command == "" {
		fmt.Println("Usage: migrate -command [up|down|version|force] [-steps N] [-version N]")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	m, err := migrations.New(db.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create migrator")
	}

	switch *command {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
		report(err, "Migrations applied", "No migrations to apply")

	case "down":
		n := *steps
		if n <= 0 {
			n = 1
		}
		report(m.Steps(-n), "Migrations rolled back", "No migrations to roll back")

	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatal().Err(err).Msg("Failed to read migration version")
		}
		log.Info().Uint("version", v).Bool("dirty", dirty).Msg("Current migration version")

	case "force":
		if *version == 0 {
			log.Fatal().Msg("Version number required for force command")
		}
		if err := m.Force(*version); err != nil {
			log.Fatal().Err(err).Msg("Force migration failed")
		}
		log.Info().Int("version", *version).Msg("Migration version forced")

	default:
		log.Fatal().Str("command", *command).Msg("Unknown command")
	}
}

func report(err error, done, noop string) {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Info().Msg(noop)
	case err != nil:
		log.Fatal().Err(err).Msg("Migration failed")
	default:
		log.Info().Msg(done)
	}
}
