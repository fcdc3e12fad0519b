package main

import (
	"fmt"
	"os"

	"github.com/contractlens/contractlens/internal/config"
	"github.com/contractlens/contractlens/internal/pkg/logger"
	"github.com/contractlens/contractlens/internal/repository/postgres"
	"github.com/contractlens/contractlens/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	store, err := postgres.New(cfg.Database)
	if err != nil {
		log.ErrorWithErr(err, "Failed to connect to database")
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Migrate(migrations.GetFS()); err != nil {
		log.ErrorWithErr(err, "Migration failed")
		os.Exit(1)
	}

	log.Info("Migrations applied")
}
