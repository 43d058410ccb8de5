package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Mikemeister8/octogon-home-app/internal/config"
	"github.com/Mikemeister8/octogon-home-app/internal/database"
	"github.com/Mikemeister8/octogon-home-app/internal/logger"
	"github.com/Mikemeister8/octogon-home-app/internal/repository"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "octogon",
	Short:         "Octogon household points service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the logger every command uses
func bootstrap() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	mode := "development"
	if cfg.IsProduction() {
		mode = "production"
	}
	log, err := logger.New(mode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, log, nil
}

// openStore connects the configured backend. Postgres schemas are migrated
// when migrate is set; SQLite is always migrated on open.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger, migrate bool) (repository.Store, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		db, err := database.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info("sqlite store opened", "path", cfg.Storage.SQLitePath)
		return repository.NewSQLiteStore(db), nil

	default:
		pool, err := database.NewPool(ctx, cfg.Storage.DatabaseURL,
			int32(cfg.Storage.MaxConns), int32(cfg.Storage.MinConns))
		if err != nil {
			return nil, err
		}
		if migrate {
			applied, err := database.RunMigrations(ctx, pool, log)
			if err != nil {
				pool.Close()
				return nil, err
			}
			log.Info("database migrated", "applied", len(applied))
		}
		log.Info("postgres store connected", "max_conns", cfg.Storage.MaxConns)
		return repository.NewPostgresStore(pool), nil
	}
}
