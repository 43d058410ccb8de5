package main

import (
	"fmt"

	"github.com/Mikemeister8/octogon-home-app/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		if cfg.Storage.Driver == "sqlite" {
			db, err := database.OpenSQLite(cfg.Storage.SQLitePath)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "sqlite schema up to date at %s\n", cfg.Storage.SQLitePath)
			return nil
		}

		ctx := cmd.Context()
		pool, err := database.NewPool(ctx, cfg.Storage.DatabaseURL,
			int32(cfg.Storage.MaxConns), int32(cfg.Storage.MinConns))
		if err != nil {
			return err
		}
		defer pool.Close()

		applied, err := database.RunMigrations(ctx, pool, log)
		if err != nil {
			return err
		}

		if len(applied) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no pending migrations")
			return nil
		}
		for _, name := range applied {
			fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
