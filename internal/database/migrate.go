package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/Mikemeister8/octogon-home-app/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies the embedded .sql migrations that have not been
// recorded in schema_migrations yet, each in its own transaction.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) ([]string, error) {
	if err := createMigrationsTable(ctx, pool); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := getAppliedMigrations(ctx, pool)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	migrations, err := MigrationNames()
	if err != nil {
		return nil, err
	}

	var ran []string
	for _, migration := range migrations {
		if applied[migration] {
			log.Debug("migration already applied", "migration", migration)
			continue
		}

		log.Info("applying migration", "migration", migration)

		content, err := fs.ReadFile(migrationFiles, "migrations/"+migration)
		if err != nil {
			return ran, fmt.Errorf("failed to read migration %s: %w", migration, err)
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return ran, fmt.Errorf("failed to begin transaction for %s: %w", migration, err)
		}

		if _, err := tx.Exec(ctx, string(content)); err != nil {
			tx.Rollback(ctx)
			return ran, fmt.Errorf("failed to execute migration %s: %w", migration, err)
		}

		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, migration); err != nil {
			tx.Rollback(ctx)
			return ran, fmt.Errorf("failed to record migration %s: %w", migration, err)
		}

		if err := tx.Commit(ctx); err != nil {
			return ran, fmt.Errorf("failed to commit migration %s: %w", migration, err)
		}

		ran = append(ran, migration)
	}

	return ran, nil
}

// MigrationNames lists the embedded migrations in apply order
func MigrationNames() ([]string, error) {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func createMigrationsTable(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`
	_, err := pool.Exec(ctx, query)
	return err
}

func getAppliedMigrations(ctx context.Context, pool *pgxpool.Pool) (map[string]bool, error) {
	rows, err := pool.Query(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}

	return applied, rows.Err()
}
