package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
)

//go:embed migrations
var migrationFiles embed.FS

// RunMigrations applies every pending embedded migration for driver. Applied
// files are recorded in schema_migrations and never run twice.
func RunMigrations(ctx context.Context, db *sql.DB, driver string, logger *slog.Logger) error {
	logger.Info("checking for pending database migrations", "driver", driver)

	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return err
	}

	files, err := Migrations(driver)
	if err != nil {
		return err
	}

	insert := "INSERT INTO schema_migrations (version) VALUES (" + placeholder(driver, 1) + ")"

	pendingCount := 0
	for _, file := range files {
		name := path.Base(file)
		if applied[name] {
			continue
		}

		pendingCount++
		logger.Info("applying migration", "file", name)

		content, err := fs.ReadFile(migrationFiles, file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for %s: %w", name, err)
		}

		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %w", name, err)
		}

		if _, err := tx.ExecContext(ctx, insert, name); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", name, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", name, err)
		}

		logger.Info("migration applied successfully", "file", name)
	}

	if pendingCount == 0 {
		logger.Info("no pending migrations found")
	} else {
		logger.Info("migrations completed", "count", pendingCount)
	}

	return nil
}

// Migrations lists the embedded migration files for driver in apply order.
func Migrations(driver string) ([]string, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	files, err := fs.Glob(migrationFiles, path.Join("migrations", driver, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to list migration files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func appliedMigrations(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}
