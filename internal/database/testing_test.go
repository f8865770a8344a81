package database

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
)

// openTestSQLite returns a migrated in-memory database.
func openTestSQLite(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	cfg := DefaultConfig()
	cfg.Driver = DriverSQLite
	cfg.URL = ":memory:"
	db, err := Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := RunMigrations(ctx, db, DriverSQLite, logger); err != nil {
		t.Fatalf("RunMigrations returned error: %v", err)
	}
	return db
}
