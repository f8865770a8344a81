package database

import (
	"context"
	"io"
	"log/slog"
	"path"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMigrationsListedInOrder(t *testing.T) {
	want := []string{"001_create_country_economy.sql", "002_create_inference_logs.sql"}

	for _, driver := range []string{DriverPostgres, DriverSQLite} {
		files, err := Migrations(driver)
		if err != nil {
			t.Fatalf("Migrations(%s) returned error: %v", driver, err)
		}
		var names []string
		for _, f := range files {
			names = append(names, path.Base(f))
		}
		if diff := cmp.Diff(want, names); diff != "" {
			t.Errorf("Migrations(%s) mismatch (-want +got):\n%s", driver, diff)
		}
	}

	if _, err := Migrations("mysql"); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	db := openTestSQLite(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := RunMigrations(ctx, db, DriverSQLite, logger); err != nil {
		t.Fatalf("second RunMigrations returned error: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("failed to count migrations: %v", err)
	}
	if count != 2 {
		t.Errorf("schema_migrations has %d rows, want 2", count)
	}

	for _, table := range []string{"country_economy", "inference_logs"} {
		var name string
		err := db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not created: %v", table, err)
		}
	}
}
