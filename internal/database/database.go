package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	_ "modernc.org/sqlite"
)

// Supported values of DATABASE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds database connection configuration.
type Config struct {
	Driver             string
	URL                string
	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
	ConnectTimeout     time.Duration
}

// DefaultConfig returns sensible defaults for database configuration.
func DefaultConfig() Config {
	return Config{
		Driver:             DriverPostgres,
		MaxConnections:     25,
		MaxIdleConnections: 5,
		ConnMaxLifetime:    5 * time.Minute,
		ConnectTimeout:     10 * time.Second,
	}
}

// Connect opens the configured database and pings it. For sqlite the URL is
// the database file path (or ":memory:").
func Connect(ctx context.Context, cfg Config) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	driver := cfg.Driver
	if driver == "" {
		driver = DriverPostgres
	}

	var (
		db  *sql.DB
		err error
	)
	switch driver {
	case DriverPostgres:
		db, err = sql.Open("postgres", cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		db.SetMaxOpenConns(cfg.MaxConnections)
		db.SetMaxIdleConns(cfg.MaxIdleConnections)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	case DriverSQLite:
		db, err = sql.Open("sqlite", cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		// One writer; also keeps a ":memory:" database alive on a single connection.
		db.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// HealthCheck performs a database health check.
func HealthCheck(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var result int
	err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	if result != 1 {
		return fmt.Errorf("unexpected health check result: %d", result)
	}

	return nil
}

// Stats returns connection pool statistics.
func Stats(db *sql.DB) map[string]interface{} {
	stats := db.Stats()
	return map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
}

// placeholder returns the n-th (1-based) bind parameter for driver.
func placeholder(driver string, n int) string {
	if driver == DriverPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
