package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/econbrief/econbrief/internal/models"
)

// ErrCountryNotFound is returned when no country_economy row matches a name.
var ErrCountryNotFound = errors.New("country not found")

// CountryRepository persists one CountryRecord per country name. Writes are
// upserts: the latest write for a name wins.
type CountryRepository interface {
	Get(ctx context.Context, name string) (models.CountryRecord, error)
	Upsert(ctx context.Context, record models.CountryRecord) error
	UpsertEconomy(ctx context.Context, data models.EconomyData) error
}

// Column order shared by the SELECT and full upsert statements.
var countryColumns = []string{
	models.FieldCountryName,
	models.FieldSurfaceArea,
	models.FieldExports,
	models.FieldTourists,
	models.FieldGDP,
	models.FieldPopulation,
	models.FieldImports,
	models.FieldUrbanPopulationGrowth,
	models.FieldUrbanPopulation,
	models.FieldGDPGrowth,
	models.FieldGDPPerCapita,
}

var economyColumns = []string{
	models.FieldCountryName,
	models.FieldImports,
	models.FieldUrbanPopulationGrowth,
	models.FieldExports,
	models.FieldPopulation,
	models.FieldUrbanPopulation,
	models.FieldGDP,
	models.FieldGDPGrowth,
	models.FieldGDPPerCapita,
}

type countryStatements struct {
	get           string
	upsert        string
	upsertEconomy string
}

func newCountryStatements(driver string) countryStatements {
	return countryStatements{
		get: fmt.Sprintf("SELECT %s FROM country_economy WHERE country_name = %s",
			strings.Join(countryColumns, ", "), placeholder(driver, 1)),
		upsert:        upsertStatement(driver, countryColumns),
		upsertEconomy: upsertStatement(driver, economyColumns),
	}
}

// upsertStatement builds an INSERT ... ON CONFLICT DO UPDATE over columns. The
// first column is the conflict key. Postgres and SQLite share the syntax.
func upsertStatement(driver string, columns []string) string {
	params := make([]string, len(columns))
	for i := range columns {
		params[i] = placeholder(driver, i+1)
	}

	updates := make([]string, 0, len(columns)-1)
	for _, col := range columns[1:] {
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", col, col))
	}

	return fmt.Sprintf(
		"INSERT INTO country_economy (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		strings.Join(columns, ", "),
		strings.Join(params, ", "),
		columns[0],
		strings.Join(updates, ", "),
	)
}

type sqlCountryRepository struct {
	db    *sql.DB
	stmts countryStatements
}

// Get returns the stored record for name or ErrCountryNotFound.
func (r *sqlCountryRepository) Get(ctx context.Context, name string) (models.CountryRecord, error) {
	var (
		record models.CountryRecord
		values [10]sql.NullFloat64
	)

	dest := []any{&record.CountryName}
	for i := range values {
		dest = append(dest, &values[i])
	}

	err := r.db.QueryRowContext(ctx, r.stmts.get, name).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CountryRecord{}, ErrCountryNotFound
	}
	if err != nil {
		return models.CountryRecord{}, fmt.Errorf("failed to get country %q: %w", name, err)
	}

	targets := []**float64{
		&record.SurfaceArea,
		&record.Exports,
		&record.Tourists,
		&record.GDP,
		&record.Population,
		&record.Imports,
		&record.UrbanPopulationGrowth,
		&record.UrbanPopulation,
		&record.GDPGrowth,
		&record.GDPPerCapita,
	}
	for i, target := range targets {
		if values[i].Valid {
			v := values[i].Float64
			*target = &v
		}
	}

	return record, nil
}

// Upsert inserts record or overwrites every column of the existing row.
func (r *sqlCountryRepository) Upsert(ctx context.Context, record models.CountryRecord) error {
	_, err := r.db.ExecContext(ctx, r.stmts.upsert,
		record.CountryName,
		nullFloat(record.SurfaceArea),
		nullFloat(record.Exports),
		nullFloat(record.Tourists),
		nullFloat(record.GDP),
		nullInt(record.Population),
		nullFloat(record.Imports),
		nullFloat(record.UrbanPopulationGrowth),
		nullInt(record.UrbanPopulation),
		nullFloat(record.GDPGrowth),
		nullFloat(record.GDPPerCapita),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert country %q: %w", record.CountryName, err)
	}
	return nil
}

// UpsertEconomy writes only the economic columns, leaving surface_area and
// tourists as they were (NULL for a new row).
func (r *sqlCountryRepository) UpsertEconomy(ctx context.Context, data models.EconomyData) error {
	_, err := r.db.ExecContext(ctx, r.stmts.upsertEconomy,
		data.CountryName,
		nullFloat(data.Imports),
		nullFloat(data.UrbanPopulationGrowth),
		nullFloat(data.Exports),
		nullInt(data.Population),
		nullInt(data.UrbanPopulation),
		nullFloat(data.GDP),
		nullFloat(data.GDPGrowth),
		nullFloat(data.GDPPerCapita),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert economy for %q: %w", data.CountryName, err)
	}
	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// nullInt rounds v for the BIGINT population columns.
func nullInt(v *float64) sql.NullInt64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return sql.NullInt64{}
	}
	rounded := math.Round(*v)
	// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
	if rounded >= math.MaxInt64 || rounded < math.MinInt64 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(rounded), Valid: true}
}

// PostgresCountryRepository stores country records in PostgreSQL.
type PostgresCountryRepository struct {
	sqlCountryRepository
}

// NewPostgresCountryRepository creates a repository over a lib/pq connection.
func NewPostgresCountryRepository(db *sql.DB) *PostgresCountryRepository {
	return &PostgresCountryRepository{sqlCountryRepository{db: db, stmts: newCountryStatements(DriverPostgres)}}
}

// SQLiteCountryRepository stores country records in a SQLite file.
type SQLiteCountryRepository struct {
	sqlCountryRepository
}

// NewSQLiteCountryRepository creates a repository over a modernc.org/sqlite connection.
func NewSQLiteCountryRepository(db *sql.DB) *SQLiteCountryRepository {
	return &SQLiteCountryRepository{sqlCountryRepository{db: db, stmts: newCountryStatements(DriverSQLite)}}
}

// NewCountryRepository picks the repository matching driver.
func NewCountryRepository(db *sql.DB, driver string) (CountryRepository, error) {
	switch driver {
	case DriverPostgres:
		return NewPostgresCountryRepository(db), nil
	case DriverSQLite:
		return NewSQLiteCountryRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}
