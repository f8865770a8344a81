package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/econbrief/econbrief/internal/models"
)

// InferenceLogRepository handles inference log database operations
type InferenceLogRepository struct {
	db     *sql.DB
	driver string
}

// NewInferenceLogRepository creates a new repository
func NewInferenceLogRepository(db *sql.DB, driver string) *InferenceLogRepository {
	return &InferenceLogRepository{db: db, driver: driver}
}

// Create logs a new inference call
func (r *InferenceLogRepository) Create(ctx context.Context, log models.InferenceLog) error {
	params := make([]string, 11)
	for i := range params {
		params[i] = placeholder(r.driver, i+1)
	}
	query := `
		INSERT INTO inference_logs (
			provider, model, operation, country, tokens_used, input_tokens, output_tokens,
			latency_ms, status, error_message, metadata
		) VALUES (` + strings.Join(params, ", ") + `)`

	var metadata sql.NullString
	if log.Metadata != "" {
		metadata = sql.NullString{String: log.Metadata, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		log.Provider,
		log.Model,
		log.Operation,
		log.Country,
		log.TokensUsed,
		log.InputTokens,
		log.OutputTokens,
		log.LatencyMs,
		log.Status,
		log.ErrorMessage,
		metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to insert inference log: %w", err)
	}
	return nil
}

// List retrieves inference logs, newest first, with optional filtering
func (r *InferenceLogRepository) List(ctx context.Context, query models.InferenceLogQuery) ([]models.InferenceLog, error) {
	sqlQuery := `
		SELECT id, provider, model, operation, country, tokens_used, input_tokens, output_tokens,
		       latency_ms, status, error_message, metadata, created_at
		FROM inference_logs
		WHERE 1=1
	`
	args := []interface{}{}
	argPos := 1

	filters := []struct {
		column string
		value  string
	}{
		{"operation", query.Operation},
		{"country", query.Country},
		{"status", query.Status},
	}
	for _, f := range filters {
		if f.value == "" {
			continue
		}
		sqlQuery += fmt.Sprintf(" AND %s = %s", f.column, placeholder(r.driver, argPos))
		args = append(args, f.value)
		argPos++
	}

	sqlQuery += " ORDER BY id DESC"

	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}
	sqlQuery += " LIMIT " + placeholder(r.driver, argPos)
	args = append(args, limit)
	argPos++

	if query.Offset > 0 {
		sqlQuery += " OFFSET " + placeholder(r.driver, argPos)
		args = append(args, query.Offset)
	}

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inference logs: %w", err)
	}
	defer rows.Close()

	logs := []models.InferenceLog{}
	for rows.Next() {
		var (
			log      models.InferenceLog
			country  sql.NullString
			metadata sql.NullString
		)

		err := rows.Scan(
			&log.ID,
			&log.Provider,
			&log.Model,
			&log.Operation,
			&country,
			&log.TokensUsed,
			&log.InputTokens,
			&log.OutputTokens,
			&log.LatencyMs,
			&log.Status,
			&log.ErrorMessage,
			&metadata,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inference log: %w", err)
		}

		log.Country = country.String
		log.Metadata = metadata.String
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

// GetStats retrieves aggregated statistics over every logged call
func (r *InferenceLogRepository) GetStats(ctx context.Context) (*models.InferenceLogStats, error) {
	query := `
		SELECT
			COUNT(*) as total_calls,
			COALESCE(SUM(tokens_used), 0) as total_tokens,
			COALESCE(SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END), 0) as successful_calls,
			COALESCE(SUM(CASE WHEN status = 'error' THEN 1 ELSE 0 END), 0) as failed_calls,
			COALESCE(AVG(latency_ms), 0) as avg_latency_ms
		FROM inference_logs
	`

	var stats models.InferenceLogStats
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalCalls,
		&stats.TotalTokens,
		&stats.SuccessfulCalls,
		&stats.FailedCalls,
		&stats.AvgLatencyMs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get inference stats: %w", err)
	}

	return &stats, nil
}
