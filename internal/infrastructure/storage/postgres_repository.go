package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/1933211129/news-summary/internal/domain"
	"github.com/1933211129/news-summary/internal/ports"
)

// PostgresRepository persists accepted records into Postgres for
// deduplication across batch runs and audit.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ProcessedStore = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// AlreadyProcessed returns a map with the URLs that already exist in storage.
func (r *PostgresRepository) AlreadyProcessed(ctx context.Context, urls []string) (map[string]bool, error) {
	if r.db == nil || len(urls) == 0 {
		return map[string]bool{}, nil
	}

	query, args, err := r.builder.
		Select("url").
		From("processed_records").
		Where(sq.Eq{"url": urls}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query processed: %w", err)
	}
	defer rows.Close()

	result := make(map[string]bool)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scan url: %w", err)
		}
		result[url] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}

// SaveProcessed upserts the accepted record snapshot. Records without a
// URL cannot be deduplicated and are not stored.
func (r *PostgresRepository) SaveProcessed(ctx context.Context, record domain.IntelligenceRecord) error {
	if r.db == nil || record.URL == nil || *record.URL == "" {
		return nil
	}

	query, args, err := r.builder.
		Insert("processed_records").
		Columns("url", "category", "title", "short_summary", "detailed_summary").
		Values(*record.URL, string(record.Category), record.Title, record.ShortSummary, record.DetailedSummary).
		Suffix(`ON CONFLICT (url) DO UPDATE
                SET category = EXCLUDED.category,
                    title = EXCLUDED.title,
                    short_summary = EXCLUDED.short_summary,
                    detailed_summary = EXCLUDED.detailed_summary,
                    updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert processed: %w", err)
	}

	return nil
}
