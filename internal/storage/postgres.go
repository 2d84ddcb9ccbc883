package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/romangod6/sitemapgen/internal/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
            id UUID PRIMARY KEY,
            generated_on VARCHAR(10) NOT NULL,
            base_url TEXT NOT NULL,
            mode VARCHAR(16) NOT NULL,
            scanned_count INTEGER NOT NULL,
            synthetic_count INTEGER NOT NULL,
            duplicate_count INTEGER NOT NULL,
            files JSONB NOT NULL,
            created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func (s *PostgresStore) RecordRun(ctx context.Context, run *models.Run) error {
	query := `
        INSERT INTO runs (id, generated_on, base_url, mode, scanned_count, synthetic_count, duplicate_count, files, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `

	filesJSON, err := json.Marshal(run.Files)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query,
		run.ID,
		run.GeneratedOn,
		run.BaseURL,
		run.Mode,
		run.ScannedCount,
		run.SyntheticCount,
		run.DuplicateCount,
		string(filesJSON),
		run.CreatedAt.UTC(),
	)

	return err
}

func (s *PostgresStore) GetRun(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	query := `
        SELECT id::text, generated_on, base_url, mode, scanned_count, synthetic_count, duplicate_count, files::text, created_at
        FROM runs
        WHERE id = $1
    `

	run, err := scanRun(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	return run, err
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit, offset int) ([]*models.Run, error) {
	query := `
        SELECT id::text, generated_on, base_url, mode, scanned_count, synthetic_count, duplicate_count, files::text, created_at
        FROM runs
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRuns(rows)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
