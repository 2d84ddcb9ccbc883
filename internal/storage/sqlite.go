package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/romangod6/sitemapgen/internal/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
            id TEXT PRIMARY KEY,
            generated_on TEXT NOT NULL,
            base_url TEXT NOT NULL,
            mode TEXT NOT NULL,
            scanned_count INTEGER NOT NULL,
            synthetic_count INTEGER NOT NULL,
            duplicate_count INTEGER NOT NULL,
            files TEXT NOT NULL,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
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

func (s *SQLiteStore) RecordRun(ctx context.Context, run *models.Run) error {
	query := `
        INSERT INTO runs (id, generated_on, base_url, mode, scanned_count, synthetic_count, duplicate_count, files, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	filesJSON, err := json.Marshal(run.Files)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query,
		run.ID.String(),
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

func (s *SQLiteStore) GetRun(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	query := `
        SELECT id, generated_on, base_url, mode, scanned_count, synthetic_count, duplicate_count, files, created_at
        FROM runs
        WHERE id = ?
    `

	run, err := scanRun(s.db.QueryRowContext(ctx, query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	return run, err
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit, offset int) ([]*models.Run, error) {
	query := `
        SELECT id, generated_on, base_url, mode, scanned_count, synthetic_count, duplicate_count, files, created_at
        FROM runs
        ORDER BY created_at DESC
        LIMIT ? OFFSET ?
    `

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRuns(rows)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
