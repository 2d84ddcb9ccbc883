package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/romangod6/sitemapgen/internal/models"
)

var ErrRunNotFound = errors.New("run not found")

// Store keeps the history of generation runs.
type Store interface {
	Initialize() error
	Close() error

	RecordRun(ctx context.Context, run *models.Run) error
	GetRun(ctx context.Context, id uuid.UUID) (*models.Run, error)
	ListRuns(ctx context.Context, limit, offset int) ([]*models.Run, error)
}

// Open returns the store for driver, or nil when no driver is configured.
func Open(driver, url string) (Store, error) {
	switch driver {
	case "":
		return nil, nil
	case "sqlite3":
		store, err := NewSQLiteStore(url)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store, nil
	case "postgres":
		store, err := NewPostgresStore(url)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
