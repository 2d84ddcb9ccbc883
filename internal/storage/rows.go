package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/romangod6/sitemapgen/internal/models"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*models.Run, error) {
	var run models.Run
	var idStr, filesJSON string

	err := row.Scan(
		&idStr,
		&run.GeneratedOn,
		&run.BaseURL,
		&run.Mode,
		&run.ScannedCount,
		&run.SyntheticCount,
		&run.DuplicateCount,
		&filesJSON,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	run.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid run id %q: %w", idStr, err)
	}
	if err := json.Unmarshal([]byte(filesJSON), &run.Files); err != nil {
		return nil, fmt.Errorf("invalid files for run %s: %w", idStr, err)
	}

	return &run, nil
}

func scanRuns(rows *sql.Rows) ([]*models.Run, error) {
	runs := []*models.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
