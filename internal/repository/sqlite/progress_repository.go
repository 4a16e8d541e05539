package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/anshulm/prepdeck/internal/logger"
	"github.com/anshulm/prepdeck/internal/models"
	"github.com/anshulm/prepdeck/internal/repository"
)

type progressStore struct {
	db *sql.DB
}

// NewProgressStore creates a ProgressStore backed by SQLite.
func NewProgressStore(db *sql.DB) repository.ProgressStore {
	return &progressStore{db: db}
}

func (r *progressStore) Get(ctx context.Context, problemID string) (*models.ProblemProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_store")

	var p models.ProblemProgress
	err := r.db.QueryRowContext(ctx, `
SELECT problem_id, status, last_attempted
FROM problem_progress
WHERE problem_id = ?
`, problemID).Scan(&p.ProblemID, &p.Status, &p.LastAttempted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *progressStore) Upsert(ctx context.Context, p models.ProblemProgress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_store")
	log.Debug("updating progress: problem_id=%s, status=%s", p.ProblemID, p.Status)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO problem_progress (problem_id, status, last_attempted)
VALUES (?, ?, ?)
ON CONFLICT(problem_id) DO UPDATE SET
    status = excluded.status,
    last_attempted = excluded.last_attempted
`, p.ProblemID, p.Status, p.LastAttempted)
	if err != nil {
		log.Error("failed to update progress: %v", err)
	}
	return err
}

func (r *progressStore) List(ctx context.Context) ([]models.ProblemProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_store")

	rows, err := r.db.QueryContext(ctx, `
SELECT problem_id, status, last_attempted
FROM problem_progress
ORDER BY last_attempted DESC
`)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.ProblemProgress
	for rows.Next() {
		var p models.ProblemProgress
		if err := rows.Scan(&p.ProblemID, &p.Status, &p.LastAttempted); err != nil {
			log.Error("failed to scan progress row: %v", err)
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
