package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/anshulm/prepdeck/internal/logger"
	"github.com/anshulm/prepdeck/internal/models"
	"github.com/anshulm/prepdeck/internal/repository"
)

type sessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a SessionStore backed by SQLite. Filters and the
// queue are stored as JSON columns; a record that fails to decode is treated
// as absent so a corrupt row can never break startup.
func NewSessionStore(db *sql.DB) repository.SessionStore {
	return &sessionStore{db: db}
}

func (r *sessionStore) Get(ctx context.Context) (*models.SessionRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("session_store")

	var filtersJSON, queueJSON string
	var index int
	err := r.db.QueryRowContext(ctx, `
SELECT filters, queue_ids, current_index
FROM study_sessions
WHERE id = 1
`).Scan(&filtersJSON, &queueJSON, &index)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session record: %v", err)
		return nil, err
	}

	var record models.SessionRecord
	if err := json.Unmarshal([]byte(filtersJSON), &record.Filters); err != nil {
		log.Warn("corrupt session filters, starting fresh: %v", err)
		return nil, nil
	}
	if err := json.Unmarshal([]byte(queueJSON), &record.QueueIDs); err != nil {
		log.Warn("corrupt session queue, starting fresh: %v", err)
		return nil, nil
	}
	if index < 0 {
		index = 0
	}
	record.CurrentIndex = index
	return &record, nil
}

func (r *sessionStore) Put(ctx context.Context, record models.SessionRecord) error {
	log := logger.FromContext(ctx).WithPrefix("session_store")
	log.Debug("saving session: queue_len=%d, index=%d", len(record.QueueIDs), record.CurrentIndex)

	filtersJSON, err := json.Marshal(record.Filters)
	if err != nil {
		return err
	}
	if record.QueueIDs == nil {
		record.QueueIDs = []string{}
	}
	queueJSON, err := json.Marshal(record.QueueIDs)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO study_sessions (id, filters, queue_ids, current_index, updated_at)
VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
    filters = excluded.filters,
    queue_ids = excluded.queue_ids,
    current_index = excluded.current_index,
    updated_at = excluded.updated_at
`, string(filtersJSON), string(queueJSON), record.CurrentIndex)
	if err != nil {
		log.Error("failed to save session record: %v", err)
	}
	return err
}

func (r *sessionStore) Delete(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("session_store")
	log.Debug("clearing session record")

	_, err := r.db.ExecContext(ctx, `DELETE FROM study_sessions WHERE id = 1`)
	if err != nil {
		log.Error("failed to clear session record: %v", err)
	}
	return err
}
