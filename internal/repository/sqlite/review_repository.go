package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/anshulm/prepdeck/internal/logger"
	"github.com/anshulm/prepdeck/internal/models"
	"github.com/anshulm/prepdeck/internal/repository"
)

type reviewStore struct {
	db *sql.DB
}

// NewReviewStore creates a ReviewStore backed by SQLite.
func NewReviewStore(db *sql.DB) repository.ReviewStore {
	return &reviewStore{db: db}
}

func (r *reviewStore) GetState(ctx context.Context, cardID string) (*models.ReviewState, error) {
	log := logger.FromContext(ctx).WithPrefix("review_store")

	var s models.ReviewState
	err := r.db.QueryRowContext(ctx, `
SELECT card_id, ease_factor, interval_days, repetitions, last_review
FROM review_states
WHERE card_id = ?
`, cardID).Scan(&s.CardID, &s.EaseFactor, &s.IntervalDays, &s.Repetitions, &s.LastReview)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get review state: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *reviewStore) PutState(ctx context.Context, s models.ReviewState) error {
	log := logger.FromContext(ctx).WithPrefix("review_store")
	log.Debug("saving review state: card_id=%s, interval=%d, ease=%.2f", s.CardID, s.IntervalDays, s.EaseFactor)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_states (card_id, ease_factor, interval_days, repetitions, last_review)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(card_id) DO UPDATE SET
    ease_factor = excluded.ease_factor,
    interval_days = excluded.interval_days,
    repetitions = excluded.repetitions,
    last_review = excluded.last_review
`, s.CardID, s.EaseFactor, s.IntervalDays, s.Repetitions, s.LastReview)
	if err != nil {
		log.Error("failed to save review state: %v", err)
	}
	return err
}

func (r *reviewStore) ListStates(ctx context.Context) (map[string]models.ReviewState, error) {
	log := logger.FromContext(ctx).WithPrefix("review_store")

	rows, err := r.db.QueryContext(ctx, `
SELECT card_id, ease_factor, interval_days, repetitions, last_review
FROM review_states
`)
	if err != nil {
		log.Error("failed to list review states: %v", err)
		return nil, err
	}
	defer rows.Close()

	states := make(map[string]models.ReviewState)
	for rows.Next() {
		var s models.ReviewState
		if err := rows.Scan(&s.CardID, &s.EaseFactor, &s.IntervalDays, &s.Repetitions, &s.LastReview); err != nil {
			log.Error("failed to scan review state row: %v", err)
			return nil, err
		}
		states[s.CardID] = s
	}
	log.Debug("loaded %d review states", len(states))
	return states, rows.Err()
}

func (r *reviewStore) GetStats(ctx context.Context) (models.ReviewStats, error) {
	log := logger.FromContext(ctx).WithPrefix("review_store")

	var stats models.ReviewStats
	var last sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT total_reviews, streak_days, last_reviewed
FROM review_stats
WHERE id = 1
`).Scan(&stats.TotalReviews, &stats.StreakDays, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ReviewStats{}, nil
	}
	if err != nil {
		log.Error("failed to get review stats: %v", err)
		return models.ReviewStats{}, err
	}
	if last.Valid {
		stats.LastReviewed = last.Time
	}
	return stats, nil
}

func (r *reviewStore) PutStats(ctx context.Context, stats models.ReviewStats) error {
	log := logger.FromContext(ctx).WithPrefix("review_store")
	log.Debug("saving review stats: total=%d, streak=%d", stats.TotalReviews, stats.StreakDays)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_stats (id, total_reviews, streak_days, last_reviewed)
VALUES (1, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    total_reviews = excluded.total_reviews,
    streak_days = excluded.streak_days,
    last_reviewed = excluded.last_reviewed
`, stats.TotalReviews, stats.StreakDays, stats.LastReviewed)
	if err != nil {
		log.Error("failed to save review stats: %v", err)
	}
	return err
}
