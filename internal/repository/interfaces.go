package repository

import (
	"context"

	"github.com/anshulm/prepdeck/internal/models"
)

// ReviewStore handles per-card scheduling state and the process-wide review
// counters.
type ReviewStore interface {
	// GetState returns nil (not an error) for a card that has never been
	// graded; callers materialize the default state lazily.
	GetState(ctx context.Context, cardID string) (*models.ReviewState, error)
	PutState(ctx context.Context, state models.ReviewState) error
	ListStates(ctx context.Context) (map[string]models.ReviewState, error)

	GetStats(ctx context.Context) (models.ReviewStats, error)
	PutStats(ctx context.Context, stats models.ReviewStats) error
}

// HistoryStore appends and lists the review log.
type HistoryStore interface {
	Insert(ctx context.Context, entry models.ReviewLog) (int64, error)
	List(ctx context.Context, filter models.ReviewLogFilter) ([]models.ReviewLog, error)
}

// SessionStore persists the single study-session record.
type SessionStore interface {
	// Get returns nil for an absent or unreadable record; corruption is
	// treated as "no prior session", never surfaced.
	Get(ctx context.Context) (*models.SessionRecord, error)
	Put(ctx context.Context, record models.SessionRecord) error
	Delete(ctx context.Context) error
}

// ProgressStore tracks coarse per-problem status.
type ProgressStore interface {
	Get(ctx context.Context, problemID string) (*models.ProblemProgress, error)
	Upsert(ctx context.Context, progress models.ProblemProgress) error
	List(ctx context.Context) ([]models.ProblemProgress, error)
}
