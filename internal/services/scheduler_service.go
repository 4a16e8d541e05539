package services

import (
	"context"
	"time"

	"github.com/anshulm/prepdeck/internal/errors"
	"github.com/anshulm/prepdeck/internal/logger"
	"github.com/anshulm/prepdeck/internal/models"
	"github.com/anshulm/prepdeck/internal/repository"
	"github.com/anshulm/prepdeck/internal/srs"
)

// SchedulerService owns spaced-repetition scheduling: grading cards,
// answering "what is due", and the review counters.
type SchedulerService interface {
	// Grade applies a recall quality (0..3, clamped) to a card, creating
	// default state on first review, and persists the result immediately.
	Grade(ctx context.Context, cardID string, quality int) (models.ReviewState, error)
	// DueCardIDs returns the ids among cardIDs that are due now, in input
	// order. A card with no state is always due. limit <= 0 means no cap.
	DueCardIDs(ctx context.Context, cardIDs []string, limit int) ([]string, error)
	// DueSet is DueCardIDs without a cap, as a membership set.
	DueSet(ctx context.Context, cardIDs []string) (map[string]bool, error)
	Stats(ctx context.Context) (models.ReviewStats, error)
}

type schedulerService struct {
	store   repository.ReviewStore
	history repository.HistoryStore
	now     func() time.Time
}

// SchedulerOption configures a SchedulerService.
type SchedulerOption func(*schedulerService)

// WithClock substitutes the wall clock, for tests.
func WithClock(now func() time.Time) SchedulerOption {
	return func(s *schedulerService) {
		s.now = now
	}
}

// NewSchedulerService creates a SchedulerService.
func NewSchedulerService(store repository.ReviewStore, history repository.HistoryStore, opts ...SchedulerOption) SchedulerService {
	s := &schedulerService{
		store:   store,
		history: history,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *schedulerService) Grade(ctx context.Context, cardID string, quality int) (models.ReviewState, error) {
	log := logger.FromContext(ctx)

	if cardID == "" {
		return models.ReviewState{}, errors.NewValidationError("card_id", "must not be empty")
	}
	if clamped := srs.ClampQuality(quality); clamped != quality {
		log.Warn("quality %d out of range, clamping to %d", quality, clamped)
		quality = clamped
	}

	now := s.now()

	existing, err := s.store.GetState(ctx, cardID)
	if err != nil {
		return models.ReviewState{}, errors.NewInternalError(err)
	}
	state := srs.NewState(cardID)
	if existing != nil {
		state = *existing
	}

	state = srs.Apply(state, quality, now)
	log.Debug("graded card: card_id=%s, quality=%d, interval=%d, ease=%.2f",
		cardID, quality, state.IntervalDays, state.EaseFactor)

	if err := s.store.PutState(ctx, state); err != nil {
		return models.ReviewState{}, errors.NewInternalError(err)
	}

	if err := s.bumpCounters(ctx, now); err != nil {
		return models.ReviewState{}, errors.NewInternalError(err)
	}

	// History is best effort; a failed log entry must not fail the review.
	if _, err := s.history.Insert(ctx, models.ReviewLog{CardID: cardID, Quality: quality, ReviewedAt: now}); err != nil {
		log.Warn("failed to record review history: %v", err)
	}

	return state, nil
}

func (s *schedulerService) bumpCounters(ctx context.Context, now time.Time) error {
	stats, err := s.store.GetStats(ctx)
	if err != nil {
		return err
	}

	switch {
	case stats.TotalReviews == 0 || stats.LastReviewed.IsZero():
		stats.StreakDays = 1
	case sameDay(stats.LastReviewed, now):
		// Streak unchanged within a day.
	case sameDay(stats.LastReviewed.AddDate(0, 0, 1), now):
		stats.StreakDays++
	default:
		stats.StreakDays = 1
	}
	stats.TotalReviews++
	stats.LastReviewed = now

	return s.store.PutStats(ctx, stats)
}

func (s *schedulerService) DueCardIDs(ctx context.Context, cardIDs []string, limit int) ([]string, error) {
	states, err := s.store.ListStates(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	now := s.now()
	var due []string
	for _, id := range cardIDs {
		var state *models.ReviewState
		if st, ok := states[id]; ok {
			state = &st
		}
		if srs.Due(state, now) {
			due = append(due, id)
			if limit > 0 && len(due) >= limit {
				break
			}
		}
	}
	return due, nil
}

func (s *schedulerService) DueSet(ctx context.Context, cardIDs []string) (map[string]bool, error) {
	due, err := s.DueCardIDs(ctx, cardIDs, 0)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(due))
	for _, id := range due {
		set[id] = true
	}
	return set, nil
}

func (s *schedulerService) Stats(ctx context.Context) (models.ReviewStats, error) {
	stats, err := s.store.GetStats(ctx)
	if err != nil {
		return models.ReviewStats{}, errors.NewInternalError(err)
	}
	return stats, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
