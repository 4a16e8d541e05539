package services

import (
	"context"

	"github.com/anshulm/prepdeck/internal/session"
)

// StatsOverview aggregates review counters with the current content pool.
type StatsOverview struct {
	TotalReviews  int `json:"total_reviews"`
	StreakDays    int `json:"streak_days"`
	DueCards      int `json:"due_cards"`
	TotalCards    int `json:"total_cards"`
	TotalProblems int `json:"total_problems"`
	TotalItems    int `json:"total_items"`
}

// StatsService reports aggregate study statistics.
type StatsService interface {
	Overview(ctx context.Context) (StatsOverview, error)
}

type statsService struct {
	scheduler SchedulerService
	content   ContentSource
}

// NewStatsService creates a StatsService.
func NewStatsService(scheduler SchedulerService, source ContentSource) StatsService {
	return &statsService{scheduler: scheduler, content: source}
}

func (s *statsService) Overview(ctx context.Context) (StatsOverview, error) {
	stats, err := s.scheduler.Stats(ctx)
	if err != nil {
		return StatsOverview{}, err
	}

	snap := s.content.Snapshot()
	var cardIDs []string
	for _, p := range snap.Problems {
		for _, card := range p.AnkiCards {
			cardIDs = append(cardIDs, card.ID)
		}
	}
	due, err := s.scheduler.DueCardIDs(ctx, cardIDs, 0)
	if err != nil {
		return StatsOverview{}, err
	}

	pool := session.BuildItems(snap.Problems, snap.MCQs, nil)
	return StatsOverview{
		TotalReviews:  stats.TotalReviews,
		StreakDays:    stats.StreakDays,
		DueCards:      len(due),
		TotalCards:    len(cardIDs),
		TotalProblems: len(snap.Problems),
		TotalItems:    len(pool),
	}, nil
}
