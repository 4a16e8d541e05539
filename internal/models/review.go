package models

import "time"

// ReviewState is the per-card scheduling state maintained by the SM-2
// scheduler. It is created lazily on a card's first review and never
// deleted.
type ReviewState struct {
	CardID       string    `json:"card_id"`
	EaseFactor   float64   `json:"ease_factor"`
	IntervalDays int       `json:"interval_days"`
	Repetitions  int       `json:"repetitions"`
	LastReview   time.Time `json:"last_review"`
}

// ReviewStats holds the process-wide review counters: how many grades have
// ever been persisted and the current consecutive-day streak.
type ReviewStats struct {
	TotalReviews int       `json:"total_reviews"`
	StreakDays   int       `json:"streak_days"`
	LastReviewed time.Time `json:"last_reviewed"`
}

// ReviewLog is one historical grade, kept for inspection and stats.
type ReviewLog struct {
	ID         int64     `json:"id"`
	CardID     string    `json:"card_id"`
	Quality    int       `json:"quality"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// ReviewLogFilter narrows a review-log listing.
type ReviewLogFilter struct {
	CardID     string
	MinQuality *int
	Since      *time.Time
	Limit      int
	Offset     int
}

// ProblemStatus tracks coarse per-problem progress.
type ProblemStatus string

const (
	StatusUnseen    ProblemStatus = "unseen"
	StatusAttempted ProblemStatus = "attempted"
	StatusSolved    ProblemStatus = "solved"
)

type ProblemProgress struct {
	ProblemID     string        `json:"problem_id"`
	Status        ProblemStatus `json:"status"`
	LastAttempted time.Time     `json:"last_attempted"`
}
