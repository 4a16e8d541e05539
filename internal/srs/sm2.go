package srs

import (
	"math"
	"time"

	"github.com/anshulm/prepdeck/internal/models"
)

// Recall quality grades. The four-button scale maps onto the SM-2 quality
// axis with 2 as the pass threshold.
const (
	QualityAgain = 0
	QualityHard  = 1
	QualityGood  = 2
	QualityEasy  = 3
)

const (
	// MinEaseFactor is the SM-2 floor; ease never drops below it.
	MinEaseFactor = 1.3
	// DefaultEaseFactor seeds a card's first review state.
	DefaultEaseFactor = 2.5
)

// NewState returns the default review state for a card that has never been
// graded. Such a card is always due.
func NewState(cardID string) models.ReviewState {
	return models.ReviewState{
		CardID:       cardID,
		EaseFactor:   DefaultEaseFactor,
		IntervalDays: 0,
		Repetitions:  0,
	}
}

// ClampQuality forces a grade into [QualityAgain, QualityEasy].
func ClampQuality(quality int) int {
	if quality < QualityAgain {
		return QualityAgain
	}
	if quality > QualityEasy {
		return QualityEasy
	}
	return quality
}

// Apply grades a card and returns the updated scheduling state using the
// SM-2 variant restricted to the 0..3 quality scale.
//
// On a lapse (quality < 2) the repetition streak resets and the interval
// drops back to one day. On a pass the interval follows the classic ladder:
// 1 day after the first pass, 6 after the second, then the previous interval
// scaled by the ease factor.
func Apply(state models.ReviewState, quality int, now time.Time) models.ReviewState {
	quality = ClampQuality(quality)

	ef := state.EaseFactor + 0.1 - float64(QualityEasy-quality)*(0.08+float64(QualityEasy-quality)*0.02)
	if ef < MinEaseFactor {
		ef = MinEaseFactor
	}

	if quality < QualityGood {
		state.Repetitions = 0
		state.IntervalDays = 1
	} else {
		state.Repetitions++
		switch state.Repetitions {
		case 1:
			state.IntervalDays = 1
		case 2:
			state.IntervalDays = 6
		default:
			state.IntervalDays = int(math.Round(float64(state.IntervalDays) * ef))
		}
	}

	state.EaseFactor = ef
	state.LastReview = now
	return state
}

// Due reports whether a card is due at the reference time. A nil state means
// the card has never been reviewed and is always due.
func Due(state *models.ReviewState, now time.Time) bool {
	if state == nil {
		return true
	}
	next := state.LastReview.AddDate(0, 0, state.IntervalDays)
	return !next.After(now)
}
