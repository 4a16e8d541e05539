package session

import (
	"fmt"

	"github.com/anshulm/prepdeck/internal/models"
	"github.com/anshulm/prepdeck/internal/quality"
)

// BuildItems expands a content snapshot into the heterogeneous study item
// pool: one flashcard item per anki card, one MCQ item per quiz card whose
// problem exists, and one solve item per problem that ships test cases.
// Quality scores are computed here so the pool carries them; dueCardIDs is
// the scheduler's current due set.
func BuildItems(problems []models.Problem, mcqs []models.MCQCard, dueCardIDs map[string]bool) []models.StudyItem {
	problemsByID := make(map[string]models.Problem, len(problems))
	for _, p := range problems {
		problemsByID[p.ID] = p
	}

	var items []models.StudyItem

	for _, p := range problems {
		difficulty := models.NormalizeDifficulty(p.Difficulty)
		for _, card := range p.AnkiCards {
			res := quality.Score(quality.Exercise{
				Kind:     models.KindFlashcard,
				Question: card.Front,
				Answer:   card.Back,
			})
			items = append(items, models.StudyItem{
				ID:           fmt.Sprintf("flashcard:%s:%s:%s", p.Category, p.ID, card.ID),
				Kind:         models.KindFlashcard,
				Category:     p.Category,
				ProblemID:    p.ID,
				ProblemTitle: p.Title,
				Pattern:      p.Pattern,
				Difficulty:   difficulty,
				QualityScore: res.Score,
				QualityTier:  string(res.Tier),
				Due:          dueCardIDs[card.ID],
				CardID:       card.ID,
				Front:        card.Front,
				Back:         card.Back,
			})
		}
	}

	for _, mcq := range mcqs {
		p, ok := problemsByID[mcq.ProblemID]
		if !ok {
			continue
		}
		res := quality.Score(quality.Exercise{
			Kind:     models.KindMCQ,
			Question: mcq.Question,
			Answer:   mcq.Explanation,
			Options:  mcq.Options,
		})
		items = append(items, models.StudyItem{
			ID:           fmt.Sprintf("mcq:%s:%s", p.Category, mcq.ID),
			Kind:         models.KindMCQ,
			Category:     p.Category,
			ProblemID:    p.ID,
			ProblemTitle: p.Title,
			Pattern:      p.Pattern,
			Difficulty:   models.NormalizeDifficulty(p.Difficulty),
			QualityScore: res.Score,
			QualityTier:  string(res.Tier),
			MCQID:        mcq.ID,
			Question:     mcq.Question,
			Options:      mcq.Options,
			CorrectIndex: mcq.CorrectIndex,
			Explanation:  mcq.Explanation,
		})
	}

	for _, p := range problems {
		if len(p.TestCases) == 0 {
			continue
		}
		res := quality.Score(quality.Exercise{
			Kind:     models.KindSolve,
			Question: p.Title,
			Answer:   p.Description,
		})
		items = append(items, models.StudyItem{
			ID:           fmt.Sprintf("solve:%s:%s", p.Category, p.ID),
			Kind:         models.KindSolve,
			Category:     p.Category,
			ProblemID:    p.ID,
			ProblemTitle: p.Title,
			Pattern:      p.Pattern,
			Difficulty:   models.NormalizeDifficulty(p.Difficulty),
			QualityScore: res.Score,
			QualityTier:  string(res.Tier),
			Description:  p.Description,
		})
	}

	return items
}

// DueProblems collects the problems that have at least one due flashcard.
// Non-flashcard items borrow this as their due signal.
func DueProblems(items []models.StudyItem) map[string]bool {
	due := make(map[string]bool)
	for _, item := range items {
		if item.Kind == models.KindFlashcard && item.Due {
			due[item.ProblemID] = true
		}
	}
	return due
}
