package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anshulm/prepdeck/internal/models"
	"github.com/anshulm/prepdeck/internal/session"
)

func poolItem(id string, kind models.ItemKind, category models.Category, pattern string, difficulty models.Difficulty, score int) models.StudyItem {
	return models.StudyItem{
		ID:           id,
		Kind:         kind,
		Category:     category,
		ProblemID:    "p-" + id,
		Pattern:      pattern,
		Difficulty:   difficulty,
		QualityScore: score,
	}
}

func TestSanitizeFilters_FillsDefaults(t *testing.T) {
	out := session.SanitizeFilters(models.SessionFilters{})

	assert.Equal(t, session.DefaultFilters(), out)
}

func TestSanitizeFilters_DropsUnknownValues(t *testing.T) {
	out := session.SanitizeFilters(models.SessionFilters{
		Kinds:      []models.ItemKind{"bogus", models.KindSolve},
		Categories: []models.Category{"nope", models.CategoryHLD},
		Pattern:    "graphs",
		Difficulty: "Hard",
		Quality:    "weird",
	})

	assert.Equal(t, []models.ItemKind{models.KindSolve}, out.Kinds)
	assert.Equal(t, []models.Category{models.CategoryHLD}, out.Categories)
	assert.Equal(t, "graphs", out.Pattern)
	assert.Equal(t, "Hard", out.Difficulty)
	assert.Equal(t, models.QualityHigh, out.Quality, "unknown quality mode falls back to high")
}

func TestFilter_CategoryAndPatternSetEquality(t *testing.T) {
	pool := []models.StudyItem{
		poolItem("1", models.KindFlashcard, models.CategoryDSA, "arrays", models.DifficultyEasy, 90),
		poolItem("2", models.KindFlashcard, models.CategoryDSA, "graphs", models.DifficultyEasy, 90),
		poolItem("3", models.KindFlashcard, models.CategoryHLD, "arrays", models.DifficultyEasy, 90),
		poolItem("4", models.KindFlashcard, models.CategoryDSA, "arrays", models.DifficultyHard, 90),
		poolItem("5", models.KindFlashcard, models.CategoryHLD, "caching", models.DifficultyMedium, 90),
		poolItem("6", models.KindFlashcard, models.CategoryDSA, "trees", models.DifficultyMedium, 90),
	}

	filters := session.SanitizeFilters(models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindFlashcard},
		Categories: []models.Category{models.CategoryDSA},
		Pattern:    "arrays",
		Quality:    models.QualityAll,
	})
	got := session.Filter(pool, filters, nil)

	var ids []string
	for _, item := range got {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"1", "4"}, ids, "exactly the items matching category AND pattern")
}

func TestFilter_QualityHighUsesCutoff(t *testing.T) {
	pool := []models.StudyItem{
		poolItem("lo", models.KindFlashcard, models.CategoryDSA, "arrays", models.DifficultyEasy, 71),
		poolItem("hi", models.KindFlashcard, models.CategoryDSA, "arrays", models.DifficultyEasy, 72),
	}
	filters := session.DefaultFilters()

	got := session.Filter(pool, filters, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "hi", got[0].ID)
}

func TestFilter_DueOnly(t *testing.T) {
	dueCard := poolItem("due-card", models.KindFlashcard, models.CategoryDSA, "arrays", models.DifficultyEasy, 90)
	dueCard.Due = true
	staleCard := poolItem("stale-card", models.KindFlashcard, models.CategoryDSA, "arrays", models.DifficultyEasy, 90)
	mcq := poolItem("quiz", models.KindMCQ, models.CategoryDSA, "arrays", models.DifficultyEasy, 90)
	mcq.ProblemID = "p-due-card"

	filters := session.SanitizeFilters(models.SessionFilters{
		Kinds:   []models.ItemKind{models.KindFlashcard, models.KindMCQ},
		DueOnly: true,
		Quality: models.QualityAll,
	})
	dueProblems := map[string]bool{"p-due-card": true}

	got := session.Filter([]models.StudyItem{dueCard, staleCard, mcq}, filters, dueProblems)

	var ids []string
	for _, item := range got {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"due-card", "quiz"}, ids,
		"due flashcards pass directly; MCQs pass via their problem's due flashcards")
}

func TestFilter_DifficultyFilter(t *testing.T) {
	pool := []models.StudyItem{
		poolItem("easy", models.KindFlashcard, models.CategoryDSA, "arrays", models.DifficultyEasy, 90),
		poolItem("hard", models.KindFlashcard, models.CategoryDSA, "arrays", models.DifficultyHard, 90),
	}
	filters := session.SanitizeFilters(models.SessionFilters{
		Difficulty: "Hard",
		Quality:    models.QualityAll,
	})

	got := session.Filter(pool, filters, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "hard", got[0].ID)
}
