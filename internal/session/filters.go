package session

import (
	"github.com/anshulm/prepdeck/internal/models"
	"github.com/anshulm/prepdeck/internal/quality"
)

// FilterAll is the wildcard value for the pattern and difficulty filters.
const FilterAll = "all"

// DefaultFilters returns the filters a fresh session starts with.
func DefaultFilters() models.SessionFilters {
	return models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindFlashcard, models.KindMCQ},
		Categories: []models.Category{models.CategoryDSA},
		Pattern:    FilterAll,
		Difficulty: FilterAll,
		DueOnly:    false,
		Quality:    models.QualityHigh,
	}
}

// SanitizeFilters drops unknown kinds/categories and fills empty or missing
// fields from the defaults. Persisted filters pass through here on load so a
// malformed record can never produce an unusable session.
func SanitizeFilters(in models.SessionFilters) models.SessionFilters {
	defaults := DefaultFilters()

	var kinds []models.ItemKind
	for _, k := range in.Kinds {
		if k == models.KindFlashcard || k == models.KindMCQ || k == models.KindSolve {
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		kinds = defaults.Kinds
	}

	var categories []models.Category
	for _, c := range in.Categories {
		if c == models.CategoryDSA || c == models.CategoryHLD {
			categories = append(categories, c)
		}
	}
	if len(categories) == 0 {
		categories = defaults.Categories
	}

	out := models.SessionFilters{
		Kinds:      kinds,
		Categories: categories,
		Pattern:    in.Pattern,
		Difficulty: in.Difficulty,
		DueOnly:    in.DueOnly,
		Quality:    in.Quality,
	}
	if out.Pattern == "" {
		out.Pattern = FilterAll
	}
	if out.Difficulty == "" {
		out.Difficulty = FilterAll
	}
	if out.Quality != models.QualityAll {
		out.Quality = models.QualityHigh
	}
	return out
}

// Matches is the filtering predicate that decides whether an item enters the
// session pool under the given filters.
func Matches(item models.StudyItem, filters models.SessionFilters, dueProblems map[string]bool) bool {
	if !containsKind(filters.Kinds, item.Kind) {
		return false
	}
	if !containsCategory(filters.Categories, item.Category) {
		return false
	}
	if filters.Pattern != FilterAll && item.Pattern != filters.Pattern {
		return false
	}
	if filters.Difficulty != FilterAll && string(item.Difficulty) != filters.Difficulty {
		return false
	}
	if filters.Quality == models.QualityHigh && item.QualityScore < quality.HighSignalCutoff {
		return false
	}
	if filters.DueOnly {
		// Flashcards carry their own due flag; other kinds are due when the
		// parent problem has at least one due flashcard.
		if item.Kind == models.KindFlashcard {
			return item.Due
		}
		return dueProblems[item.ProblemID]
	}
	return true
}

// Filter applies Matches across a pool, preserving pool order.
func Filter(pool []models.StudyItem, filters models.SessionFilters, dueProblems map[string]bool) []models.StudyItem {
	var out []models.StudyItem
	for _, item := range pool {
		if Matches(item, filters, dueProblems) {
			out = append(out, item)
		}
	}
	return out
}

func containsKind(kinds []models.ItemKind, kind models.ItemKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func containsCategory(categories []models.Category, category models.Category) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
