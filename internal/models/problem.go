package models

import "strings"

// Category identifies an interview-prep track.
type Category string

const (
	CategoryDSA Category = "dsa"
	CategoryHLD Category = "hld"
)

// Categories lists every known category in display order.
var Categories = []Category{CategoryDSA, CategoryHLD}

// Difficulty is the normalized problem difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

type Pattern struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type AnkiCard struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

type TestCase struct {
	Args        []any  `json:"args"`
	Expected    any    `json:"expected"`
	Description string `json:"description"`
}

type Problem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Category    Category   `json:"category"`
	Pattern     string     `json:"pattern"`
	Difficulty  string     `json:"difficulty"`
	Description string     `json:"description"`
	AnkiCards   []AnkiCard `json:"ankiCards"`
	TestCases   []TestCase `json:"testCases"`
}

type MCQCard struct {
	ID           string   `json:"id"`
	ProblemID    string   `json:"problemId"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// NormalizeDifficulty maps free-form difficulty strings from content files
// onto the three canonical buckets. Unknown values become Medium.
func NormalizeDifficulty(raw string) Difficulty {
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(lower, "easy"):
		return DifficultyEasy
	case strings.HasPrefix(lower, "hard"):
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}
