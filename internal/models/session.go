package models

// ItemKind distinguishes the heterogeneous study items in a session.
type ItemKind string

const (
	KindFlashcard ItemKind = "flashcard"
	KindMCQ       ItemKind = "mcq"
	KindSolve     ItemKind = "solve"
)

// ItemKinds lists every kind a session can include.
var ItemKinds = []ItemKind{KindFlashcard, KindMCQ, KindSolve}

// QualityMode selects how strictly content quality gates the session pool.
type QualityMode string

const (
	QualityHigh QualityMode = "high"
	QualityAll  QualityMode = "all"
)

// SessionFilters is the sole input governing which items enter the queue.
type SessionFilters struct {
	Kinds      []ItemKind  `json:"kinds"`
	Categories []Category  `json:"categories"`
	Pattern    string      `json:"pattern"`
	Difficulty string      `json:"difficulty"`
	DueOnly    bool        `json:"due_only"`
	Quality    QualityMode `json:"quality"`
}

// SessionRecord is the persisted shape of a study session: filters plus the
// queue traversal position. A reload resumes from this record.
type SessionRecord struct {
	Filters      SessionFilters `json:"filters"`
	QueueIDs     []string       `json:"queue_ids"`
	CurrentIndex int            `json:"current_index"`
}

// StudyItem is one entry in the session pool. Exactly one of the kind
// specific payloads is populated, matching Kind.
type StudyItem struct {
	ID           string     `json:"id"`
	Kind         ItemKind   `json:"kind"`
	Category     Category   `json:"category"`
	ProblemID    string     `json:"problem_id"`
	ProblemTitle string     `json:"problem_title"`
	Pattern      string     `json:"pattern"`
	Difficulty   Difficulty `json:"difficulty"`
	QualityScore int        `json:"quality_score"`
	QualityTier  string     `json:"quality_tier"`
	Due          bool       `json:"due"`

	// Flashcard payload.
	CardID string `json:"card_id,omitempty"`
	Front  string `json:"front,omitempty"`
	Back   string `json:"back,omitempty"`

	// MCQ payload.
	MCQID        string   `json:"mcq_id,omitempty"`
	Question     string   `json:"question,omitempty"`
	Options      []string `json:"options,omitempty"`
	CorrectIndex int      `json:"-"`
	Explanation  string   `json:"-"`

	// Solve payload.
	Description string `json:"description,omitempty"`
}
