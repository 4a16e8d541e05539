package quality

import (
	"math"
	"regexp"
	"strings"

	"github.com/anshulm/prepdeck/internal/models"
)

// Tier buckets a numeric quality score.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Tier thresholds and the stricter cutoff used by the session's
// "high signal only" filter mode.
const (
	highThreshold   = 75
	mediumThreshold = 55

	// HighSignalCutoff gates items into a quality=high session.
	HighSignalCutoff = 72
)

// Exercise is the text payload the scorer inspects. For flashcards the
// question/answer are front/back; for MCQs the answer is the explanation and
// Options is populated.
type Exercise struct {
	Kind     models.ItemKind
	Question string
	Answer   string
	Options  []string
}

// Result is a derived, never-persisted quality verdict. Signals name the
// heuristics that fired, in evaluation order, so a score is auditable.
type Result struct {
	Score   int      `json:"score"`
	Tier    Tier     `json:"tier"`
	Signals []string `json:"signals"`
}

var (
	questionStarters = regexp.MustCompile(`(?i)^(what|why|how|when|where|which|explain|describe|compare)\b`)
	vagueQuestion    = regexp.MustCompile(`(?i)\b(stuff|thing|common operations|overview)\b`)
	noiseAnswer      = regexp.MustCompile(`(?i)(lorem ipsum|todo|tbd)`)
	bulletList       = regexp.MustCompile(`\n[-*]\s+`)
	numberedList     = regexp.MustCompile(`\d+\.\s+`)
)

// TierFor maps a score onto its tier.
func TierFor(score int) Tier {
	switch {
	case score >= highThreshold:
		return TierHigh
	case score >= mediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// Score rates an exercise's structural quality on a 0-100 scale. It is a
// pure function: the same payload always produces the same result. A short
// question reaches the high tier only when it reads as a prompt (an
// interrogative opener or a question mark); a bare fragment caps out in the
// medium band regardless of answer quality.
func Score(ex Exercise) Result {
	score := 50.0
	var signals []string

	add := func(delta float64, signal string) {
		score += delta
		signals = append(signals, signal)
	}

	question := strings.TrimSpace(ex.Question)
	answer := strings.TrimSpace(ex.Answer)

	if len(question) >= 18 && len(question) <= 200 {
		add(12, "clear-question-length")
	} else {
		add(-8, "question-length-issue")
	}

	if questionStarters.MatchString(question) || strings.Contains(question, "?") {
		add(6, "clear-prompt")
	} else {
		add(-4, "prompt-not-explicit")
	}

	if vagueQuestion.MatchString(question) {
		add(-8, "vague-wording")
	}

	switch {
	case len(answer) >= 120:
		add(25, "substantive-answer")
	case len(answer) >= 60:
		add(10, "adequate-answer")
	case len(answer) < 30:
		add(-18, "answer-too-short")
	default:
		add(-8, "answer-light")
	}

	if strings.Contains(answer, "```") || bulletList.MatchString(answer) || numberedList.MatchString(answer) {
		add(10, "structured-answer")
	}

	if strings.HasSuffix(answer, "...") {
		add(-10, "truncated-answer")
	}

	if noiseAnswer.MatchString(answer) {
		add(-12, "noisy-answer")
	}

	if ex.Kind == models.KindMCQ {
		if len(ex.Options) >= 3 && len(ex.Options) <= 5 {
			add(8, "mcq-option-count-good")
		} else {
			add(-14, "mcq-option-count-bad")
		}
		if uniqueOptions(ex.Options) {
			add(7, "mcq-options-unique")
		} else {
			add(-10, "mcq-duplicate-options")
		}
	}

	final := int(math.Round(score))
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}
	return Result{Score: final, Tier: TierFor(final), Signals: signals}
}

// uniqueOptions checks case- and whitespace-insensitive distinctness.
func uniqueOptions(options []string) bool {
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		key := strings.ToLower(strings.TrimSpace(opt))
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
	}
	return true
}
