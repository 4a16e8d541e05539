package services_test

import (
	"context"
	"database/sql"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/anshulm/prepdeck/internal/content"
	"github.com/anshulm/prepdeck/internal/models"
	"github.com/anshulm/prepdeck/internal/repository/sqlite"
	"github.com/anshulm/prepdeck/internal/services"
	"github.com/anshulm/prepdeck/internal/srs"
	"github.com/anshulm/prepdeck/internal/testutil"
	"github.com/anshulm/prepdeck/internal/testutil/mocks"
)

type staticContent struct {
	snap content.Snapshot
}

func (c *staticContent) Snapshot() content.Snapshot { return c.snap }

func longAnswer(topic string) string {
	return "The " + topic + " trades memory for lookup speed: a single pass stores each value's index, " +
		"and every element checks whether its complement was already seen, giving O(n) time and O(n) space."
}

func fixtureSnapshot() content.Snapshot {
	return content.Snapshot{
		Problems: []models.Problem{
			{
				ID:         "two-sum",
				Title:      "Two Sum",
				Category:   models.CategoryDSA,
				Pattern:    "arrays-hashing",
				Difficulty: "Easy",
				Description: "Given an array of integers and a target, return the indices of the two " +
					"numbers that add up to the target. Each input has exactly one solution.",
				AnkiCards: []models.AnkiCard{
					{ID: "ts-1", Front: "What is the time complexity of the hash map approach?", Back: longAnswer("hash map approach")},
					{ID: "ts-2", Front: "Why does a single pass with a seen-map suffice here?", Back: longAnswer("single pass")},
					{ID: "ts-low", Front: "Heap?", Back: "A tree."},
				},
				TestCases: []models.TestCase{
					{Args: []any{[]any{2.0, 7.0, 11.0}, 9.0}, Expected: []any{0.0, 1.0}, Description: "basic pair"},
				},
			},
			{
				ID:         "binary-search",
				Title:      "Binary Search",
				Category:   models.CategoryDSA,
				Pattern:    "binary-search",
				Difficulty: "Medium",
				AnkiCards: []models.AnkiCard{
					{ID: "bs-1", Front: "What invariant does the lo/hi window maintain?", Back: longAnswer("search window")},
					{ID: "bs-2", Front: "Why is mid computed as lo+(hi-lo)/2?", Back: longAnswer("midpoint formula")},
				},
			},
			{
				ID:         "consistent-hashing",
				Title:      "Consistent Hashing",
				Category:   models.CategoryHLD,
				Pattern:    "sharding",
				Difficulty: "Hard",
				AnkiCards: []models.AnkiCard{
					{ID: "ch-1", Front: "What problem do virtual nodes solve on the ring?", Back: longAnswer("virtual node layer")},
				},
			},
		},
		MCQs: []models.MCQCard{
			{
				ID:           "mcq-1",
				ProblemID:    "two-sum",
				Question:     "Which structure makes the one-pass solution possible?",
				Options:      []string{"Hash map", "Sorted array", "Linked list", "Min-heap"},
				CorrectIndex: 0,
				Explanation:  longAnswer("hash map"),
			},
		},
	}
}

type sessionEnv struct {
	db        *sql.DB
	svc       services.SessionService
	scheduler services.SchedulerService
}

func newSessionEnv(t *testing.T) *sessionEnv {
	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, db) })

	scheduler := services.NewSchedulerService(sqlite.NewReviewStore(db), sqlite.NewHistoryStore(db))
	svc := services.NewSessionService(
		sqlite.NewSessionStore(db),
		sqlite.NewProgressStore(db),
		scheduler,
		&staticContent{snap: fixtureSnapshot()},
		services.WithRand(rand.New(rand.NewSource(1))),
	)
	return &sessionEnv{db: db, svc: svc, scheduler: scheduler}
}

func (e *sessionEnv) savedRecord(t *testing.T) models.SessionRecord {
	record, err := sqlite.NewSessionStore(e.db).Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, record)
	return *record
}

func (e *sessionEnv) setFilters(t *testing.T, filters models.SessionFilters) services.SessionView {
	view, err := e.svc.SetFilters(context.Background(), filters)
	require.NoError(t, err)
	return view
}

func TestState_BuildsDefaultQueue(t *testing.T) {
	env := newSessionEnv(t)

	view, err := env.svc.State(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindFlashcard, models.KindMCQ},
		Categories: []models.Category{models.CategoryDSA},
		Pattern:    "all",
		Difficulty: "all",
		Quality:    models.QualityHigh,
	}, view.Filters)

	// Four strong dsa flashcards plus the quiz question. The low quality card,
	// the hld card, and the solve prompt stay out under the defaults.
	assert.Equal(t, 5, view.QueueLength)
	assert.Equal(t, 0, view.CurrentIndex)
	require.NotNil(t, view.Current)

	record := env.savedRecord(t)
	assert.ElementsMatch(t, []string{
		"flashcard:dsa:two-sum:ts-1",
		"flashcard:dsa:two-sum:ts-2",
		"flashcard:dsa:binary-search:bs-1",
		"flashcard:dsa:binary-search:bs-2",
		"mcq:dsa:mcq-1",
	}, record.QueueIDs)
}

func TestState_ResumesFromPersistedRecord(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	_, err := env.svc.State(ctx)
	require.NoError(t, err)
	_, err = env.svc.Advance(ctx)
	require.NoError(t, err)
	view, err := env.svc.Advance(ctx)
	require.NoError(t, err)
	saved := env.savedRecord(t)

	// A second service over the same store stands in for a process restart.
	resumed := services.NewSessionService(
		sqlite.NewSessionStore(env.db),
		sqlite.NewProgressStore(env.db),
		env.scheduler,
		&staticContent{snap: fixtureSnapshot()},
		services.WithRand(rand.New(rand.NewSource(99))),
	)
	resumedView, err := resumed.State(ctx)
	require.NoError(t, err)

	assert.Equal(t, view.CurrentIndex, resumedView.CurrentIndex)
	assert.Equal(t, saved.QueueIDs, env.savedRecord(t).QueueIDs, "stable content keeps the queue order intact")
	require.NotNil(t, resumedView.Current)
	assert.Equal(t, view.Current.ID, resumedView.Current.ID)
}

func TestSetFilters_RebuildsQueue(t *testing.T) {
	env := newSessionEnv(t)

	view := env.setFilters(t, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindSolve},
		Categories: []models.Category{models.CategoryDSA},
		Quality:    models.QualityAll,
	})

	require.Equal(t, 1, view.QueueLength, "only two-sum ships test cases")
	require.NotNil(t, view.Current)
	assert.Equal(t, models.KindSolve, view.Current.Kind)
	assert.Equal(t, "two-sum", view.Current.ProblemID)
}

func TestSetFilters_WideningPreservesQueueOrder(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	_, err := env.svc.State(ctx)
	require.NoError(t, err)
	view, err := env.svc.Advance(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, view.CurrentIndex)
	before := env.savedRecord(t)
	require.Len(t, before.QueueIDs, 5)

	// Widening categories admits the hld card; everything already queued
	// keeps its position and the cursor stays put.
	view = env.setFilters(t, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindFlashcard, models.KindMCQ},
		Categories: []models.Category{models.CategoryDSA, models.CategoryHLD},
	})
	after := env.savedRecord(t)

	require.Len(t, after.QueueIDs, 6)
	assert.Equal(t, before.QueueIDs, after.QueueIDs[:5], "surviving ids keep their relative order")
	assert.Equal(t, "flashcard:hld:consistent-hashing:ch-1", after.QueueIDs[5], "new ids are appended")
	assert.Equal(t, 1, view.CurrentIndex, "the cursor survives a widening")
}

func TestSetFilters_NarrowingPrunesInPlace(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	_, err := env.svc.State(ctx)
	require.NoError(t, err)
	before := env.savedRecord(t)
	require.Len(t, before.QueueIDs, 5)

	env.setFilters(t, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindFlashcard},
		Categories: []models.Category{models.CategoryDSA},
	})
	after := env.savedRecord(t)

	var kept []string
	for _, id := range before.QueueIDs {
		if strings.HasPrefix(id, "flashcard:") {
			kept = append(kept, id)
		}
	}
	assert.Equal(t, kept, after.QueueIDs, "pruning keeps the surviving order, no reshuffle")
}

func TestSetFilters_QualityAllAdmitsWeakCards(t *testing.T) {
	env := newSessionEnv(t)

	view := env.setFilters(t, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindFlashcard},
		Categories: []models.Category{models.CategoryDSA},
		Quality:    models.QualityAll,
	})
	assert.Equal(t, 5, view.QueueLength)
	assert.Contains(t, env.savedRecord(t).QueueIDs, "flashcard:dsa:two-sum:ts-low")

	view = env.setFilters(t, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindFlashcard},
		Categories: []models.Category{models.CategoryDSA},
		Quality:    models.QualityHigh,
	})
	assert.Equal(t, 4, view.QueueLength)
	assert.NotContains(t, env.savedRecord(t).QueueIDs, "flashcard:dsa:two-sum:ts-low")
}

func TestSetFilters_PatternAndDifficulty(t *testing.T) {
	env := newSessionEnv(t)

	view := env.setFilters(t, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindFlashcard},
		Categories: []models.Category{models.CategoryDSA},
		Pattern:    "binary-search",
	})
	record := env.savedRecord(t)
	assert.Equal(t, 2, view.QueueLength)
	for _, id := range record.QueueIDs {
		assert.True(t, strings.Contains(id, "binary-search"))
	}

	view = env.setFilters(t, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindFlashcard},
		Categories: []models.Category{models.CategoryDSA, models.CategoryHLD},
		Difficulty: "Hard",
	})
	assert.Equal(t, 1, view.QueueLength)
	assert.Equal(t, "ch-1", view.Current.CardID)
}

func TestReviewCurrent_GradesAndAdvances(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	env.setFilters(t, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindFlashcard},
		Categories: []models.Category{models.CategoryDSA},
	})
	before, err := env.svc.State(ctx)
	require.NoError(t, err)
	gradedCardID := before.Current.CardID

	view, err := env.svc.ReviewCurrent(ctx, srs.QualityEasy)
	require.NoError(t, err)
	assert.Equal(t, 1, view.CurrentIndex)

	state, err := sqlite.NewReviewStore(env.db).GetState(ctx, gradedCardID)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, 1, state.Repetitions)
	assert.Equal(t, 1, state.IntervalDays)
}

func TestReviewCurrent_DueOnlyDropsGradedCard(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	view := env.setFilters(t, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindFlashcard},
		Categories: []models.Category{models.CategoryDSA},
		DueOnly:    true,
	})
	require.Equal(t, 4, view.QueueLength, "never reviewed cards are all due")
	gradedCardID := view.Current.CardID

	_, err := env.svc.ReviewCurrent(ctx, srs.QualityEasy)
	require.NoError(t, err)

	// The graded card is scheduled a day out, so the next reconcile prunes it.
	view, err = env.svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, view.QueueLength)
	for _, id := range env.savedRecord(t).QueueIDs {
		assert.NotContains(t, id, gradedCardID)
	}
}

func TestReviewCurrent_RejectsNonFlashcard(t *testing.T) {
	env := newSessionEnv(t)

	env.setFilters(t, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindMCQ},
		Categories: []models.Category{models.CategoryDSA},
	})
	_, err := env.svc.ReviewCurrent(context.Background(), srs.QualityGood)
	assert.Error(t, err)
}

func TestAnswerCurrent_CorrectGradesParentCardsEasy(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	env.setFilters(t, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindMCQ},
		Categories: []models.Category{models.CategoryDSA},
	})

	result, _, err := env.svc.AnswerCurrent(ctx, 0)
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, 0, result.CorrectIndex)
	assert.NotEmpty(t, result.Explanation)

	// Correctness lands on every flashcard of the parent problem, weak ones
	// included.
	store := sqlite.NewReviewStore(env.db)
	for _, cardID := range []string{"ts-1", "ts-2", "ts-low"} {
		state, err := store.GetState(ctx, cardID)
		require.NoError(t, err)
		require.NotNil(t, state, "card %s should be graded", cardID)
		assert.Equal(t, 1, state.Repetitions)
	}
	state, err := store.GetState(ctx, "bs-1")
	require.NoError(t, err)
	assert.Nil(t, state, "unrelated problems stay untouched")
}

func TestAnswerCurrent_WrongAnswerLapsesParentCards(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	env.setFilters(t, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindMCQ},
		Categories: []models.Category{models.CategoryDSA},
	})

	result, _, err := env.svc.AnswerCurrent(ctx, 2)
	require.NoError(t, err)
	assert.False(t, result.Correct)

	state, err := sqlite.NewReviewStore(env.db).GetState(ctx, "ts-1")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, 0, state.Repetitions)
	assert.Equal(t, 1, state.IntervalDays)
}

func TestAnswerCurrent_RejectsOutOfRangeOption(t *testing.T) {
	env := newSessionEnv(t)

	env.setFilters(t, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindMCQ},
		Categories: []models.Category{models.CategoryDSA},
	})
	_, _, err := env.svc.AnswerCurrent(context.Background(), 7)
	assert.Error(t, err)
	_, _, err = env.svc.AnswerCurrent(context.Background(), -1)
	assert.Error(t, err)
}

func TestSolveCurrent_KnownMarksSolved(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	env.setFilters(t, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindSolve},
		Categories: []models.Category{models.CategoryDSA},
		Quality:    models.QualityAll,
	})

	_, err := env.svc.SolveCurrent(ctx, true)
	require.NoError(t, err)

	progress, err := sqlite.NewProgressStore(env.db).Get(ctx, "two-sum")
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, models.StatusSolved, progress.Status)

	state, err := sqlite.NewReviewStore(env.db).GetState(ctx, "ts-1")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, 1, state.Repetitions)
}

func TestSolveCurrent_UnknownMarksAttempted(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	env.setFilters(t, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindSolve},
		Categories: []models.Category{models.CategoryDSA},
		Quality:    models.QualityAll,
	})

	_, err := env.svc.SolveCurrent(ctx, false)
	require.NoError(t, err)

	progress, err := sqlite.NewProgressStore(env.db).Get(ctx, "two-sum")
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, models.StatusAttempted, progress.Status)

	state, err := sqlite.NewReviewStore(env.db).GetState(ctx, "ts-1")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, 0, state.Repetitions, "a miss counts as a lapse")
}

func TestNavigation_WrapsBothWays(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	view := env.setFilters(t, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindFlashcard},
		Categories: []models.Category{models.CategoryDSA},
	})
	require.Equal(t, 4, view.QueueLength)

	var err error
	for i := 0; i < 4; i++ {
		view, err = env.svc.Advance(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, view.CurrentIndex, "advancing past the end wraps to the start")

	view, err = env.svc.Back(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, view.CurrentIndex, "backing from the start wraps to the end")
}

func TestReshuffle_KeepsMembershipAndRewinds(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	_, err := env.svc.State(ctx)
	require.NoError(t, err)
	_, err = env.svc.Advance(ctx)
	require.NoError(t, err)
	before := env.savedRecord(t)

	view, err := env.svc.Reshuffle(ctx)
	require.NoError(t, err)
	after := env.savedRecord(t)

	assert.Equal(t, 0, view.CurrentIndex)
	assert.ElementsMatch(t, before.QueueIDs, after.QueueIDs)
}

func TestReset_RestoresDefaults(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	env.setFilters(t, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindSolve},
		Categories: []models.Category{models.CategoryHLD},
		Quality:    models.QualityAll,
	})

	view, err := env.svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.ItemKind{models.KindFlashcard, models.KindMCQ}, view.Filters.Kinds)
	assert.Equal(t, []models.Category{models.CategoryDSA}, view.Filters.Categories)
	assert.Equal(t, models.QualityHigh, view.Filters.Quality)
	assert.Equal(t, 5, view.QueueLength)
}

func TestState_StoreFailureSurfaces(t *testing.T) {
	env := newSessionEnv(t)

	store := new(mocks.SessionStoreMock)
	store.On("Get", mock.Anything).Return(nil, assert.AnError)

	svc := services.NewSessionService(
		store,
		sqlite.NewProgressStore(env.db),
		env.scheduler,
		&staticContent{snap: fixtureSnapshot()},
	)
	_, err := svc.State(context.Background())
	assert.Error(t, err)
	store.AssertExpectations(t)
}

func TestSolveCurrent_ProgressFailureDoesNotFailSolve(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	progress := new(mocks.ProgressStoreMock)
	progress.On("Upsert", mock.Anything, mock.AnythingOfType("models.ProblemProgress")).Return(assert.AnError)

	svc := services.NewSessionService(
		sqlite.NewSessionStore(env.db),
		progress,
		env.scheduler,
		&staticContent{snap: fixtureSnapshot()},
		services.WithRand(rand.New(rand.NewSource(1))),
	)
	_, err := svc.SetFilters(ctx, models.SessionFilters{
		Kinds:      []models.ItemKind{models.KindSolve},
		Categories: []models.Category{models.CategoryDSA},
		Quality:    models.QualityAll,
	})
	require.NoError(t, err)

	_, err = svc.SolveCurrent(ctx, true)
	require.NoError(t, err, "status tracking is best effort")
	progress.AssertExpectations(t)
}

func TestState_CorruptRecordFallsBackToDefaults(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	_, err := env.db.ExecContext(ctx,
		`INSERT INTO study_sessions (id, filters, queue_ids, current_index, updated_at)
		 VALUES (1, '{not json', '[[[', 3, ?)`, time.Now())
	require.NoError(t, err)

	view, err := env.svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.QualityHigh, view.Filters.Quality)
	assert.Equal(t, 5, view.QueueLength)
	assert.Equal(t, 0, view.CurrentIndex)
}
