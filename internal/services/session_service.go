package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/anshulm/prepdeck/internal/content"
	"github.com/anshulm/prepdeck/internal/errors"
	"github.com/anshulm/prepdeck/internal/logger"
	"github.com/anshulm/prepdeck/internal/models"
	"github.com/anshulm/prepdeck/internal/repository"
	"github.com/anshulm/prepdeck/internal/session"
	"github.com/anshulm/prepdeck/internal/srs"
)

// ContentSource is the read-only content collaborator. *content.Library
// satisfies it.
type ContentSource interface {
	Snapshot() content.Snapshot
}

// SessionView is the API-facing state of the study session.
type SessionView struct {
	Filters      models.SessionFilters `json:"filters"`
	QueueLength  int                   `json:"queue_length"`
	CurrentIndex int                   `json:"current_index"`
	PoolSize     int                   `json:"pool_size"`
	Current      *models.StudyItem     `json:"current"`
}

// AnswerResult reveals the outcome of an MCQ answer.
type AnswerResult struct {
	Correct      bool   `json:"correct"`
	CorrectIndex int    `json:"correct_index"`
	Explanation  string `json:"explanation"`
}

// SessionService drives the study-session queue: filtering, navigation, and
// the grading feedback loop into the scheduler.
type SessionService interface {
	State(ctx context.Context) (SessionView, error)
	SetFilters(ctx context.Context, filters models.SessionFilters) (SessionView, error)
	Advance(ctx context.Context) (SessionView, error)
	Back(ctx context.Context) (SessionView, error)
	Reshuffle(ctx context.Context) (SessionView, error)
	Reset(ctx context.Context) (SessionView, error)
	// ReviewCurrent grades the current flashcard and advances.
	ReviewCurrent(ctx context.Context, quality int) (SessionView, error)
	// AnswerCurrent resolves the current MCQ. Correctness is proxied onto
	// every flashcard of the parent problem (3 when correct, 0 otherwise).
	AnswerCurrent(ctx context.Context, option int) (AnswerResult, SessionView, error)
	// SolveCurrent records a self-report for the current solve prompt:
	// known=true grades the parent's flashcards easy and marks the problem
	// solved; known=false grades them hard and marks it attempted.
	SolveCurrent(ctx context.Context, known bool) (SessionView, error)
}

type sessionService struct {
	mu        sync.Mutex
	store     repository.SessionStore
	progress  repository.ProgressStore
	scheduler SchedulerService
	content   ContentSource
	rnd       *rand.Rand
	now       func() time.Time
}

// SessionOption configures a SessionService.
type SessionOption func(*sessionService)

// WithRand substitutes the shuffle source, for tests.
func WithRand(rnd *rand.Rand) SessionOption {
	return func(s *sessionService) {
		s.rnd = rnd
	}
}

// WithSessionClock substitutes the wall clock, for tests.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *sessionService) {
		s.now = now
	}
}

// NewSessionService creates a SessionService.
func NewSessionService(store repository.SessionStore, progress repository.ProgressStore, scheduler SchedulerService, source ContentSource, opts ...SessionOption) SessionService {
	s := &sessionService{
		store:     store,
		progress:  progress,
		scheduler: scheduler,
		content:   source,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// sessionState is one reconciled view of the world: the persisted record
// folded together with the current content snapshot and due set.
type sessionState struct {
	record    models.SessionRecord
	pool      []models.StudyItem
	itemsByID map[string]models.StudyItem
}

func (st *sessionState) current() *models.StudyItem {
	if len(st.record.QueueIDs) == 0 {
		return nil
	}
	item, ok := st.itemsByID[st.record.QueueIDs[st.record.CurrentIndex]]
	if !ok {
		return nil
	}
	return &item
}

func (s *sessionService) sync(ctx context.Context) (sessionState, error) {
	record := models.SessionRecord{Filters: session.DefaultFilters()}
	if saved, err := s.store.Get(ctx); err != nil {
		return sessionState{}, errors.NewInternalError(err)
	} else if saved != nil {
		record = *saved
	}
	record.Filters = session.SanitizeFilters(record.Filters)

	snap := s.content.Snapshot()
	var cardIDs []string
	for _, p := range snap.Problems {
		for _, card := range p.AnkiCards {
			cardIDs = append(cardIDs, card.ID)
		}
	}
	dueSet, err := s.scheduler.DueSet(ctx, cardIDs)
	if err != nil {
		return sessionState{}, err
	}

	pool := session.BuildItems(snap.Problems, snap.MCQs, dueSet)
	filtered := session.Filter(pool, record.Filters, session.DueProblems(pool))

	filteredIDs := make([]string, len(filtered))
	byID := make(map[string]models.StudyItem, len(pool))
	for i, item := range filtered {
		filteredIDs[i] = item.ID
	}
	for _, item := range pool {
		byID[item.ID] = item
	}

	q := session.Reconcile(session.Queue{IDs: record.QueueIDs, Index: record.CurrentIndex}, filteredIDs, s.rnd)
	record.QueueIDs = q.IDs
	record.CurrentIndex = q.Index

	return sessionState{record: record, pool: pool, itemsByID: byID}, nil
}

func (s *sessionService) persist(ctx context.Context, st sessionState) error {
	if err := s.store.Put(ctx, st.record); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *sessionService) view(st sessionState) SessionView {
	return SessionView{
		Filters:      st.record.Filters,
		QueueLength:  len(st.record.QueueIDs),
		CurrentIndex: st.record.CurrentIndex,
		PoolSize:     len(st.pool),
		Current:      st.current(),
	}
}

func (s *sessionService) State(ctx context.Context) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.sync(ctx)
	if err != nil {
		return SessionView{}, err
	}
	if err := s.persist(ctx, st); err != nil {
		return SessionView{}, err
	}
	return s.view(st), nil
}

func (s *sessionService) SetFilters(ctx context.Context, filters models.SessionFilters) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := logger.FromContext(ctx)

	st, err := s.sync(ctx)
	if err != nil {
		return SessionView{}, err
	}

	// A filter change reconciles rather than rebuilds: ids still admitted
	// keep their relative order and the cursor, ids that fell out are
	// pruned, newly admitted ids are appended.
	st.record.Filters = session.SanitizeFilters(filters)
	if err := s.persist(ctx, st); err != nil {
		return SessionView{}, err
	}

	log.Debug("filters updated, reconciling queue")
	st, err = s.sync(ctx)
	if err != nil {
		return SessionView{}, err
	}
	if err := s.persist(ctx, st); err != nil {
		return SessionView{}, err
	}
	return s.view(st), nil
}

func (s *sessionService) Advance(ctx context.Context) (SessionView, error) {
	return s.navigate(ctx, session.Advance)
}

func (s *sessionService) Back(ctx context.Context) (SessionView, error) {
	return s.navigate(ctx, session.Back)
}

func (s *sessionService) navigate(ctx context.Context, move func(session.Queue) session.Queue) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.sync(ctx)
	if err != nil {
		return SessionView{}, err
	}
	q := move(session.Queue{IDs: st.record.QueueIDs, Index: st.record.CurrentIndex})
	st.record.QueueIDs = q.IDs
	st.record.CurrentIndex = q.Index
	if err := s.persist(ctx, st); err != nil {
		return SessionView{}, err
	}
	return s.view(st), nil
}

func (s *sessionService) Reshuffle(ctx context.Context) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.sync(ctx)
	if err != nil {
		return SessionView{}, err
	}
	q := session.Reshuffle(session.Queue{IDs: st.record.QueueIDs, Index: st.record.CurrentIndex}, s.rnd)
	st.record.QueueIDs = q.IDs
	st.record.CurrentIndex = q.Index
	if err := s.persist(ctx, st); err != nil {
		return SessionView{}, err
	}
	return s.view(st), nil
}

func (s *sessionService) Reset(ctx context.Context) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := logger.FromContext(ctx)

	if err := s.store.Delete(ctx); err != nil {
		return SessionView{}, errors.NewInternalError(err)
	}
	log.Info("session reset to defaults")

	st, err := s.sync(ctx)
	if err != nil {
		return SessionView{}, err
	}
	if err := s.persist(ctx, st); err != nil {
		return SessionView{}, err
	}
	return s.view(st), nil
}

func (s *sessionService) ReviewCurrent(ctx context.Context, quality int) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.sync(ctx)
	if err != nil {
		return SessionView{}, err
	}
	item := st.current()
	if item == nil {
		return SessionView{}, errors.NewBadRequestError("no current item to review")
	}
	if item.Kind != models.KindFlashcard {
		return SessionView{}, errors.NewValidationError("kind", "current item is not a flashcard")
	}

	if _, err := s.scheduler.Grade(ctx, item.CardID, quality); err != nil {
		return SessionView{}, err
	}
	return s.advanceAndPersist(ctx, st)
}

func (s *sessionService) AnswerCurrent(ctx context.Context, option int) (AnswerResult, SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.sync(ctx)
	if err != nil {
		return AnswerResult{}, SessionView{}, err
	}
	item := st.current()
	if item == nil {
		return AnswerResult{}, SessionView{}, errors.NewBadRequestError("no current item to answer")
	}
	if item.Kind != models.KindMCQ {
		return AnswerResult{}, SessionView{}, errors.NewValidationError("kind", "current item is not a quiz question")
	}
	if option < 0 || option >= len(item.Options) {
		return AnswerResult{}, SessionView{}, errors.NewValidationError("option", "out of range")
	}

	correct := option == item.CorrectIndex
	quality := srs.QualityAgain
	if correct {
		quality = srs.QualityEasy
	}
	if err := s.gradeProblemCards(ctx, st, item.ProblemID, quality); err != nil {
		return AnswerResult{}, SessionView{}, err
	}

	result := AnswerResult{Correct: correct, CorrectIndex: item.CorrectIndex, Explanation: item.Explanation}
	view, err := s.advanceAndPersist(ctx, st)
	if err != nil {
		return AnswerResult{}, SessionView{}, err
	}
	return result, view, nil
}

func (s *sessionService) SolveCurrent(ctx context.Context, known bool) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := logger.FromContext(ctx)

	st, err := s.sync(ctx)
	if err != nil {
		return SessionView{}, err
	}
	item := st.current()
	if item == nil {
		return SessionView{}, errors.NewBadRequestError("no current item")
	}
	if item.Kind != models.KindSolve {
		return SessionView{}, errors.NewValidationError("kind", "current item is not a solve prompt")
	}

	quality := srs.QualityHard
	status := models.StatusAttempted
	if known {
		quality = srs.QualityEasy
		status = models.StatusSolved
	}
	if err := s.gradeProblemCards(ctx, st, item.ProblemID, quality); err != nil {
		return SessionView{}, err
	}

	// Status tracking is fire-and-forget; a failed write must not block the
	// session.
	if err := s.progress.Upsert(ctx, models.ProblemProgress{
		ProblemID:     item.ProblemID,
		Status:        status,
		LastAttempted: s.now(),
	}); err != nil {
		log.Warn("failed to update problem status: %v", err)
	}

	return s.advanceAndPersist(ctx, st)
}

// gradeProblemCards applies a proxy quality rating to every flashcard that
// belongs to the given problem. MCQs and solve prompts have no schedule of
// their own.
func (s *sessionService) gradeProblemCards(ctx context.Context, st sessionState, problemID string, quality int) error {
	for _, item := range st.pool {
		if item.Kind != models.KindFlashcard || item.ProblemID != problemID {
			continue
		}
		if _, err := s.scheduler.Grade(ctx, item.CardID, quality); err != nil {
			return err
		}
	}
	return nil
}

func (s *sessionService) advanceAndPersist(ctx context.Context, st sessionState) (SessionView, error) {
	q := session.Advance(session.Queue{IDs: st.record.QueueIDs, Index: st.record.CurrentIndex})
	st.record.QueueIDs = q.IDs
	st.record.CurrentIndex = q.Index
	if err := s.persist(ctx, st); err != nil {
		return SessionView{}, err
	}
	return s.view(st), nil
}
