package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/anshulm/prepdeck/internal/errors"
	"github.com/anshulm/prepdeck/internal/logger"
	"github.com/anshulm/prepdeck/internal/models"
)

func (s *Server) handleDueCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	limit := s.DueLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			handleError(w, r, errors.NewValidationError("limit", "must be a non-negative integer"))
			return
		}
		limit = n
	}

	snap := s.Library.Snapshot()
	var cardIDs []string
	for _, p := range snap.Problems {
		for _, card := range p.AnkiCards {
			cardIDs = append(cardIDs, card.ID)
		}
	}

	due, err := s.Scheduler.DueCardIDs(r.Context(), cardIDs, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("due check: %d of %d cards due", len(due), len(cardIDs))

	respondJSON(w, r, http.StatusOK, map[string]any{
		"due_card_ids": due,
		"total_cards":  len(cardIDs),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ReviewLogFilter{
		CardID: q.Get("card_id"),
		Limit:  50,
	}

	if v := q.Get("min_quality"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			handleError(w, r, errors.NewValidationError("min_quality", "must be an integer"))
			return
		}
		filter.MinQuality = &n
	}
	if v := q.Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			handleError(w, r, errors.NewValidationError("since", "must be an RFC 3339 timestamp"))
			return
		}
		filter.Since = &t
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			handleError(w, r, errors.NewValidationError("limit", "must be a positive integer"))
			return
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			handleError(w, r, errors.NewValidationError("offset", "must be a non-negative integer"))
			return
		}
		filter.Offset = n
	}

	entries, err := s.History.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if entries == nil {
		entries = []models.ReviewLog{}
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"history": entries})
}
