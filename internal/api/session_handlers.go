package api

import (
	"net/http"

	"github.com/anshulm/prepdeck/internal/logger"
	"github.com/anshulm/prepdeck/internal/models"
)

func (s *Server) handleSessionState(w http.ResponseWriter, r *http.Request) {
	view, err := s.Sessions.State(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

// filtersRequest is a partial filter update. Absent fields keep their
// current value.
type filtersRequest struct {
	Kinds      *[]models.ItemKind  `json:"kinds"`
	Categories *[]models.Category  `json:"categories"`
	Pattern    *string             `json:"pattern"`
	Difficulty *string             `json:"difficulty"`
	DueOnly    *bool               `json:"due_only"`
	Quality    *models.QualityMode `json:"quality"`
}

func (s *Server) handleSessionFilters(w http.ResponseWriter, r *http.Request) {
	var req filtersRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	current, err := s.Sessions.State(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	filters := current.Filters
	if req.Kinds != nil {
		filters.Kinds = *req.Kinds
	}
	if req.Categories != nil {
		filters.Categories = *req.Categories
	}
	if req.Pattern != nil {
		filters.Pattern = *req.Pattern
	}
	if req.Difficulty != nil {
		filters.Difficulty = *req.Difficulty
	}
	if req.DueOnly != nil {
		filters.DueOnly = *req.DueOnly
	}
	if req.Quality != nil {
		filters.Quality = *req.Quality
	}

	view, err := s.Sessions.SetFilters(r.Context(), filters)
	if err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("session filters updated, queue length %d", view.QueueLength)
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleSessionAdvance(w http.ResponseWriter, r *http.Request) {
	view, err := s.Sessions.Advance(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleSessionBack(w http.ResponseWriter, r *http.Request) {
	view, err := s.Sessions.Back(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleSessionShuffle(w http.ResponseWriter, r *http.Request) {
	view, err := s.Sessions.Reshuffle(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	view, err := s.Sessions.Reset(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleSessionReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quality int `json:"quality"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.Sessions.ReviewCurrent(r.Context(), req.Quality)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleSessionAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Option int `json:"option"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, view, err := s.Sessions.AnswerCurrent(r.Context(), req.Option)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"result":  result,
		"session": view,
	})
}

func (s *Server) handleSessionSolve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Known bool `json:"known"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.Sessions.SolveCurrent(r.Context(), req.Known)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}
