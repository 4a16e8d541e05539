package api

import (
	"net/http"

	"github.com/anshulm/prepdeck/internal/models"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	overview, err := s.Stats.Overview(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, overview)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.Progress.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if progress == nil {
		progress = []models.ProblemProgress{}
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"progress": progress})
}
