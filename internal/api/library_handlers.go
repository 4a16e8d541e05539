package api

import (
	"net/http"

	"github.com/anshulm/prepdeck/internal/errors"
	"github.com/anshulm/prepdeck/internal/logger"
	"github.com/anshulm/prepdeck/internal/models"
)

func (s *Server) handleProblems(w http.ResponseWriter, r *http.Request) {
	snap := s.Library.Snapshot()

	problems := snap.Problems
	if category := r.URL.Query().Get("category"); category != "" {
		valid := false
		for _, c := range models.Categories {
			if string(c) == category {
				valid = true
			}
		}
		if !valid {
			handleError(w, r, errors.NewValidationError("category", "unknown category"))
			return
		}

		filtered := make([]models.Problem, 0, len(problems))
		for _, p := range problems {
			if string(p.Category) == category {
				filtered = append(filtered, p)
			}
		}
		problems = filtered
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"problems": problems,
		"patterns": snap.Patterns,
	})
}

func (s *Server) handleLibraryReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Jobs.EnqueueReload(); err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("content reload queued")
	respondJSON(w, r, http.StatusAccepted, map[string]any{"status": "queued"})
}
