package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/anshulm/prepdeck/internal/content"
	"github.com/anshulm/prepdeck/internal/errors"
	"github.com/anshulm/prepdeck/internal/jobs"
	"github.com/anshulm/prepdeck/internal/logger"
	"github.com/anshulm/prepdeck/internal/repository"
	"github.com/anshulm/prepdeck/internal/services"
)

// Server bundles the HTTP handlers with the services they call.
type Server struct {
	Sessions  services.SessionService
	Scheduler services.SchedulerService
	Stats     services.StatsService
	History   repository.HistoryStore
	Progress  repository.ProgressStore
	Library   *content.Library
	Jobs      jobs.JobQueue
	DB        *sql.DB
	DueLimit  int
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.NewBadRequestError("invalid JSON body")
	}
	return nil
}
