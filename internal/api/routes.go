package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", s.handleSessionState)
		r.Put("/session/filters", s.handleSessionFilters)
		r.Post("/session/advance", s.handleSessionAdvance)
		r.Post("/session/back", s.handleSessionBack)
		r.Post("/session/shuffle", s.handleSessionShuffle)
		r.Post("/session/reset", s.handleSessionReset)
		r.Post("/session/review", s.handleSessionReview)
		r.Post("/session/answer", s.handleSessionAnswer)
		r.Post("/session/solve", s.handleSessionSolve)

		r.Get("/cards/due", s.handleDueCards)
		r.Get("/stats", s.handleStats)
		r.Get("/history", s.handleHistory)
		r.Get("/progress", s.handleProgress)
		r.Get("/problems", s.handleProblems)
		r.Post("/library/reload", s.handleLibraryReload)
	})

	return r
}
