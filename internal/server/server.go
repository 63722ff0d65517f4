package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/liftlog/internal/images"
	"github.com/meltforce/liftlog/internal/storage"
	"github.com/meltforce/liftlog/internal/training"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	svc    *training.Service
	images *images.Store
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, svc *training.Service, imageStore *images.Store, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		svc:    svc,
		images: imageStore,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Write endpoints (API key required when configured)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))

		r.Post("/api/v1/sessions/today", s.handleResolveToday)
		r.Patch("/api/v1/sessions/{id}", s.handleUpdateSession)
		r.Post("/api/v1/sets", s.handleRecordSet)
		r.Delete("/api/v1/sets/{id}", s.handleDeleteSet)
		r.Post("/api/v1/records/pending/ack", s.handleAckPendingRecord)

		r.Post("/api/v1/exercises", s.handleCreateExercise)
		r.Put("/api/v1/exercises/{id}", s.handleUpdateExercise)
		r.Delete("/api/v1/exercises/{id}", s.handleDeleteExercise)
		r.Post("/api/v1/exercises/{id}/image", s.handleUploadImage)
	})

	// Read endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/sessions", s.handleQuerySessions)
	s.router.Get("/api/v1/sessions/{id}", s.handleGetSession)
	s.router.Get("/api/v1/sessions/{id}/sets", s.handleSessionSets)
	s.router.Get("/api/v1/sessions/{id}/sets/stream", s.handleStreamSessionSets)
	s.router.Get("/api/v1/records/pending", s.handlePendingRecord)

	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/exercises/{id}", s.handleGetExercise)
	s.router.Get("/api/v1/exercises/{id}/last-set", s.handleLastSet)
	s.router.Get("/api/v1/exercises/{id}/average-reps", s.handleAverageReps)
	s.router.Get("/api/v1/exercises/{id}/records", s.handleExerciseRecords)
	s.router.Get("/api/v1/exercises/{id}/history", s.handleExerciseHistory)
	s.router.Get("/api/v1/images/{name}", s.handleGetImage)
}
