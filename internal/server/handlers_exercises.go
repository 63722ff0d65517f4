package server

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/liftlog/internal/models"
)

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.db.ListExercises(r.Context(), r.URL.Query().Get("muscle_group"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if exercises == nil {
		exercises = []models.Exercise{}
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	exercise, err := s.db.GetExercise(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var e models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if msg := validateExercise(&e); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	if err := s.db.InsertExercise(r.Context(), &e); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}

	var e models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	e.ID = id
	if msg := validateExercise(&e); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	if err := s.db.UpdateExercise(r.Context(), &e); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}

	// Fetch first so the image file can be cleaned up after the row goes.
	exercise, err := s.db.GetExercise(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.db.DeleteExercise(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	if exercise.ImageFile != "" {
		if err := s.images.Remove(exercise.ImageFile); err != nil {
			s.log.Warn("removing exercise image", "file", exercise.ImageFile, "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func validateExercise(e *models.Exercise) string {
	if e.Name == "" {
		return "name is required"
	}
	if !e.Type.Valid() {
		return "type must be one of MACHINE, FREE_WEIGHT, BODYWEIGHT"
	}
	return ""
}

func (s *Server) handleLastSet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	last := s.svc.LastSet(r.Context(), id)
	if last == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, last)
}

func (s *Server) handleAverageReps(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"average_reps": s.svc.AverageReps(r.Context(), id)})
}

func (s *Server) handleExerciseRecords(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	records := s.svc.RecordsForExercise(r.Context(), id)
	if records == nil {
		records = []models.PersonalRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
	}

	sets := s.svc.ExerciseHistory(r.Context(), id, limit)
	if sets == nil {
		sets = []models.ExerciseSet{}
	}
	writeJSON(w, http.StatusOK, sets)
}

// handleUploadImage accepts a multipart "image" part, stores it, and points
// the exercise at the new file. The previous file (if any) is removed.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}

	exercise, err := s.db.GetExercise(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing image part"})
		return
	}
	defer file.Close()

	name, err := s.images.Save(file, filepath.Ext(header.Filename))
	if err != nil {
		s.writeError(w, err)
		return
	}

	old := exercise.ImageFile
	exercise.ImageFile = name
	if err := s.db.UpdateExercise(r.Context(), exercise); err != nil {
		s.images.Remove(name)
		s.writeError(w, err)
		return
	}
	if old != "" {
		if err := s.images.Remove(old); err != nil {
			s.log.Warn("removing replaced image", "file", old, "error", err)
		}
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	f, err := s.images.Open(name)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "image not found"})
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		s.writeError(w, err)
		return
	}
	http.ServeContent(w, r, name, info.ModTime(), f)
}
