package training

import (
	"context"
	"errors"
	"time"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/storage"
)

// Read-side projections. These fail soft: a store error degrades to an empty
// result so displays stay up, and the failure is logged. No writes happen on
// this path.

// SessionSets returns a session's sets with exercise details, ordered by
// exercise name then set number.
func (s *Service) SessionSets(ctx context.Context, sessionID int64) []models.SetWithExercise {
	sets, err := s.db.SessionSetDetails(ctx, sessionID)
	if err != nil {
		s.log.Error("session sets query failed", "session_id", sessionID, "error", err)
		return nil
	}
	return sets
}

// SessionsBetween returns sessions dated within [start, end] inclusive,
// newest first.
func (s *Service) SessionsBetween(ctx context.Context, start, end time.Time) []models.TrainingSession {
	sessions, err := s.db.SessionsBetween(ctx, start, end)
	if err != nil {
		s.log.Error("sessions range query failed", "error", err)
		return nil
	}
	return sessions
}

// LastSet returns the most recent performance of an exercise, or nil when it
// has never been performed. Used to pre-fill weight and reps.
func (s *Service) LastSet(ctx context.Context, exerciseID int64) *models.LastSet {
	last, err := s.db.LastSetForExercise(ctx, exerciseID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("last set query failed", "exercise_id", exerciseID, "error", err)
		}
		return nil
	}
	return last
}

// AverageReps returns the historical average rep count for an exercise,
// defaulting to 10 when there is no history.
func (s *Service) AverageReps(ctx context.Context, exerciseID int64) int {
	avg, err := s.db.AverageReps(ctx, exerciseID)
	if err != nil {
		s.log.Error("average reps query failed", "exercise_id", exerciseID, "error", err)
		return 10
	}
	return avg
}

// RecordsForExercise returns the personal record rows of an exercise ordered
// by rep count.
func (s *Service) RecordsForExercise(ctx context.Context, exerciseID int64) []models.PersonalRecord {
	records, err := s.db.RecordsForExercise(ctx, exerciseID)
	if err != nil {
		s.log.Error("records query failed", "exercise_id", exerciseID, "error", err)
		return nil
	}
	return records
}

// ExerciseHistory returns the most recent sets of an exercise, newest first.
func (s *Service) ExerciseHistory(ctx context.Context, exerciseID int64, limit int) []models.ExerciseSet {
	sets, err := s.db.SetsForExercise(ctx, exerciseID, limit)
	if err != nil {
		s.log.Error("exercise history query failed", "exercise_id", exerciseID, "error", err)
		return nil
	}
	return sets
}

// WatchSessionSets emits the current SessionSets snapshot and a fresh one
// whenever the underlying sets or exercises change. The channel closes when
// ctx is cancelled. Each snapshot reflects a consistent read at emit time.
func (s *Service) WatchSessionSets(ctx context.Context, sessionID int64) <-chan []models.SetWithExercise {
	out := make(chan []models.SetWithExercise, 1)
	ticks, cancel := s.db.Notifier().Subscribe(storage.TableSets, storage.TableExercises)

	go func() {
		defer close(out)
		defer cancel()

		// Initial snapshot, then one per change tick.
		for {
			select {
			case out <- s.SessionSets(ctx, sessionID):
			case <-ctx.Done():
				return
			}

			select {
			case <-ticks:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
