package training

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/storage"
)

// DefaultSessionName is the display name given to lazily created sessions.
const DefaultSessionName = "Today's Training"

// Service is the daily-session and set-recording engine. All writes run in
// single immediate transactions on the store, which serializes concurrent
// resolve/record calls without any in-process locking.
type Service struct {
	db  *storage.DB
	log *slog.Logger
	now func() time.Time

	mu      sync.Mutex
	pending *models.PersonalRecord
}

// NewService creates the engine around an explicitly constructed store.
func NewService(db *storage.DB, log *slog.Logger) *Service {
	return &Service{db: db, log: log, now: time.Now}
}

// ResolveTodaySession finds or creates the unique session for the current
// local calendar day. Repeated calls within the same day return the same
// session; at most one row is ever created per day.
func (s *Service) ResolveTodaySession(ctx context.Context) (*models.TrainingSession, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var session *models.TrainingSession
	err := s.db.WithTx(ctx, func(tx *storage.Tx) error {
		existing, err := tx.FirstSessionIn(ctx, dayStart, dayEnd)
		if err == nil {
			session = existing
			return nil
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}

		session = &models.TrainingSession{
			Date: dayStart,
			Name: DefaultSessionName,
		}
		return tx.InsertSession(ctx, session)
	})
	if err != nil {
		return nil, wrapStorage("resolving today's session", err)
	}
	return session, nil
}

// RecordSet appends a set to a session/exercise pair. The set number, record
// evaluation, set insert, and the optional record insert all happen in one
// transaction, so either the whole unit lands or nothing does.
//
// When the set achieves a new personal record, the record is additionally
// placed in the pending-notification slot for TakePendingRecord.
func (s *Service) RecordSet(ctx context.Context, sessionID, exerciseID int64, weight float64, reps int) (*models.ExerciseSet, error) {
	if reps <= 0 {
		return nil, &ValidationError{Field: "reps", Reason: "must be positive"}
	}
	if weight < 0 {
		return nil, &ValidationError{Field: "weight", Reason: "must not be negative"}
	}

	var (
		set    *models.ExerciseSet
		record *models.PersonalRecord
	)
	err := s.db.WithTx(ctx, func(tx *storage.Tx) error {
		if _, err := tx.GetSession(ctx, sessionID); err != nil {
			return err
		}
		exercise, err := tx.GetExercise(ctx, exerciseID)
		if err != nil {
			return err
		}
		if weight == 0 && exercise.Type != models.TypeBodyweight {
			return &ValidationError{Field: "weight", Reason: "required for weighted exercises"}
		}

		setNumber, err := tx.NextSetNumber(ctx, sessionID, exerciseID)
		if err != nil {
			return err
		}

		isRecord, err := tx.HasLighterRecord(ctx, exerciseID, reps, weight)
		if err != nil {
			return err
		}

		now := s.now()
		set = &models.ExerciseSet{
			SessionID:        sessionID,
			ExerciseID:       exerciseID,
			SetNumber:        setNumber,
			Weight:           weight,
			Reps:             reps,
			IsPersonalRecord: isRecord,
			Timestamp:        now,
		}
		if err := tx.InsertSet(ctx, set); err != nil {
			return err
		}

		if isRecord {
			record = &models.PersonalRecord{
				ExerciseID: exerciseID,
				Reps:       reps,
				Weight:     weight,
				Date:       now,
				SetID:      set.ID,
			}
			if err := tx.InsertRecord(ctx, record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapStorage("recording set", err)
	}

	if record != nil {
		s.setPendingRecord(record)
		s.log.Info("new personal record",
			"exercise_id", exerciseID, "reps", reps, "weight", weight)
	}
	return set, nil
}

// IsNewRecord reports whether an attempt at the given exercise and exact rep
// count would beat the stored record. With no stored record for the pair it
// returns false: only improvement over an existing entry counts.
func (s *Service) IsNewRecord(ctx context.Context, exerciseID int64, reps int, weight float64) (bool, error) {
	ok, err := s.db.HasLighterRecord(ctx, exerciseID, reps, weight)
	if err != nil {
		return false, wrapStorage("evaluating record", err)
	}
	return ok, nil
}

// DeleteSet removes a set. Remaining sets keep their numbers, and the next
// recorded set continues from the highest surviving number.
func (s *Service) DeleteSet(ctx context.Context, setID int64) error {
	return wrapStorage("deleting set", s.db.DeleteSet(ctx, setID))
}

// RenameSession updates a session's display name.
func (s *Service) RenameSession(ctx context.Context, sessionID int64, name string) error {
	return wrapStorage("renaming session", s.db.RenameSession(ctx, sessionID, name))
}

// UpdateSessionNotes updates a session's free-text notes.
func (s *Service) UpdateSessionNotes(ctx context.Context, sessionID int64, notes string) error {
	return wrapStorage("updating session notes", s.db.UpdateSessionNotes(ctx, sessionID, notes))
}

// UpdateSession applies name and/or notes changes as one write; nil fields
// are left unchanged.
func (s *Service) UpdateSession(ctx context.Context, sessionID int64, name, notes *string) error {
	return wrapStorage("updating session", s.db.UpdateSession(ctx, sessionID, name, notes))
}

func (s *Service) setPendingRecord(r *models.PersonalRecord) {
	s.mu.Lock()
	s.pending = r
	s.mu.Unlock()
}

// TakePendingRecord consumes the one-shot "new record achieved" notification.
// It returns nil when there is nothing pending; a second call after a take
// also returns nil. The persisted record rows are unaffected.
func (s *Service) TakePendingRecord() *models.PersonalRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.pending
	s.pending = nil
	return r
}

// PeekPendingRecord returns the pending notification without consuming it.
func (s *Service) PeekPendingRecord() *models.PersonalRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}
