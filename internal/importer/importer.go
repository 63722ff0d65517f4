package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/storage"
)

// Stats tracks import progress.
type Stats struct {
	SessionsCreated  int
	SessionsMatched  int
	ExercisesCreated int
	SetsInserted     int
	RecordsCreated   int
}

// Importer reads a training history export and inserts its sessions, sets,
// and the records they imply into the store.
type Importer struct {
	db     *storage.DB
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer. With dryRun set, everything is parsed and
// evaluated but nothing is committed.
func New(db *storage.DB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, log: log, dryRun: dryRun}
}

// errDryRun forces a rollback after a dry run has gathered its stats.
var errDryRun = errors.New("dry run")

// Import parses the export and replays it oldest-first, so record detection
// sees history in the order it actually happened. Each session lands in its
// own transaction; sets falling on a day that already has a session join it.
//
// A dry run replays the whole export inside a single transaction that is
// rolled back at the end, so later sessions see earlier sessions' effects and
// the stats match what a real run would produce.
func (imp *Importer) Import(ctx context.Context, r io.Reader) (*Stats, error) {
	sessions, err := Parse(r)
	if err != nil {
		return &imp.stats, fmt.Errorf("parsing export: %w", err)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Date.Before(sessions[j].Date)
	})

	if imp.dryRun {
		err := imp.db.WithTx(ctx, func(tx *storage.Tx) error {
			for _, session := range sessions {
				if err := imp.importSession(ctx, tx, session); err != nil {
					return err
				}
			}
			return errDryRun
		})
		if err != nil && !errors.Is(err, errDryRun) {
			return &imp.stats, fmt.Errorf("dry run: %w", err)
		}
		return &imp.stats, nil
	}

	for _, session := range sessions {
		err := imp.db.WithTx(ctx, func(tx *storage.Tx) error {
			return imp.importSession(ctx, tx, session)
		})
		if err != nil {
			return &imp.stats, fmt.Errorf("importing session %q (%s): %w",
				session.Name, session.Date.Format("2006-01-02"), err)
		}
	}
	return &imp.stats, nil
}

func (imp *Importer) importSession(ctx context.Context, tx *storage.Tx, parsed models.HistorySession) error {
	day := parsed.Date
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	session, err := tx.FirstSessionIn(ctx, dayStart, dayEnd)
	switch {
	case err == nil:
		imp.stats.SessionsMatched++
	case errors.Is(err, storage.ErrNotFound):
		session = &models.TrainingSession{Date: dayStart, Name: parsed.Name}
		if err := tx.InsertSession(ctx, session); err != nil {
			return err
		}
		imp.stats.SessionsCreated++
	default:
		return err
	}

	for _, pe := range parsed.Exercises {
		exercise, err := imp.resolveExercise(ctx, tx, pe)
		if err != nil {
			return err
		}
		for _, ps := range pe.Sets {
			if err := imp.insertSet(ctx, tx, session.ID, exercise, parsed.Date, ps); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveExercise matches an export row against the library by exact name,
// creating a free-weight entry when the exercise is unknown.
func (imp *Importer) resolveExercise(ctx context.Context, tx *storage.Tx, pe models.HistoryExercise) (*models.Exercise, error) {
	exercise, err := tx.ExerciseByName(ctx, pe.Name)
	if err == nil {
		return exercise, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	exercise = &models.Exercise{
		Name:        pe.Name,
		MuscleGroup: pe.MuscleGroup,
		Type:        models.TypeFreeWeight,
		DefaultReps: 10,
	}
	if err := tx.InsertExercise(ctx, exercise); err != nil {
		return nil, err
	}
	imp.stats.ExercisesCreated++
	imp.log.Info("created exercise from export", "name", pe.Name, "muscle_group", pe.MuscleGroup)
	return exercise, nil
}

// insertSet mirrors the live recording path: next set number, record
// evaluation against what was stored so far, set insert, optional record
// insert. Timestamps come from the export, not the wall clock.
func (imp *Importer) insertSet(ctx context.Context, tx *storage.Tx, sessionID int64, exercise *models.Exercise, at time.Time, ps models.HistorySet) error {
	setNumber, err := tx.NextSetNumber(ctx, sessionID, exercise.ID)
	if err != nil {
		return err
	}
	isRecord, err := tx.HasLighterRecord(ctx, exercise.ID, ps.Reps, ps.WeightKg)
	if err != nil {
		return err
	}

	set := &models.ExerciseSet{
		SessionID:        sessionID,
		ExerciseID:       exercise.ID,
		SetNumber:        setNumber,
		Weight:           ps.WeightKg,
		Reps:             ps.Reps,
		IsPersonalRecord: isRecord,
		Timestamp:        at,
	}
	if err := tx.InsertSet(ctx, set); err != nil {
		return err
	}
	imp.stats.SetsInserted++

	if isRecord {
		record := &models.PersonalRecord{
			ExerciseID: exercise.ID,
			Reps:       ps.Reps,
			Weight:     ps.WeightKg,
			Date:       at,
			SetID:      set.ID,
		}
		if err := tx.InsertRecord(ctx, record); err != nil {
			return err
		}
		imp.stats.RecordsCreated++
	}
	return nil
}
