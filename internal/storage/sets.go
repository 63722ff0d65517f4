package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/meltforce/liftlog/internal/models"
)

// NextSetNumber returns max(set_number)+1 for the given session and
// exercise, or 1 when no sets exist. Numbers are never reused: deleting an
// earlier set does not renumber the rest, and the next number keeps counting
// from the highest ever assigned among the remaining sets.
func (t *Tx) NextSetNumber(ctx context.Context, sessionID, exerciseID int64) (int, error) {
	var next int
	err := t.tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(set_number), 0) + 1 FROM exercise_sets
		 WHERE session_id = ? AND exercise_id = ?`,
		sessionID, exerciseID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("computing next set number: %w", err)
	}
	return next, nil
}

// InsertSet inserts a set row within the transaction and fills in its ID.
func (t *Tx) InsertSet(ctx context.Context, s *models.ExerciseSet) error {
	if err := insertSet(ctx, t.tx, s); err != nil {
		return err
	}
	t.touch(TableSets)
	return nil
}

func insertSet(ctx context.Context, q dbtx, s *models.ExerciseSet) error {
	res, err := q.ExecContext(ctx,
		`INSERT INTO exercise_sets (session_id, exercise_id, set_number, weight,
		 reps, is_personal_record, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.SessionID, s.ExerciseID, s.SetNumber, s.Weight,
		s.Reps, s.IsPersonalRecord, fmtTime(s.Timestamp))
	if err != nil {
		return fmt.Errorf("inserting set: %w", err)
	}
	s.ID, _ = res.LastInsertId()
	return nil
}

// DeleteSet removes a single set. Remaining sets keep their numbers.
func (db *DB) DeleteSet(ctx context.Context, id int64) error {
	res, err := db.sql.ExecContext(ctx, `DELETE FROM exercise_sets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting set %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	db.notify.Publish(TableSets)
	return nil
}

// SetsForSessionAndExercise returns the sets of one exercise within a
// session, ordered by set number.
func (db *DB) SetsForSessionAndExercise(ctx context.Context, sessionID, exerciseID int64) ([]models.ExerciseSet, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT id, session_id, exercise_id, set_number, weight, reps,
		 is_personal_record, timestamp
		 FROM exercise_sets
		 WHERE session_id = ? AND exercise_id = ?
		 ORDER BY set_number`,
		sessionID, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer rows.Close()
	return collectSets(rows)
}

// SetsForExercise returns the full history of an exercise, most recent
// first.
func (db *DB) SetsForExercise(ctx context.Context, exerciseID int64, limit int) ([]models.ExerciseSet, error) {
	query := `SELECT id, session_id, exercise_id, set_number, weight, reps,
	 is_personal_record, timestamp
	 FROM exercise_sets
	 WHERE exercise_id = ?
	 ORDER BY timestamp DESC, id DESC`
	args := []any{exerciseID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercise history: %w", err)
	}
	defer rows.Close()
	return collectSets(rows)
}

// SessionSetDetails returns all sets of a session joined with their exercise
// details, ordered by exercise name then set number.
func (db *DB) SessionSetDetails(ctx context.Context, sessionID int64) ([]models.SetWithExercise, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT s.id, s.session_id, s.exercise_id, s.set_number, s.weight,
		 s.reps, s.is_personal_record, s.timestamp,
		 e.id, e.name, e.muscle_group, e.exercise_type, e.description,
		 e.image_file, e.is_compound, e.default_weight, e.default_reps
		 FROM exercise_sets s
		 JOIN exercises e ON s.exercise_id = e.id
		 WHERE s.session_id = ?
		 ORDER BY e.name, s.set_number`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session set details: %w", err)
	}
	defer rows.Close()

	var result []models.SetWithExercise
	for rows.Next() {
		var d models.SetWithExercise
		var ts, typ string
		err := rows.Scan(&d.Set.ID, &d.Set.SessionID, &d.Set.ExerciseID,
			&d.Set.SetNumber, &d.Set.Weight, &d.Set.Reps,
			&d.Set.IsPersonalRecord, &ts,
			&d.Exercise.ID, &d.Exercise.Name, &d.Exercise.MuscleGroup, &typ,
			&d.Exercise.Description, &d.Exercise.ImageFile,
			&d.Exercise.IsCompound, &d.Exercise.DefaultWeight,
			&d.Exercise.DefaultReps)
		if err != nil {
			return nil, fmt.Errorf("scanning set details: %w", err)
		}
		if d.Set.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		d.Exercise.Type = models.ExerciseType(typ)
		result = append(result, d)
	}
	return result, rows.Err()
}

// LastSetForExercise returns the most recent set logged for an exercise, or
// ErrNotFound when the exercise has no history.
func (db *DB) LastSetForExercise(ctx context.Context, exerciseID int64) (*models.LastSet, error) {
	row := db.sql.QueryRowContext(ctx,
		`SELECT exercise_id, weight, reps, timestamp FROM exercise_sets
		 WHERE exercise_id = ?
		 ORDER BY timestamp DESC, id DESC LIMIT 1`,
		exerciseID)

	var last models.LastSet
	var ts string
	err := row.Scan(&last.ExerciseID, &last.Weight, &last.Reps, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying last set: %w", err)
	}
	if last.Timestamp, err = parseTime(ts); err != nil {
		return nil, err
	}
	return &last, nil
}

// AverageReps returns the historical average rep count for an exercise,
// defaulting to 10 when no sets exist.
func (db *DB) AverageReps(ctx context.Context, exerciseID int64) (int, error) {
	var avg int
	err := db.sql.QueryRowContext(ctx,
		`SELECT CAST(COALESCE(AVG(reps), 10) AS INTEGER) FROM exercise_sets
		 WHERE exercise_id = ?`,
		exerciseID).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("querying average reps: %w", err)
	}
	return avg, nil
}

func collectSets(rows *sql.Rows) ([]models.ExerciseSet, error) {
	var result []models.ExerciseSet
	for rows.Next() {
		var s models.ExerciseSet
		var ts string
		err := rows.Scan(&s.ID, &s.SessionID, &s.ExerciseID, &s.SetNumber,
			&s.Weight, &s.Reps, &s.IsPersonalRecord, &ts)
		if err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		if s.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
