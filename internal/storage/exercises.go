package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/meltforce/liftlog/internal/models"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// InsertExercise inserts a new exercise and fills in its assigned ID.
func (db *DB) InsertExercise(ctx context.Context, e *models.Exercise) error {
	if err := insertExercise(ctx, db.sql, e); err != nil {
		return err
	}
	db.notify.Publish(TableExercises)
	return nil
}

// InsertExercise inserts a new exercise within the transaction.
func (t *Tx) InsertExercise(ctx context.Context, e *models.Exercise) error {
	if err := insertExercise(ctx, t.tx, e); err != nil {
		return err
	}
	t.touch(TableExercises)
	return nil
}

func insertExercise(ctx context.Context, q dbtx, e *models.Exercise) error {
	res, err := q.ExecContext(ctx,
		`INSERT INTO exercises (name, muscle_group, exercise_type, description,
		 image_file, is_compound, default_weight, default_reps)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Name, e.MuscleGroup, string(e.Type), e.Description,
		e.ImageFile, e.IsCompound, e.DefaultWeight, e.DefaultReps)
	if err != nil {
		return fmt.Errorf("inserting exercise: %w", err)
	}
	e.ID, _ = res.LastInsertId()
	return nil
}

// ExerciseByName returns the exercise with the exact given name, or
// ErrNotFound. Used by the history importer to match export rows against the
// library.
func (t *Tx) ExerciseByName(ctx context.Context, name string) (*models.Exercise, error) {
	row := t.tx.QueryRowContext(ctx,
		`SELECT id, name, muscle_group, exercise_type, description, image_file,
		 is_compound, default_weight, default_reps
		 FROM exercises WHERE name = ?`, name)
	return scanExercise(row)
}

// UpdateExercise rewrites all mutable fields of an exercise.
func (db *DB) UpdateExercise(ctx context.Context, e *models.Exercise) error {
	res, err := db.sql.ExecContext(ctx,
		`UPDATE exercises SET name = ?, muscle_group = ?, exercise_type = ?,
		 description = ?, image_file = ?, is_compound = ?, default_weight = ?,
		 default_reps = ? WHERE id = ?`,
		e.Name, e.MuscleGroup, string(e.Type), e.Description,
		e.ImageFile, e.IsCompound, e.DefaultWeight, e.DefaultReps, e.ID)
	if err != nil {
		return fmt.Errorf("updating exercise %d: %w", e.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	db.notify.Publish(TableExercises)
	return nil
}

// DeleteExercise removes an exercise. Its sets and personal records go with
// it via foreign key cascade.
func (db *DB) DeleteExercise(ctx context.Context, id int64) error {
	res, err := db.sql.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	db.notify.Publish(TableExercises)
	db.notify.Publish(TableSets)
	db.notify.Publish(TableRecords)
	return nil
}

// GetExercise retrieves a single exercise by ID.
func (db *DB) GetExercise(ctx context.Context, id int64) (*models.Exercise, error) {
	return getExercise(ctx, db.sql, id)
}

// GetExercise retrieves a single exercise by ID within the transaction.
func (t *Tx) GetExercise(ctx context.Context, id int64) (*models.Exercise, error) {
	return getExercise(ctx, t.tx, id)
}

func getExercise(ctx context.Context, q dbtx, id int64) (*models.Exercise, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, name, muscle_group, exercise_type, description, image_file,
		 is_compound, default_weight, default_reps
		 FROM exercises WHERE id = ?`, id)
	return scanExercise(row)
}

// ListExercises returns all exercises ordered by name, optionally filtered
// by muscle group.
func (db *DB) ListExercises(ctx context.Context, muscleGroup string) ([]models.Exercise, error) {
	query := `SELECT id, name, muscle_group, exercise_type, description, image_file,
	 is_compound, default_weight, default_reps FROM exercises`
	var args []any
	if muscleGroup != "" {
		query += ` WHERE muscle_group = ?`
		args = append(args, muscleGroup)
	}
	query += ` ORDER BY name`

	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}

// CountExercises returns the number of exercises in the library.
func (db *DB) CountExercises(ctx context.Context) (int, error) {
	var count int
	if err := db.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM exercises`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting exercises: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExercise(row rowScanner) (*models.Exercise, error) {
	var e models.Exercise
	var typ string
	err := row.Scan(&e.ID, &e.Name, &e.MuscleGroup, &typ, &e.Description,
		&e.ImageFile, &e.IsCompound, &e.DefaultWeight, &e.DefaultReps)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning exercise: %w", err)
	}
	e.Type = models.ExerciseType(typ)
	return &e, nil
}
