package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/meltforce/liftlog/internal/models"
)

// HasLighterRecord reports whether a stored record exists for the exact
// (exercise, reps) pair with a weight strictly below the given one. This is
// the whole record check: with no stored row for the pair it returns false,
// so a first attempt at a rep count is never flagged.
func (db *DB) HasLighterRecord(ctx context.Context, exerciseID int64, reps int, weight float64) (bool, error) {
	return hasLighterRecord(ctx, db.sql, exerciseID, reps, weight)
}

// HasLighterRecord is the transactional variant used during set recording.
func (t *Tx) HasLighterRecord(ctx context.Context, exerciseID int64, reps int, weight float64) (bool, error) {
	return hasLighterRecord(ctx, t.tx, exerciseID, reps, weight)
}

func hasLighterRecord(ctx context.Context, q dbtx, exerciseID int64, reps int, weight float64) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM personal_records
		 WHERE exercise_id = ? AND reps = ? AND weight < ?)`,
		exerciseID, reps, weight).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking record: %w", err)
	}
	return exists, nil
}

// InsertRecord inserts a personal record row within the transaction and
// fills in its ID. Superseded rows for the same (exercise, reps) pair are
// left untouched.
func (t *Tx) InsertRecord(ctx context.Context, r *models.PersonalRecord) error {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO personal_records (exercise_id, reps, weight, date, set_id)
		 VALUES (?, ?, ?, ?, ?)`,
		r.ExerciseID, r.Reps, r.Weight, fmtTime(r.Date), r.SetID)
	if err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}
	r.ID, _ = res.LastInsertId()
	t.touch(TableRecords)
	return nil
}

// RecordsForExercise returns all record rows for an exercise ordered by rep
// count, then date so superseded rows come before their replacements.
func (db *DB) RecordsForExercise(ctx context.Context, exerciseID int64) ([]models.PersonalRecord, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT id, exercise_id, reps, weight, date, set_id
		 FROM personal_records
		 WHERE exercise_id = ?
		 ORDER BY reps, date`,
		exerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// LatestRecordForExercise returns the most recently achieved record for an
// exercise, or ErrNotFound when none exists.
func (db *DB) LatestRecordForExercise(ctx context.Context, exerciseID int64) (*models.PersonalRecord, error) {
	row := db.sql.QueryRowContext(ctx,
		`SELECT id, exercise_id, reps, weight, date, set_id
		 FROM personal_records
		 WHERE exercise_id = ?
		 ORDER BY date DESC, id DESC LIMIT 1`,
		exerciseID)
	return scanRecord(row)
}

// RecentRecords returns the newest record rows across all exercises.
func (db *DB) RecentRecords(ctx context.Context, limit int) ([]models.PersonalRecord, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT id, exercise_id, reps, weight, date, set_id
		 FROM personal_records
		 ORDER BY date DESC, id DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent records: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// CountRecordsForPair returns how many record rows exist for an exact
// (exercise, reps) pair. Superseded rows are counted too.
func (db *DB) CountRecordsForPair(ctx context.Context, exerciseID int64, reps int) (int, error) {
	var count int
	err := db.sql.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM personal_records WHERE exercise_id = ? AND reps = ?`,
		exerciseID, reps).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return count, nil
}

func scanRecord(row rowScanner) (*models.PersonalRecord, error) {
	var r models.PersonalRecord
	var date string
	err := row.Scan(&r.ID, &r.ExerciseID, &r.Reps, &r.Weight, &date, &r.SetID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning record: %w", err)
	}
	if r.Date, err = parseTime(date); err != nil {
		return nil, err
	}
	return &r, nil
}

func collectRecords(rows *sql.Rows) ([]models.PersonalRecord, error) {
	var result []models.PersonalRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *r)
	}
	return result, rows.Err()
}
