package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/meltforce/liftlog/internal/models"
)

// InsertSession inserts a training session and fills in its assigned ID.
func (db *DB) InsertSession(ctx context.Context, s *models.TrainingSession) error {
	if err := insertSession(ctx, db.sql, s); err != nil {
		return err
	}
	db.notify.Publish(TableSessions)
	return nil
}

// InsertSession inserts a training session within the transaction.
func (t *Tx) InsertSession(ctx context.Context, s *models.TrainingSession) error {
	if err := insertSession(ctx, t.tx, s); err != nil {
		return err
	}
	t.touch(TableSessions)
	return nil
}

func insertSession(ctx context.Context, q dbtx, s *models.TrainingSession) error {
	res, err := q.ExecContext(ctx,
		`INSERT INTO training_sessions (date, name, notes) VALUES (?, ?, ?)`,
		fmtTime(s.Date), s.Name, s.Notes)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	s.ID, _ = res.LastInsertId()
	return nil
}

// GetSession retrieves a single session by ID.
func (db *DB) GetSession(ctx context.Context, id int64) (*models.TrainingSession, error) {
	return getSession(ctx, db.sql, id)
}

// GetSession retrieves a single session by ID within the transaction.
func (t *Tx) GetSession(ctx context.Context, id int64) (*models.TrainingSession, error) {
	return getSession(ctx, t.tx, id)
}

func getSession(ctx context.Context, q dbtx, id int64) (*models.TrainingSession, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, date, name, notes FROM training_sessions WHERE id = ?`, id)
	return scanSession(row)
}

// FirstSessionIn returns the earliest session whose date falls in
// [start, end), or ErrNotFound when the window is empty. Ties on date break
// by insertion order so repeated lookups are stable.
func (t *Tx) FirstSessionIn(ctx context.Context, start, end time.Time) (*models.TrainingSession, error) {
	row := t.tx.QueryRowContext(ctx,
		`SELECT id, date, name, notes FROM training_sessions
		 WHERE date >= ? AND date < ?
		 ORDER BY date, id LIMIT 1`,
		fmtTime(start), fmtTime(end))
	return scanSession(row)
}

// SessionsBetween returns sessions whose date falls in [start, end]
// inclusive, ordered by date descending.
func (db *DB) SessionsBetween(ctx context.Context, start, end time.Time) ([]models.TrainingSession, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT id, date, name, notes FROM training_sessions
		 WHERE date >= ? AND date <= ?
		 ORDER BY date DESC, id DESC`,
		fmtTime(start), fmtTime(end))
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.TrainingSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

// RenameSession updates a session's display name.
func (db *DB) RenameSession(ctx context.Context, id int64, name string) error {
	return db.UpdateSession(ctx, id, &name, nil)
}

// UpdateSessionNotes updates a session's free-text notes.
func (db *DB) UpdateSessionNotes(ctx context.Context, id int64, notes string) error {
	return db.UpdateSession(ctx, id, nil, &notes)
}

// UpdateSession updates a session's name and/or notes in a single statement,
// so a request carrying both can never land half-applied. Nil fields are left
// unchanged.
func (db *DB) UpdateSession(ctx context.Context, id int64, name, notes *string) error {
	if name == nil && notes == nil {
		return nil
	}
	res, err := db.sql.ExecContext(ctx,
		`UPDATE training_sessions
		 SET name = COALESCE(?, name), notes = COALESCE(?, notes)
		 WHERE id = ?`,
		name, notes, id)
	if err != nil {
		return fmt.Errorf("updating session %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	db.notify.Publish(TableSessions)
	return nil
}

// DeleteSession removes a session and, via cascade, its sets. Personal
// records earned during the session are kept.
func (db *DB) DeleteSession(ctx context.Context, id int64) error {
	res, err := db.sql.ExecContext(ctx, `DELETE FROM training_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	db.notify.Publish(TableSessions)
	db.notify.Publish(TableSets)
	return nil
}

func scanSession(row rowScanner) (*models.TrainingSession, error) {
	var s models.TrainingSession
	var date string
	err := row.Scan(&s.ID, &date, &s.Name, &s.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	if s.Date, err = parseTime(date); err != nil {
		return nil, err
	}
	return &s, nil
}
