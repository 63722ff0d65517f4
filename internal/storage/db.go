package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// timeFormat is how timestamps are stored. All times go in as UTC so that
// string comparison in SQL matches chronological order.
const timeFormat = time.RFC3339

// DB wraps the SQLite handle and provides repository methods.
type DB struct {
	sql    *sql.DB
	notify *Notifier
}

// Open opens (or creates) the SQLite database at path, applies pragmas, and
// runs all pending migrations. Use ":memory:" for an ephemeral database.
func Open(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	// _txlock=immediate makes write transactions take the write lock up
	// front, so check-then-insert sequences are serialized by SQLite.
	db, err := sql.Open("sqlite", "file:"+path+"?_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// A single connection: the app is single-writer, and it keeps an
	// in-memory database alive for tests.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &DB{sql: db, notify: NewNotifier()}, nil
}

// Close closes the underlying database handle.
func (db *DB) Close() error {
	return db.sql.Close()
}

// Notifier returns the change notifier fed by committed writes.
func (db *DB) Notifier() *Notifier {
	return db.notify
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migration source: %w", err)
	}
	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Tx is an open write transaction. Entity methods called on it record which
// tables changed; the notifier is fed after a successful commit.
type Tx struct {
	tx      *sql.Tx
	changed map[string]struct{}
}

func (t *Tx) touch(table string) {
	t.changed[table] = struct{}{}
}

// WithTx runs fn inside a single transaction. On success the transaction is
// committed and change notifications for the touched tables are published;
// on error everything is rolled back.
func (db *DB) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	t := &Tx{tx: sqlTx, changed: make(map[string]struct{})}
	if err := fn(t); err != nil {
		sqlTx.Rollback()
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	for table := range t.changed {
		db.notify.Publish(table)
	}
	return nil
}

// dbtx is satisfied by both *sql.DB and *sql.Tx so entity queries can run
// inside or outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored time %q: %w", s, err)
	}
	return t, nil
}

// DefaultDBPath returns the database location under the user config dir.
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "liftlog", "liftlog.db"), nil
}
