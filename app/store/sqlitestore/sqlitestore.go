// Package sqlitestore implements the task gateway on SQLite. The
// connection must have foreign key enforcement switched on, see
// config.SQLiteDSN.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"tasks-go/app/store"
)

var _ store.Store = (*Store)(nil)

// Store is the SQLite gateway.
type Store struct {
	db *sql.DB
}

// New creates a Store on an opened database, see config.InitSQLite.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS statuses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		status_id INTEGER NOT NULL,
		assigned_user_id INTEGER NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (status_id) REFERENCES statuses(id) ON UPDATE CASCADE,
		FOREIGN KEY (assigned_user_id) REFERENCES users(id) ON UPDATE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_assigned_user ON tasks(assigned_user_id)`,
}

var dropSchema = []string{
	`DROP TABLE IF EXISTS tasks`,
	`DROP TABLE IF EXISTS users`,
	`DROP TABLE IF EXISTS statuses`,
}

func (s *Store) Migrate(ctx context.Context, force bool) error {
	stmts := schema
	if force {
		stmts = append(append([]string{}, dropSchema...), schema...)
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// translate turns foreign key and unique violations into *store.ConstraintError.
func translate(err error) error {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	code := sqliteErr.Code()
	if code&0xff != sqlite3.SQLITE_CONSTRAINT {
		return err
	}

	msg := err.Error()
	switch {
	case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY || strings.Contains(msg, "FOREIGN KEY"):
		return &store.ConstraintError{Kind: store.ForeignKey, Message: msg, Err: err}
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || strings.Contains(msg, "UNIQUE"):
		return &store.ConstraintError{Kind: store.Unique, Message: msg, Err: err}
	default:
		return err
	}
}
