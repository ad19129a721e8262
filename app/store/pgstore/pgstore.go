// Package pgstore implements the task gateway on PostgreSQL.
package pgstore

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tasks-go/app/store"
)

var _ store.Store = (*Store)(nil)

// Store is the PostgreSQL gateway. It is safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store on top of an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS statuses (
	id SERIAL PRIMARY KEY,
	name VARCHAR(255) NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	username VARCHAR(255) NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS tasks (
	id SERIAL PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	description TEXT,
	status_id INTEGER NOT NULL REFERENCES statuses (id) ON UPDATE CASCADE,
	assigned_user_id INTEGER NOT NULL REFERENCES users (id) ON UPDATE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
}

const dropSchema = `DROP TABLE IF EXISTS tasks, users, statuses CASCADE`

func (s *Store) Migrate(ctx context.Context, force bool) error {
	if force {
		if _, err := s.pool.Exec(ctx, dropSchema); err != nil {
			return err
		}
	}
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// translate turns foreign key and unique violations into *store.ConstraintError.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.ForeignKeyViolation:
		return &store.ConstraintError{
			Kind:       store.ForeignKey,
			Constraint: pgErr.ConstraintName,
			Message:    pgErr.Message,
			Err:        err,
		}
	case pgerrcode.UniqueViolation:
		return &store.ConstraintError{
			Kind:       store.Unique,
			Constraint: pgErr.ConstraintName,
			Message:    pgErr.Message,
			Err:        err,
		}
	default:
		return err
	}
}
