// Package store defines the persistence gateway used by the HTTP handlers
// and the bootstrap routine that prepares a fresh database.
package store

import (
	"context"

	"tasks-go/app/models"
)

// TaskStore reads and writes tasks.
//
// FindTask returns a nil task and a nil error when the id does not exist.
// DeleteTask is a no-op for an absent id. CreateTask and UpdateTask return
// a *ConstraintError when a referenced status or user does not exist.
type TaskStore interface {
	CreateTask(ctx context.Context, task models.NewTask) (*models.Task, error)
	ListTasks(ctx context.Context, withRelations bool) ([]models.Task, error)
	FindTask(ctx context.Context, id int64, withRelations bool) (*models.Task, error)
	UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// LookupStore reads and writes the reference rows tasks point at.
// Names and usernames are unique; a duplicate yields a *ConstraintError.
type LookupStore interface {
	CreateStatus(ctx context.Context, name string) (*models.Status, error)
	ListStatuses(ctx context.Context) ([]models.Status, error)
	CountStatuses(ctx context.Context) (int, error)

	CreateUser(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CountUsers(ctx context.Context) (int, error)
}

// Store is a complete gateway backed by one database.
type Store interface {
	TaskStore
	LookupStore

	// Migrate creates the schema if it is missing. With force set the
	// existing schema and its data are dropped first.
	Migrate(ctx context.Context, force bool) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
