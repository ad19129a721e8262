// Package testutil provides database fixtures for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tasks-go/app/config"
	"tasks-go/app/models"
	"tasks-go/app/store"
	"tasks-go/app/store/sqlitestore"
)

// NewSQLiteStore creates an in-memory database with the full schema and
// foreign keys enforced. It is closed when the test ends.
func NewSQLiteStore(t *testing.T) *sqlitestore.Store {
	t.Helper()

	db, err := config.InitSQLite(config.DatabaseConfig{URL: ":memory:"})
	require.NoError(t, err, "failed to open test database")

	s := sqlitestore.New(db)
	t.Cleanup(func() {
		_ = s.Close(context.Background())
	})

	require.NoError(t, s.Migrate(context.Background(), false), "failed to create schema")
	return s
}

// Fixture holds the reference rows most task tests need.
type Fixture struct {
	Statuses []models.Status
	User     models.User
}

// Todo is the first seeded status.
func (f Fixture) Todo() models.Status {
	return f.Statuses[0]
}

// Seed inserts the default statuses and a "testuser" user.
func Seed(t *testing.T, s store.LookupStore) Fixture {
	t.Helper()
	ctx := context.Background()

	var fx Fixture
	for _, name := range store.DefaultStatuses {
		status, err := s.CreateStatus(ctx, name)
		require.NoError(t, err, "failed to seed status %q", name)
		fx.Statuses = append(fx.Statuses, *status)
	}

	user, err := s.CreateUser(ctx, "testuser")
	require.NoError(t, err, "failed to seed user")
	fx.User = *user

	return fx
}

func Ptr[T any](v T) *T {
	return &v
}
