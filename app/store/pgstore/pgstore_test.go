package pgstore_test

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"tasks-go/app/config"
	"tasks-go/app/models"
	"tasks-go/app/store"
	"tasks-go/app/store/pgstore"
	"tasks-go/app/testutil"
)

// dockerAvailable checks whether the Docker daemon is reachable.
// testcontainers-go panics when Docker is missing, so check first.
func dockerAvailable() bool {
	return exec.Command("docker", "info").Run() == nil
}

func newTestStore(t *testing.T) *pgstore.Store {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}
	if !dockerAvailable() {
		t.Skip("Docker not available, skipping PostgreSQL integration tests")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("tasks"),
		postgres.WithUsername("tasks"),
		postgres.WithPassword("tasks"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		t.Skipf("failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := config.InitPostgres(ctx, config.DatabaseConfig{URL: url, ConnectTimeout: 10 * time.Second})
	require.NoError(t, err)

	s := pgstore.New(pool)
	t.Cleanup(func() {
		_ = s.Close(context.Background())
	})

	require.NoError(t, s.Migrate(ctx, true))
	return s
}

func TestPostgresStore(t *testing.T) {
	s := newTestStore(t)
	fx := testutil.Seed(t, s)
	ctx := context.Background()

	t.Run("unique names", func(t *testing.T) {
		_, err := s.CreateStatus(ctx, "Todo")
		assert.True(t, store.IsUnique(err), "expected unique violation, got %v", err)

		_, err = s.CreateUser(ctx, "testuser")
		assert.True(t, store.IsUnique(err), "expected unique violation, got %v", err)
	})

	t.Run("foreign keys", func(t *testing.T) {
		_, err := s.CreateTask(ctx, models.NewTask{Title: "x", StatusID: 999, AssignedUserID: fx.User.ID})
		assert.True(t, store.IsForeignKey(err), "expected foreign key violation, got %v", err)
		assert.Regexp(t, `(?i)foreign key`, err.Error())

		_, err = s.CreateTask(ctx, models.NewTask{Title: "x", StatusID: fx.Todo().ID, AssignedUserID: 999})
		assert.True(t, store.IsForeignKey(err), "expected foreign key violation, got %v", err)
	})

	t.Run("lifecycle", func(t *testing.T) {
		created, err := s.CreateTask(ctx, models.NewTask{
			Title:          "Postgres task",
			Description:    testutil.Ptr("desc"),
			StatusID:       fx.Todo().ID,
			AssignedUserID: fx.User.ID,
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		tasks, err := s.ListTasks(ctx, true)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		require.NotNil(t, tasks[0].Status)
		assert.Equal(t, "Todo", tasks[0].Status.Name)
		require.NotNil(t, tasks[0].User)
		assert.Equal(t, "testuser", tasks[0].User.Username)

		updated, err := s.UpdateTask(ctx, created.ID, models.TaskPatch{Title: testutil.Ptr("Renamed")})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, "desc", *updated.Description)
		assert.Equal(t, fx.Todo().ID, updated.StatusID)

		cleared, err := s.UpdateTask(ctx, created.ID, models.TaskPatch{ClearDescription: true})
		require.NoError(t, err)
		assert.Nil(t, cleared.Description)
		assert.Equal(t, "Renamed", cleared.Title)

		require.NoError(t, s.DeleteTask(ctx, created.ID))
		gone, err := s.FindTask(ctx, created.ID, true)
		require.NoError(t, err)
		assert.Nil(t, gone)

		assert.NoError(t, s.DeleteTask(ctx, created.ID))
	})
}
