package sqlitestore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasks-go/app/models"
	"tasks-go/app/store"
	"tasks-go/app/testutil"
)

func TestMigrateIsIdempotent(t *testing.T) {
	s := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	_, err := s.CreateStatus(ctx, "Todo")
	require.NoError(t, err)

	require.NoError(t, s.Migrate(ctx, false))

	count, err := s.CountStatuses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUniqueNames(t *testing.T) {
	s := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	_, err := s.CreateStatus(ctx, "Todo")
	require.NoError(t, err)
	_, err = s.CreateStatus(ctx, "Todo")
	assert.True(t, store.IsUnique(err), "expected unique violation, got %v", err)

	_, err = s.CreateUser(ctx, "alice")
	require.NoError(t, err)
	_, err = s.CreateUser(ctx, "alice")
	assert.True(t, store.IsUnique(err), "expected unique violation, got %v", err)
}

func TestCreateTaskForeignKeys(t *testing.T) {
	s := testutil.NewSQLiteStore(t)
	fx := testutil.Seed(t, s)
	ctx := context.Background()

	tests := []struct {
		name string
		task models.NewTask
	}{
		{"unknown status", models.NewTask{Title: "a", StatusID: 999, AssignedUserID: fx.User.ID}},
		{"unknown user", models.NewTask{Title: "b", StatusID: fx.Todo().ID, AssignedUserID: 999}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := s.CreateTask(ctx, tt.task)

			assert.Nil(t, task)
			assert.True(t, store.IsForeignKey(err), "expected foreign key violation, got %v", err)
			assert.Regexp(t, `(?i)foreign key`, err.Error())
		})
	}

	tasks, err := s.ListTasks(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskLifecycle(t *testing.T) {
	s := testutil.NewSQLiteStore(t)
	fx := testutil.Seed(t, s)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, models.NewTask{
		Title:          "Write tests",
		Description:    testutil.Ptr("for the sqlite store"),
		StatusID:       fx.Todo().ID,
		AssignedUserID: fx.User.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := s.FindTask(ctx, created.ID, true)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Write tests", found.Title)
	assert.Equal(t, "for the sqlite store", *found.Description)
	require.NotNil(t, found.Status)
	assert.Equal(t, "Todo", found.Status.Name)
	require.NotNil(t, found.User)
	assert.Equal(t, "testuser", found.User.Username)

	plain, err := s.FindTask(ctx, created.ID, false)
	require.NoError(t, err)
	assert.Nil(t, plain.Status)
	assert.Nil(t, plain.User)

	inProgress := fx.Statuses[1]
	updated, err := s.UpdateTask(ctx, created.ID, models.TaskPatch{StatusID: &inProgress.ID})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, inProgress.ID, updated.StatusID)
	assert.Equal(t, "Write tests", updated.Title)
	assert.Equal(t, "for the sqlite store", *updated.Description)

	_, err = s.UpdateTask(ctx, created.ID, models.TaskPatch{AssignedUserID: testutil.Ptr(int64(999))})
	assert.True(t, store.IsForeignKey(err), "expected foreign key violation, got %v", err)

	cleared, err := s.UpdateTask(ctx, created.ID, models.TaskPatch{ClearDescription: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.Description)
	assert.Equal(t, "Write tests", cleared.Title)
	assert.Equal(t, inProgress.ID, cleared.StatusID)

	require.NoError(t, s.DeleteTask(ctx, created.ID))
	gone, err := s.FindTask(ctx, created.ID, true)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestAbsentTask(t *testing.T) {
	s := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	task, err := s.FindTask(ctx, 42, true)
	require.NoError(t, err)
	assert.Nil(t, task)

	task, err = s.UpdateTask(ctx, 42, models.TaskPatch{Title: testutil.Ptr("x")})
	require.NoError(t, err)
	assert.Nil(t, task)

	assert.NoError(t, s.DeleteTask(ctx, 42))
}

func TestListTasksOrdered(t *testing.T) {
	s := testutil.NewSQLiteStore(t)
	fx := testutil.Seed(t, s)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := s.CreateTask(ctx, models.NewTask{Title: title, StatusID: fx.Todo().ID, AssignedUserID: fx.User.ID})
		require.NoError(t, err)
	}

	tasks, err := s.ListTasks(ctx, true)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for i, title := range []string{"first", "second", "third"} {
		assert.Equal(t, title, tasks[i].Title)
		assert.Nil(t, tasks[i].Description)
		assert.NotNil(t, tasks[i].Status)
	}
}
