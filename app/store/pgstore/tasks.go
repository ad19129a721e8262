package pgstore

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"tasks-go/app/models"
)

const taskColumns = `t.id, t.title, t.description, t.status_id, t.assigned_user_id, t.created_at, t.updated_at`

const relationColumns = `, s.id, s.name, s.created_at, s.updated_at, u.id, u.username, u.created_at, u.updated_at`

const relationJoins = `
LEFT JOIN statuses s ON s.id = t.status_id
LEFT JOIN users u ON u.id = t.assigned_user_id`

func selectTasks(withRelations bool) string {
	if withRelations {
		return `SELECT ` + taskColumns + relationColumns + ` FROM tasks t` + relationJoins
	}
	return `SELECT ` + taskColumns + ` FROM tasks t`
}

func scanTask(row pgx.Row, withRelations bool) (*models.Task, error) {
	var task models.Task
	dest := []any{
		&task.ID,
		&task.Title,
		&task.Description,
		&task.StatusID,
		&task.AssignedUserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	}

	var (
		statusID, userID             *int64
		statusName, username         *string
		statusCreated, statusUpdated *time.Time
		userCreated, userUpdated     *time.Time
	)
	if withRelations {
		dest = append(dest,
			&statusID, &statusName, &statusCreated, &statusUpdated,
			&userID, &username, &userCreated, &userUpdated,
		)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if statusID != nil {
		task.Status = &models.Status{ID: *statusID, Name: *statusName, CreatedAt: *statusCreated, UpdatedAt: *statusUpdated}
	}
	if userID != nil {
		task.User = &models.User{ID: *userID, Username: *username, CreatedAt: *userCreated, UpdatedAt: *userUpdated}
	}
	return &task, nil
}

func (s *Store) CreateTask(ctx context.Context, task models.NewTask) (*models.Task, error) {
	const insertTaskQuery = `
INSERT INTO tasks AS t (title, description, status_id, assigned_user_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
RETURNING ` + taskColumns

	now := time.Now().UTC()
	created, err := scanTask(s.pool.QueryRow(ctx, insertTaskQuery,
		task.Title,
		task.Description,
		task.StatusID,
		task.AssignedUserID,
		now,
	), false)
	if err != nil {
		return nil, translate(err)
	}
	return created, nil
}

func (s *Store) ListTasks(ctx context.Context, withRelations bool) ([]models.Task, error) {
	rows, err := s.pool.Query(ctx, selectTasks(withRelations)+` ORDER BY t.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows, withRelations)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Store) FindTask(ctx context.Context, id int64, withRelations bool) (*models.Task, error) {
	task, err := scanTask(s.pool.QueryRow(ctx, selectTasks(withRelations)+` WHERE t.id = $1`, id), withRelations)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Store) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	const updateTaskQuery = `
UPDATE tasks AS t SET
	title = COALESCE($2, t.title),
	description = CASE WHEN $7::boolean THEN NULL ELSE COALESCE($3, t.description) END,
	status_id = COALESCE($4, t.status_id),
	assigned_user_id = COALESCE($5, t.assigned_user_id),
	updated_at = $6
WHERE t.id = $1
RETURNING ` + taskColumns

	task, err := scanTask(s.pool.QueryRow(ctx, updateTaskQuery,
		id,
		patch.Title,
		patch.Description,
		patch.StatusID,
		patch.AssignedUserID,
		time.Now().UTC(),
		patch.ClearDescription,
	), false)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err)
	}
	return task, nil
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}
