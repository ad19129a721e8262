package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tasks-go/app/models"
)

const taskColumns = `t.id, t.title, t.description, t.status_id, t.assigned_user_id, t.created_at, t.updated_at`

const relationColumns = `, s.id, s.name, s.created_at, s.updated_at, u.id, u.username, u.created_at, u.updated_at`

const relationJoins = `
	LEFT JOIN statuses s ON s.id = t.status_id
	LEFT JOIN users u ON u.id = t.assigned_user_id`

type scanner interface {
	Scan(dest ...any) error
}

func selectTasks(withRelations bool) string {
	if withRelations {
		return `SELECT ` + taskColumns + relationColumns + ` FROM tasks t` + relationJoins
	}
	return `SELECT ` + taskColumns + ` FROM tasks t`
}

func scanTask(row scanner, withRelations bool) (*models.Task, error) {
	var (
		task        models.Task
		description sql.NullString
	)
	dest := []any{
		&task.ID,
		&task.Title,
		&description,
		&task.StatusID,
		&task.AssignedUserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	}

	var (
		statusID, userID             sql.NullInt64
		statusName, username         sql.NullString
		statusCreated, statusUpdated sql.NullTime
		userCreated, userUpdated     sql.NullTime
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

	if description.Valid {
		task.Description = &description.String
	}
	if statusID.Valid {
		task.Status = &models.Status{
			ID:        statusID.Int64,
			Name:      statusName.String,
			CreatedAt: statusCreated.Time,
			UpdatedAt: statusUpdated.Time,
		}
	}
	if userID.Valid {
		task.User = &models.User{
			ID:        userID.Int64,
			Username:  username.String,
			CreatedAt: userCreated.Time,
			UpdatedAt: userUpdated.Time,
		}
	}
	return &task, nil
}

func (s *Store) CreateTask(ctx context.Context, task models.NewTask) (*models.Task, error) {
	const insertTaskQuery = `
		INSERT INTO tasks (title, description, status_id, assigned_user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, insertTaskQuery,
		task.Title,
		nullString(task.Description),
		task.StatusID,
		task.AssignedUserID,
		now,
		now,
	)
	if err != nil {
		return nil, translate(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Task{
		ID:             id,
		Title:          task.Title,
		Description:    task.Description,
		StatusID:       task.StatusID,
		AssignedUserID: task.AssignedUserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (s *Store) ListTasks(ctx context.Context, withRelations bool) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, selectTasks(withRelations)+` ORDER BY t.id`)
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
	task, err := scanTask(s.db.QueryRowContext(ctx, selectTasks(withRelations)+` WHERE t.id = ?`, id), withRelations)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Store) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	const updateTaskQuery = `
		UPDATE tasks SET
			title = COALESCE(?, title),
			description = CASE WHEN ? THEN NULL ELSE COALESCE(?, description) END,
			status_id = COALESCE(?, status_id),
			assigned_user_id = COALESCE(?, assigned_user_id),
			updated_at = ?
		WHERE id = ?
	`
	res, err := s.db.ExecContext(ctx, updateTaskQuery,
		nullString(patch.Title),
		patch.ClearDescription,
		nullString(patch.Description),
		nullInt64(patch.StatusID),
		nullInt64(patch.AssignedUserID),
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return nil, translate(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}
	return s.FindTask(ctx, id, false)
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	return err
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
